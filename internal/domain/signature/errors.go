package signature

import "errors"

// Sentinel kinds for signature verification failures.
var (
	ErrMissingSignature = errors.New("missing signature")
	ErrMismatch         = errors.New("signature mismatch")
)
