// Package signature validates webhook payload signatures.
//
// GitHub signs every delivery with HMAC-SHA256 over the raw request body and
// sends the result in the X-Hub-Signature-256 header as "sha256=<hex>". The
// verifier recomputes the digest with the shared secret and compares in
// constant time. Verification happens before any parsing of the body so that
// unauthenticated input is never processed.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Prefix is the scheme tag GitHub prepends to the hex digest.
const Prefix = "sha256="

// Verify checks provided against the expected signature of body under secret.
// Returns ErrMissingSignature when provided is empty and ErrMismatch when the
// comparison fails. No side effects.
func Verify(body []byte, provided, secret string) error {
	if provided == "" {
		return ErrMissingSignature
	}
	if !hmac.Equal([]byte(Compute(body, secret)), []byte(provided)) {
		return ErrMismatch
	}
	return nil
}

// Compute returns the full signature string for body under secret, including
// the "sha256=" prefix. Exposed so test harnesses can sign their own payloads.
func Compute(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return Prefix + hex.EncodeToString(mac.Sum(nil))
}
