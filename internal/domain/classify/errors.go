package classify

import "errors"

// Sentinel kinds for classification failures.
var (
	ErrMissingEventType = errors.New("missing event type")
	ErrUnsupportedEvent = errors.New("unsupported event type")
)
