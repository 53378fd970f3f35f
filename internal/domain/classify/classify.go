// Package classify maps an upstream event-type label plus payload inspection
// to one canonical action.
package classify

import (
	"encoding/json"

	"github.com/okian/hooklog/internal/domain/model"
)

// Upstream labels delivered in the X-GitHub-Event header.
const (
	labelPush        = "push"
	labelPullRequest = "pull_request"
)

// mergeProbe reads just enough of a pull_request payload to decide whether
// the delivery describes a merge. Classification must inspect structure, not
// only the label: the same "pull_request" notification resolves to either
// PULL_REQUEST or MERGE depending on the nested merged flag.
type mergeProbe struct {
	PullRequest struct {
		Merged bool `json:"merged"`
	} `json:"pull_request"`
}

// Classify resolves the declared label and raw payload to a canonical action.
// An empty label yields ErrMissingEventType; any label outside the supported
// set yields ErrUnsupportedEvent.
func Classify(label string, raw []byte) (model.Action, error) {
	switch label {
	case "":
		return "", ErrMissingEventType
	case labelPush:
		return model.ActionPush, nil
	case labelPullRequest:
		var probe mergeProbe
		// A probe failure is not fatal here; the schema layer reports
		// shape problems with field-level detail.
		if err := json.Unmarshal(raw, &probe); err == nil && probe.PullRequest.Merged {
			return model.ActionMerge, nil
		}
		return model.ActionPullRequest, nil
	default:
		return "", ErrUnsupportedEvent
	}
}
