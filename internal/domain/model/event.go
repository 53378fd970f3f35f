// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"strconv"
)

// Action is the canonical classification of an inbound repository event.
type Action string

// Canonical actions. The classifier never produces values outside this set.
const (
	ActionPush        Action = "PUSH"
	ActionPullRequest Action = "PULL_REQUEST"
	ActionMerge       Action = "MERGE"
)

// Valid reports whether a is one of the canonical actions.
func (a Action) Valid() bool {
	switch a {
	case ActionPush, ActionPullRequest, ActionMerge:
		return true
	default:
		return false
	}
}

// CanonicalEvent is the normalized record persisted for every accepted
// delivery, regardless of which upstream event type produced it.
type CanonicalEvent struct {
	// RequestID is the upstream identifier of the triggering change:
	// the head commit SHA for pushes, the PR id (stringified) otherwise.
	RequestID string `json:"request_id"`
	// Author is the identity that produced the change: commit author
	// name for pushes, sender login for PR and merge events.
	Author string `json:"author"`
	Action Action `json:"action"`
	// FromBranch and ToBranch are both the pushed branch for PUSH.
	FromBranch string `json:"from_branch"`
	ToBranch   string `json:"to_branch"`
	// Timestamp is event time as supplied by upstream, not ingestion time.
	Timestamp string `json:"timestamp"`
}

// StoredEvent is a CanonicalEvent with its store-assigned id. Ids are
// strictly increasing in insertion order and serve as the pagination cursor.
type StoredEvent struct {
	ID int64
	CanonicalEvent
}

// Cursor renders the store-assigned id as the opaque string callers pass
// back via the since parameter.
func (e StoredEvent) Cursor() string {
	return strconv.FormatInt(e.ID, 10)
}

// MarshalJSON flattens the event fields and renders the id as the string
// field "_id", matching the wire shape of the history API.
func (e StoredEvent) MarshalJSON() ([]byte, error) {
	type alias CanonicalEvent
	return json.Marshal(struct {
		ID string `json:"_id"`
		alias
	}{ID: e.Cursor(), alias: alias(e.CanonicalEvent)})
}
