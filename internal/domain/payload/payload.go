// Package payload declares the structural contracts inbound webhook JSON
// must conform to: one shape for push deliveries and one for pull-request
// deliveries. The classified action selects which contract to parse against;
// parsing never speculates across shapes. Unknown extra fields are ignored
// for forward compatibility with upstream additions.
package payload

import (
	"encoding/json"
	"errors"
)

// User is a GitHub identity object. Every field is optional: depending on
// the event type upstream populates name, login, both, or neither, and
// callers must tolerate either being absent.
type User struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	Login     string `json:"login,omitempty"`
	ID        int64  `json:"id,omitempty"`
	NodeID    string `json:"node_id,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
	Type      string `json:"type,omitempty"`
	SiteAdmin bool   `json:"site_admin,omitempty"`
}

// Repository carries the subset of repository fields the pipeline reads or
// logs. The rest of the upstream object is ignored.
type Repository struct {
	ID            int64  `json:"id"`
	NodeID        string `json:"node_id,omitempty"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private,omitempty"`
	Owner         User   `json:"owner,omitempty"`
	HTMLURL       string `json:"html_url,omitempty"`
	Description   string `json:"description,omitempty"`
	Fork          bool   `json:"fork,omitempty"`
	URL           string `json:"url,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty"`
	MasterBranch  string `json:"master_branch,omitempty"`
}

// decode unmarshals raw into v, translating decode failures into the
// package's error taxonomy: a type mismatch names the offending field, any
// other failure is reported as invalid JSON.
func decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ShapeError{Field: typeErr.Field}
		}
		return ErrInvalidJSON
	}
	return nil
}
