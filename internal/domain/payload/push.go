package payload

// Commit mirrors a commit object inside a push delivery.
type Commit struct {
	ID        string   `json:"id"`
	TreeID    string   `json:"tree_id,omitempty"`
	Distinct  bool     `json:"distinct,omitempty"`
	Message   string   `json:"message,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	URL       string   `json:"url,omitempty"`
	Author    User     `json:"author,omitempty"`
	Committer User     `json:"committer,omitempty"`
	Added     []string `json:"added,omitempty"`
	Removed   []string `json:"removed,omitempty"`
	Modified  []string `json:"modified,omitempty"`
}

// PushPayload is the contract for push deliveries. HeadCommit is a pointer
// because upstream sends null for branch deletions and empty pushes; the
// canonicalizer treats its absence as a drop, not a shape failure.
type PushPayload struct {
	Ref        string      `json:"ref"`
	Before     string      `json:"before"`
	After      string      `json:"after"`
	Created    bool        `json:"created,omitempty"`
	Deleted    bool        `json:"deleted,omitempty"`
	Forced     bool        `json:"forced,omitempty"`
	Compare    string      `json:"compare,omitempty"`
	Repository *Repository `json:"repository"`
	Pusher     *User       `json:"pusher"`
	Sender     User        `json:"sender,omitempty"`
	Commits    []Commit    `json:"commits"`
	HeadCommit *Commit     `json:"head_commit"`
}

// validate reports the first required field that is missing.
func (p *PushPayload) validate() error {
	switch {
	case p.Ref == "":
		return &ShapeError{Field: "ref"}
	case p.Before == "":
		return &ShapeError{Field: "before"}
	case p.After == "":
		return &ShapeError{Field: "after"}
	case p.Repository == nil:
		return &ShapeError{Field: "repository"}
	case p.Pusher == nil:
		return &ShapeError{Field: "pusher"}
	case p.Commits == nil:
		return &ShapeError{Field: "commits"}
	case p.HeadCommit != nil && p.HeadCommit.Timestamp == "":
		return &ShapeError{Field: "head_commit.timestamp"}
	}
	return nil
}

// ParsePush parses raw against the push contract.
func ParsePush(raw []byte) (*PushPayload, error) {
	var p PushPayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
