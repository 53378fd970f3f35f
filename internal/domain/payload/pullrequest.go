package payload

// Ref is a branch reference inside a pull-request object.
type Ref struct {
	Label string      `json:"label,omitempty"`
	Ref   string      `json:"ref"`
	SHA   string      `json:"sha,omitempty"`
	User  User        `json:"user,omitempty"`
	Repo  *Repository `json:"repo,omitempty"`
}

// PullRequest mirrors the nested pull_request object. MergedAt is empty when
// the PR has not been merged; upstream sends null.
type PullRequest struct {
	ID        int64  `json:"id"`
	NodeID    string `json:"node_id,omitempty"`
	Number    int    `json:"number"`
	State     string `json:"state,omitempty"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
	User      User   `json:"user,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
	Draft     bool   `json:"draft,omitempty"`
	Merged    bool   `json:"merged,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
	ClosedAt  string `json:"closed_at,omitempty"`
	MergedAt  string `json:"merged_at,omitempty"`
	MergedBy  *User  `json:"merged_by,omitempty"`
	Head      Ref    `json:"head"`
	Base      Ref    `json:"base"`
}

// PullRequestPayload is the contract for pull_request deliveries, covering
// both the PULL_REQUEST and MERGE canonical actions.
type PullRequestPayload struct {
	Action      string       `json:"action"`
	Number      int          `json:"number"`
	PullRequest *PullRequest `json:"pull_request"`
	Repository  *Repository  `json:"repository,omitempty"`
	Sender      *User        `json:"sender"`
}

// validate reports the first required field that is missing.
func (p *PullRequestPayload) validate() error {
	switch {
	case p.Action == "":
		return &ShapeError{Field: "action"}
	case p.PullRequest == nil:
		return &ShapeError{Field: "pull_request"}
	case p.PullRequest.Head.Ref == "":
		return &ShapeError{Field: "pull_request.head.ref"}
	case p.PullRequest.Base.Ref == "":
		return &ShapeError{Field: "pull_request.base.ref"}
	case p.PullRequest.CreatedAt == "":
		return &ShapeError{Field: "pull_request.created_at"}
	case p.Sender == nil:
		return &ShapeError{Field: "sender"}
	}
	return nil
}

// ParsePullRequest parses raw against the pull-request contract.
func ParsePullRequest(raw []byte) (*PullRequestPayload, error) {
	var p PullRequestPayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
