// Package canonical reduces validated payloads into the one record shape the
// store persists. A payload that cannot yield an author identity produces no
// record at all: that is a deliberate lossy drop, reported to the caller as
// ok=false rather than an error, because redelivery of the same payload would
// not change the outcome. Timestamps are guaranteed by the schema layer, so
// every record produced here carries one.
package canonical

import (
	"strconv"
	"strings"

	"github.com/okian/hooklog/internal/domain/model"
	"github.com/okian/hooklog/internal/domain/payload"
)

// branchRefPrefix is stripped from push refs to recover the branch name.
const branchRefPrefix = "refs/heads/"

// FromPush builds the canonical record for a push delivery. Returns ok=false
// when the payload has no head commit or the head commit carries no author
// name (branch deletions, empty pushes, pushes by identity-less committers).
func FromPush(p *payload.PushPayload) (model.CanonicalEvent, bool) {
	if p.HeadCommit == nil || p.HeadCommit.Author.Name == "" {
		return model.CanonicalEvent{}, false
	}
	branch := strings.TrimPrefix(p.Ref, branchRefPrefix)
	return model.CanonicalEvent{
		RequestID:  p.HeadCommit.ID,
		Author:     p.HeadCommit.Author.Name,
		Action:     model.ActionPush,
		FromBranch: branch,
		ToBranch:   branch,
		Timestamp:  p.HeadCommit.Timestamp,
	}, true
}

// FromPullRequest builds the canonical record for a pull_request delivery,
// covering both the PULL_REQUEST and MERGE actions. Returns ok=false when
// the sender has no login. For merges the timestamp is merged_at, falling
// back to updated_at when upstream omits it.
func FromPullRequest(action model.Action, p *payload.PullRequestPayload) (model.CanonicalEvent, bool) {
	if p.Sender == nil || p.Sender.Login == "" {
		return model.CanonicalEvent{}, false
	}
	ts := p.PullRequest.CreatedAt
	if action == model.ActionMerge {
		ts = p.PullRequest.MergedAt
		if ts == "" {
			ts = p.PullRequest.UpdatedAt
		}
	}
	return model.CanonicalEvent{
		RequestID:  strconv.FormatInt(p.PullRequest.ID, 10),
		Author:     p.Sender.Login,
		Action:     action,
		FromBranch: p.PullRequest.Head.Ref,
		ToBranch:   p.PullRequest.Base.Ref,
		Timestamp:  ts,
	}, true
}
