package canonical_test

import (
	"testing"

	"github.com/okian/hooklog/internal/domain/canonical"
	"github.com/okian/hooklog/internal/domain/model"
	"github.com/okian/hooklog/internal/domain/payload"
	. "github.com/smartystreets/goconvey/convey"
)

func pushPayload(head *payload.Commit) *payload.PushPayload {
	return &payload.PushPayload{
		Ref:        "refs/heads/main",
		Before:     "aaa",
		After:      "bbb",
		Repository: &payload.Repository{ID: 1, Name: "r", FullName: "o/r"},
		Pusher:     &payload.User{Name: "alice"},
		Commits:    []payload.Commit{},
		HeadCommit: head,
	}
}

func prPayload(login string) *payload.PullRequestPayload {
	return &payload.PullRequestPayload{
		Action: "opened",
		Number: 7,
		PullRequest: &payload.PullRequest{
			ID:        4242,
			Number:    7,
			CreatedAt: "2023-12-30T00:00:00Z",
			UpdatedAt: "2023-12-31T00:00:00Z",
			Head:      payload.Ref{Ref: "feature-x"},
			Base:      payload.Ref{Ref: "main"},
		},
		Sender: &payload.User{Login: login},
	}
}

func TestFromPush(t *testing.T) {
	Convey("Given push payloads", t, func() {
		Convey("When the head commit has an author name", func() {
			ev, ok := canonical.FromPush(pushPayload(&payload.Commit{
				ID:        "bbb",
				Timestamp: "2024-01-01T00:00:00Z",
				Author:    payload.User{Name: "alice"},
			}))

			Convey("Then the canonical record mirrors the head commit", func() {
				So(ok, ShouldBeTrue)
				So(ev.Action, ShouldEqual, model.ActionPush)
				So(ev.RequestID, ShouldEqual, "bbb")
				So(ev.Author, ShouldEqual, "alice")
				So(ev.FromBranch, ShouldEqual, "main")
				So(ev.ToBranch, ShouldEqual, "main")
				So(ev.Timestamp, ShouldEqual, "2024-01-01T00:00:00Z")
			})
		})

		Convey("When the head commit is absent", func() {
			_, ok := canonical.FromPush(pushPayload(nil))

			Convey("Then no record is produced", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the head commit author has no name", func() {
			_, ok := canonical.FromPush(pushPayload(&payload.Commit{
				ID:        "bbb",
				Timestamp: "2024-01-01T00:00:00Z",
				Author:    payload.User{Email: "anon@example.com"},
			}))

			Convey("Then no record is produced", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the ref does not carry the refs/heads/ prefix", func() {
			p := pushPayload(&payload.Commit{ID: "bbb", Timestamp: "t", Author: payload.User{Name: "alice"}})
			p.Ref = "main"
			ev, ok := canonical.FromPush(p)

			Convey("Then the ref is used as-is", func() {
				So(ok, ShouldBeTrue)
				So(ev.FromBranch, ShouldEqual, "main")
			})
		})
	})
}

func TestFromPullRequest(t *testing.T) {
	Convey("Given pull_request payloads", t, func() {
		Convey("When canonicalizing an open PR", func() {
			ev, ok := canonical.FromPullRequest(model.ActionPullRequest, prPayload("bob"))

			Convey("Then the record uses the PR id, sender login and created_at", func() {
				So(ok, ShouldBeTrue)
				So(ev.Action, ShouldEqual, model.ActionPullRequest)
				So(ev.RequestID, ShouldEqual, "4242")
				So(ev.Author, ShouldEqual, "bob")
				So(ev.FromBranch, ShouldEqual, "feature-x")
				So(ev.ToBranch, ShouldEqual, "main")
				So(ev.Timestamp, ShouldEqual, "2023-12-30T00:00:00Z")
			})
		})

		Convey("When canonicalizing a merge with merged_at present", func() {
			p := prPayload("bob")
			p.PullRequest.Merged = true
			p.PullRequest.MergedAt = "2024-01-01T00:00:00Z"
			ev, ok := canonical.FromPullRequest(model.ActionMerge, p)

			Convey("Then the record is a MERGE stamped with merged_at", func() {
				So(ok, ShouldBeTrue)
				So(ev.Action, ShouldEqual, model.ActionMerge)
				So(ev.Timestamp, ShouldEqual, "2024-01-01T00:00:00Z")
			})
		})

		Convey("When merged_at is absent", func() {
			p := prPayload("bob")
			p.PullRequest.Merged = true
			ev, ok := canonical.FromPullRequest(model.ActionMerge, p)

			Convey("Then the timestamp falls back to updated_at", func() {
				So(ok, ShouldBeTrue)
				So(ev.Timestamp, ShouldEqual, "2023-12-31T00:00:00Z")
			})
		})

		Convey("When the sender login is absent", func() {
			_, ok := canonical.FromPullRequest(model.ActionPullRequest, prPayload(""))

			Convey("Then no record is produced", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
