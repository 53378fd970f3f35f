package payload_test

import (
	"errors"
	"testing"

	"github.com/okian/hooklog/internal/domain/payload"
	. "github.com/smartystreets/goconvey/convey"
)

const validPush = `{
	"ref": "refs/heads/main",
	"before": "aaa111",
	"after": "bbb222",
	"repository": {"id": 1, "name": "repo", "full_name": "owner/repo"},
	"pusher": {"name": "alice", "email": "alice@example.com"},
	"commits": [{"id": "bbb222", "timestamp": "2024-01-01T00:00:00Z", "author": {"name": "alice"}}],
	"head_commit": {"id": "bbb222", "timestamp": "2024-01-01T00:00:00Z", "author": {"name": "alice"}}
}`

const validPullRequest = `{
	"action": "opened",
	"number": 7,
	"pull_request": {
		"id": 4242,
		"number": 7,
		"state": "open",
		"merged": false,
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": "2024-01-02T00:00:00Z",
		"head": {"ref": "feature-x"},
		"base": {"ref": "main"}
	},
	"sender": {"login": "bob"}
}`

func TestParsePush(t *testing.T) {
	Convey("Given push delivery payloads", t, func() {
		Convey("When the payload matches the contract", func() {
			p, err := payload.ParsePush([]byte(validPush))

			Convey("Then parsing succeeds with all fields populated", func() {
				So(err, ShouldBeNil)
				So(p.Ref, ShouldEqual, "refs/heads/main")
				So(p.HeadCommit, ShouldNotBeNil)
				So(p.HeadCommit.Author.Name, ShouldEqual, "alice")
			})
		})

		Convey("When head_commit is null", func() {
			p, err := payload.ParsePush([]byte(`{
				"ref": "refs/heads/main", "before": "a", "after": "b",
				"repository": {"id": 1, "name": "r", "full_name": "o/r"},
				"pusher": {"name": "alice"}, "commits": [], "head_commit": null
			}`))

			Convey("Then parsing still succeeds; absence is the canonicalizer's concern", func() {
				So(err, ShouldBeNil)
				So(p.HeadCommit, ShouldBeNil)
			})
		})

		Convey("When ref is missing", func() {
			_, err := payload.ParsePush([]byte(`{"before": "a", "after": "b"}`))

			Convey("Then the shape error names ref", func() {
				So(errors.Is(err, payload.ErrShapeMismatch), ShouldBeTrue)
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "ref")
			})
		})

		Convey("When pusher is absent", func() {
			_, err := payload.ParsePush([]byte(`{
				"ref": "refs/heads/main", "before": "a", "after": "b",
				"repository": {"id": 1, "name": "r", "full_name": "o/r"},
				"commits": []
			}`))

			Convey("Then the shape error names pusher", func() {
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "pusher")
			})
		})

		Convey("When the head commit carries no timestamp", func() {
			_, err := payload.ParsePush([]byte(`{
				"ref": "refs/heads/main", "before": "a", "after": "b",
				"repository": {"id": 1, "name": "r", "full_name": "o/r"},
				"pusher": {"name": "alice"}, "commits": [],
				"head_commit": {"id": "b", "author": {"name": "alice"}}
			}`))

			Convey("Then the shape error names head_commit.timestamp", func() {
				So(errors.Is(err, payload.ErrShapeMismatch), ShouldBeTrue)
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "head_commit.timestamp")
			})
		})

		Convey("When ref has the wrong type", func() {
			_, err := payload.ParsePush([]byte(`{"ref": 42}`))

			Convey("Then the mistyped field is reported", func() {
				So(errors.Is(err, payload.ErrShapeMismatch), ShouldBeTrue)
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "ref")
			})
		})

		Convey("When the body is not JSON at all", func() {
			_, err := payload.ParsePush([]byte(`not json`))

			Convey("Then it fails with ErrInvalidJSON", func() {
				So(errors.Is(err, payload.ErrInvalidJSON), ShouldBeTrue)
			})
		})

		Convey("When the payload carries unknown extra fields", func() {
			p, err := payload.ParsePush([]byte(`{
				"ref": "refs/heads/main", "before": "a", "after": "b",
				"repository": {"id": 1, "name": "r", "full_name": "o/r"},
				"pusher": {"name": "alice"}, "commits": [],
				"head_commit": null,
				"organization": {"login": "acme"}, "installation": {"id": 9}
			}`))

			Convey("Then they are ignored, not rejected", func() {
				So(err, ShouldBeNil)
				So(p.Ref, ShouldEqual, "refs/heads/main")
			})
		})
	})
}

func TestParsePullRequest(t *testing.T) {
	Convey("Given pull_request delivery payloads", t, func() {
		Convey("When the payload matches the contract", func() {
			p, err := payload.ParsePullRequest([]byte(validPullRequest))

			Convey("Then parsing succeeds", func() {
				So(err, ShouldBeNil)
				So(p.PullRequest.ID, ShouldEqual, 4242)
				So(p.PullRequest.Head.Ref, ShouldEqual, "feature-x")
				So(p.PullRequest.Base.Ref, ShouldEqual, "main")
				So(p.Sender.Login, ShouldEqual, "bob")
			})
		})

		Convey("When parsed against the push contract instead", func() {
			_, err := payload.ParsePush([]byte(validPullRequest))

			Convey("Then it fails with a shape mismatch naming the first missing field", func() {
				So(errors.Is(err, payload.ErrShapeMismatch), ShouldBeTrue)
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "ref")
			})
		})

		Convey("When pull_request is absent", func() {
			_, err := payload.ParsePullRequest([]byte(`{"action": "opened", "sender": {"login": "bob"}}`))

			Convey("Then the shape error names pull_request", func() {
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "pull_request")
			})
		})

		Convey("When the head ref is missing", func() {
			_, err := payload.ParsePullRequest([]byte(`{
				"action": "opened",
				"pull_request": {"id": 1, "created_at": "t", "base": {"ref": "main"}},
				"sender": {"login": "bob"}
			}`))

			Convey("Then the nested field path is reported", func() {
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "pull_request.head.ref")
			})
		})

		Convey("When created_at is missing", func() {
			_, err := payload.ParsePullRequest([]byte(`{
				"action": "opened",
				"pull_request": {"id": 1, "head": {"ref": "f"}, "base": {"ref": "main"}},
				"sender": {"login": "bob"}
			}`))

			Convey("Then the shape error names pull_request.created_at", func() {
				So(errors.Is(err, payload.ErrShapeMismatch), ShouldBeTrue)
				var shapeErr *payload.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Field, ShouldEqual, "pull_request.created_at")
			})
		})

		Convey("When the sender has no login", func() {
			p, err := payload.ParsePullRequest([]byte(`{
				"action": "opened",
				"pull_request": {"id": 1, "created_at": "t", "head": {"ref": "f"}, "base": {"ref": "main"}},
				"sender": {"id": 99}
			}`))

			Convey("Then parsing tolerates the absent identity field", func() {
				So(err, ShouldBeNil)
				So(p.Sender.Login, ShouldBeEmpty)
			})
		})
	})
}
