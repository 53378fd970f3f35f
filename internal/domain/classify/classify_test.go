package classify_test

import (
	"errors"
	"testing"

	"github.com/okian/hooklog/internal/domain/classify"
	"github.com/okian/hooklog/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given inbound event labels and payloads", t, func() {
		Convey("When the label is push", func() {
			action, err := classify.Classify("push", []byte(`{"ref":"refs/heads/main"}`))

			Convey("Then the action is PUSH regardless of payload content", func() {
				So(err, ShouldBeNil)
				So(action, ShouldEqual, model.ActionPush)
			})
		})

		Convey("When the label is pull_request and merged is false", func() {
			action, err := classify.Classify("pull_request", []byte(`{"pull_request":{"merged":false}}`))

			Convey("Then the action is PULL_REQUEST", func() {
				So(err, ShouldBeNil)
				So(action, ShouldEqual, model.ActionPullRequest)
			})
		})

		Convey("When the label is pull_request and merged is true", func() {
			action, err := classify.Classify("pull_request", []byte(`{"pull_request":{"merged":true}}`))

			Convey("Then the action is refined to MERGE", func() {
				So(err, ShouldBeNil)
				So(action, ShouldEqual, model.ActionMerge)
			})
		})

		Convey("When the label is pull_request and the payload lacks the merged flag", func() {
			action, err := classify.Classify("pull_request", []byte(`{"pull_request":{}}`))

			Convey("Then the action defaults to PULL_REQUEST", func() {
				So(err, ShouldBeNil)
				So(action, ShouldEqual, model.ActionPullRequest)
			})
		})

		Convey("When the label is pull_request and the payload is not valid JSON", func() {
			action, err := classify.Classify("pull_request", []byte(`{`))

			Convey("Then classification still yields PULL_REQUEST and defers shape errors", func() {
				So(err, ShouldBeNil)
				So(action, ShouldEqual, model.ActionPullRequest)
			})
		})

		Convey("When the label is empty", func() {
			_, err := classify.Classify("", []byte(`{}`))

			Convey("Then it fails with ErrMissingEventType", func() {
				So(errors.Is(err, classify.ErrMissingEventType), ShouldBeTrue)
			})
		})

		Convey("When the label is outside the supported set", func() {
			for _, label := range []string{"issues", "release", "PUSH", "Pull_Request"} {
				_, err := classify.Classify(label, []byte(`{}`))
				So(errors.Is(err, classify.ErrUnsupportedEvent), ShouldBeTrue)
			}
		})
	})
}
