package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/hooklog/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("When fetching it", func() {
			l := logger.Get()

			Convey("Then it is usable at every level without panicking", func() {
				So(l, ShouldNotBeNil)
				So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("n", 1))
					l.Warn(ctx, "warn message", logger.Int64("id", 2))
					l.Error(ctx, "error message", logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("pipeline")

			Convey("Then it logs without panicking", func() {
				So(func() { named.Info(ctx, "named message") }, ShouldNotPanic)
			})
		})

		Convey("When flushing", func() {
			Convey("Then Sync is a no-op", func() {
				So(logger.Sync(), ShouldBeNil)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the level parser", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known levels parse", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "INFO", " Error "} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then the empty string defaults to info", func() {
			So(logger.SetLevelString(""), ShouldBeNil)
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("Then each captures key and value", func() {
			So(logger.String("a", "b"), ShouldResemble, logger.Field{Key: "a", Value: "b"})
			So(logger.Int("n", 3), ShouldResemble, logger.Field{Key: "n", Value: 3})
			So(logger.Int64("id", int64(4)), ShouldResemble, logger.Field{Key: "id", Value: int64(4)})
			So(logger.Any("x", 1.5), ShouldResemble, logger.Field{Key: "x", Value: 1.5})

			err := errors.New("boom")
			So(logger.Error(err), ShouldResemble, logger.Field{Key: "error", Value: err})
		})
	})
}
