package metrics_test

import (
	"testing"

	"github.com/okian/hooklog/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with options", func() {
			m := metrics.NewManager(
				metrics.WithNamespace("testns"),
				metrics.WithSubsystem("testsub"),
				metrics.WithHistogramBuckets([]float64{1, 5, 10}),
				metrics.WithPrometheusRegistry(registry),
			)

			Convey("Then construction succeeds and metrics register", func() {
				So(m, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When creating a disabled manager", func() {
			m := metrics.NewManager(
				metrics.WithMetricsEnabled(false),
				metrics.WithPrometheusRegistry(registry),
			)

			Convey("Then it still constructs", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the registry is exposed for scraping", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})

		Convey("Then every helper records without panicking", func() {
			So(func() {
				metrics.RecordDelivery("ACCEPTED")
				metrics.RecordDelivery("DROPPED")
				metrics.RecordDelivery("REJECTED")
				metrics.RecordRejection("auth")
				metrics.RecordSignatureFailure()
				metrics.RecordStoreAppendLatency(0.5)
				metrics.UpdateStoreSize(10)
				metrics.RecordReadQuery("recent")
				metrics.RecordReadQuery("after")
				metrics.RecordHTTPRequest("webhook_receiver", "POST", "200")
				metrics.RecordHTTPRequestDuration("webhook_receiver", "POST", "200", 1.2)
				metrics.RecordErrorByEndpoint("webhook_receiver", "POST", "auth_error")
				metrics.RecordErrorByType("auth_error", "medium")
				metrics.RecordErrorLatency("http", "auth_error", 0.8)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(12)
				metrics.RecordSystemGCPauseTime(0.1)
			}, ShouldNotPanic)
		})

		Convey("Then recorded counters are visible in a gather", func() {
			metrics.RecordDelivery("ACCEPTED")
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			found := false
			for _, f := range families {
				if f.GetName() == "hooklog_ingest_deliveries_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
