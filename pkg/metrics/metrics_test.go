package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with an isolated registry", func() {
			manager := NewManager(WithRegistry(prometheus.NewRegistry()))

			So(manager, ShouldNotBeNil)
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(prometheus.NewRegistry()),
			)

			So(manager, ShouldNotBeNil)
			So(manager.namespace, ShouldEqual, "test-namespace")
			So(manager.subsystem, ShouldEqual, "test-subsystem")
		})

		Convey("When options carry zero values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "consched")
				So(manager.subsystem, ShouldEqual, "schedule")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(globalManager, ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When recording through the package helpers", func() {
			recordAll := func() {
				RecordRebuild(120 * time.Millisecond)
				RecordRebuildFailure()
				RecordRowExcluded("short_row")
				RecordFetchError()
				RecordCacheHit()
				RecordCacheMiss()
				RecordStaleServe()
				UpdateEventsTotal(42)
				UpdatePlayersTotal(17)
				RecordHTTPRequest("players", "GET", "200")
				RecordHTTPRequestDuration("players", "GET", 0.02)
			}

			So(recordAll, ShouldNotPanic)
		})
	})
}
