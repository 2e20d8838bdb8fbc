package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every metric is registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.catalogSize.Set(3)
				manager.lookupOutcomes.WithLabelValues("unique").Inc()

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "draftkit_roster_catalog_size")
				So(names, ShouldContain, "draftkit_roster_lookup_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("draft"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.rosterSize.Set(2)

			Convey("Then names and const labels follow the options", func() {
				expected := `
# HELP test_draft_size Number of committed picks
# TYPE test_draft_size gauge
test_draft_size{env="test"} 2
`
				So(testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_draft_size"), ShouldBeNil)
			})
		})

		Convey("When options receive empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "draftkit")
				So(manager.subsystem, ShouldEqual, "roster")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.constLabels, ShouldBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording catalog metrics", func() {
			UpdateCatalogSize(120)
			before := testutil.ToFloat64(globalManager.recordsLoaded.WithLabelValues("QB"))
			RecordRecordsLoaded("QB", 32)
			RecordRecordSkipped("QB", "malformed")
			RecordRepositoryLatency("insert", 0.02)

			Convey("Then the values are observable", func() {
				So(testutil.ToFloat64(globalManager.catalogSize), ShouldEqual, 120)
				So(testutil.ToFloat64(globalManager.recordsLoaded.WithLabelValues("QB"))-before, ShouldEqual, 32)
				So(testutil.ToFloat64(globalManager.recordsSkipped.WithLabelValues("QB", "malformed")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording roster metrics", func() {
			before := testutil.ToFloat64(globalManager.rosterMutations.WithLabelValues("add", "ok"))
			RecordRosterMutation("add", "ok")
			RecordLookup("ambiguous")
			UpdateRoster(3, 75, 125)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.rosterMutations.WithLabelValues("add", "ok"))-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.rosterSize), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.rosterSpent), ShouldEqual, 75)
				So(testutil.ToFloat64(globalManager.rosterRemaining), ShouldEqual, 125)
			})
		})

		Convey("When recording optimizer metrics", func() {
			before := testutil.ToFloat64(globalManager.solveTotal.WithLabelValues("ok"))
			RecordSolve("ok", 1.5, 4000)
			RecordSolve("ok", 0.1, 0)
			UpdateBestTeamPoints(812.4)

			Convey("Then runs are counted", func() {
				So(testutil.ToFloat64(globalManager.solveTotal.WithLabelValues("ok"))-before, ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.solvePoints), ShouldEqual, 812.4)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("/roster", "POST", "200")
				RecordHTTPRequestDuration("/roster", "POST", "200", 3.2)
				RecordErrorByComponent("http", "bad_request")
				RecordErrorByType("validation", "warning")
				RecordErrorByEndpoint("/roster", "POST", "ambiguous")
				RecordErrorLatency("optimizer", "table_too_large", 0.3)
			}, ShouldNotPanic)
		})

		Convey("When reading the registry", func() {
			Convey("Then it is the custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
				_, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(globalManager.lookupOutcomes.WithLabelValues("not_found"))

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordLookup("not_found")
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments are lost", func() {
			So(testutil.ToFloat64(globalManager.lookupOutcomes.WithLabelValues("not_found"))-before, ShouldEqual, 1600)
		})
	})
}
