package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/draftkit/pkg/metrics"
)

func TestClassify(t *testing.T) {
	Convey("Given response statuses", t, func() {
		Convey("Then known statuses map to their class", func() {
			So(classify(http.StatusConflict), ShouldResemble, errorClass{"conflict", "low"})
			So(classify(http.StatusServiceUnavailable), ShouldResemble, errorClass{"unavailable", "high"})
			So(classify(http.StatusNotFound).kind, ShouldEqual, "not_found")
		})

		Convey("Then unknown statuses fall back by range", func() {
			So(classify(http.StatusBadGateway), ShouldResemble, errorClass{"server_error", "high"})
			So(classify(http.StatusTeapot), ShouldResemble, errorClass{"client_error", "medium"})
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given an instrumented handler", t, func() {
		h := MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusConflict, "failed", nil)
		}, "middleware_test")

		Convey("When it answers with a conflict", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodPost, "/x", http.NoBody))

			Convey("Then the response passes through untouched", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			})

			Convey("Then the request is counted with its status", func() {
				n, err := testutil.GatherAndCount(metrics.GetRegistry(), "draftkit_roster_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldBeGreaterThan, 0)
			})
		})
	})
}
