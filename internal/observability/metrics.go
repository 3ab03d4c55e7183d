package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitrec",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})
	advisorDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitrec",
		Subsystem: "advisor",
		Name:      "duration_seconds",
		Help:      "Time spent producing a metrics-based recommendation.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"outcome"})
	filterResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitrec",
		Subsystem: "filter",
		Name:      "result_size",
		Help:      "Number of records returned by a category recommendation.",
		Buckets:   prometheus.LinearBuckets(0, 5, 8),
	})
)

func init() {
	prometheus.MustRegister(httpRequests, advisorDuration, filterResults)
}

// RecordRequest counts one finished HTTP request. route is the matched
// router pattern, not the raw path.
func RecordRequest(route, method string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ObserveAdvisor records one advisor call.
func ObserveAdvisor(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	advisorDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveFilterResult records how many records a filter returned.
func ObserveFilterResult(n int) {
	filterResults.Observe(float64(n))
}
