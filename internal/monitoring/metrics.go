package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "larder_http_requests_total",
			Help: "HTTP requests processed, by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "larder_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	suggestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "larder_suggest_duration_seconds",
			Help:    "Time spent building snapshots, histories and ranking recipes.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	suggestCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "larder_suggest_candidates",
			Help:    "Recipes that passed the pre-filter per suggestion request.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)
)

// Middleware records request counters and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveSuggest records one suggestion pass.
func ObserveSuggest(candidates int, elapsed time.Duration) {
	suggestDuration.Observe(elapsed.Seconds())
	suggestCandidates.Observe(float64(candidates))
}
