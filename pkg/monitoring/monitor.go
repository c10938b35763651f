package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 掌握引擎指标
	MasteryUpdateCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mastery_updates_total",
			Help: "Mastery ledger updates by scoring policy and outcome",
		},
		[]string{"policy", "outcome"}, // outcome: mastered / demoted / regressed / updated
	)

	PathGenerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_path_generations_total",
			Help: "Learning path generations by source",
		},
		[]string{"source"}, // source: fresh / cache
	)

	CycleWarningCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prerequisite_cycle_warnings_total",
			Help: "Prerequisite cycles detected during path traversal",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(MasteryUpdateCounter)
	prometheus.MustRegister(PathGenerationCounter)
	prometheus.MustRegister(CycleWarningCounter)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
