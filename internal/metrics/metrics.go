// Package metrics exposes Prometheus collectors for the HTTP API and the moderation workflow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "estatehub",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "estatehub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	complaintsFiled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Subsystem: "moderation",
			Name:      "complaints_filed_total",
			Help:      "Complaints filed, by target type and category.",
		},
		[]string{"target_type", "type"},
	)

	complaintTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Subsystem: "moderation",
			Name:      "complaint_status_changes_total",
			Help:      "Complaint status updates, by resulting status.",
		},
		[]string{"status"},
	)

	appealsFiled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Subsystem: "moderation",
			Name:      "appeals_filed_total",
			Help:      "Appeals submitted by property owners.",
		},
	)

	appealsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Subsystem: "moderation",
			Name:      "appeals_resolved_total",
			Help:      "Appeals resolved, by decision and resulting property action.",
		},
		[]string{"decision", "property_action"},
	)

	userBans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Subsystem: "moderation",
			Name:      "user_bans_total",
			Help:      "Bans applied to users, by source.",
		},
		[]string{"source"},
	)

	streamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "estatehub",
			Subsystem: "notifications",
			Name:      "stream_clients",
			Help:      "Websocket clients currently subscribed to notifications.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		complaintsFiled,
		complaintTransitions,
		appealsFiled,
		appealsResolved,
		userBans,
		streamClients,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the matched route
// template, so /api/properties/:id is one series regardless of the id.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func RecordComplaintFiled(targetType, complaintType string) {
	complaintsFiled.WithLabelValues(targetType, complaintType).Inc()
}

func RecordComplaintStatus(status string) {
	complaintTransitions.WithLabelValues(status).Inc()
}

func RecordAppealFiled() {
	appealsFiled.Inc()
}

func RecordAppealResolved(decision, propertyAction string) {
	appealsResolved.WithLabelValues(decision, propertyAction).Inc()
}

// RecordBan counts a ban; source is "auto" for reputation/frequency bans and "admin" otherwise.
func RecordBan(source string) {
	userBans.WithLabelValues(source).Inc()
}

func SetStreamClients(n int) {
	streamClients.Set(float64(n))
}
