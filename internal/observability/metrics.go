package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Session bridge
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gitmcp_sessions_active",
		Help: "The current number of open event-stream sessions.",
	})
	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gitmcp_sessions_opened_total",
		Help: "The total number of event-stream sessions opened.",
	})
	SessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gitmcp_sessions_closed_total",
		Help: "The total number of event-stream sessions closed.",
	})
	Messages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gitmcp_messages_total",
		Help: "Client messages received on the message endpoint, by outcome.",
	}, []string{"outcome"})
	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gitmcp_events_dropped_total",
		Help: "Outbound stream events dropped because the session buffer was full.",
	})

	// Tools
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gitmcp_tool_calls_total",
		Help: "Tool invocations, by tool and status.",
	}, []string{"tool", "status"})
	ToolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gitmcp_tool_duration_seconds",
		Help:    "Tool execution time including the upstream round trip.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
)

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
