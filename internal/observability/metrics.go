package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mspctl",
			Subsystem: "wire",
			Name:      "frames_sent_total",
			Help:      "Frames written to the transport.",
		},
		[]string{"version"},
	)
	framesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mspctl",
			Subsystem: "wire",
			Name:      "frames_received_total",
			Help:      "Frames decoded from the transport.",
		},
		[]string{"version"},
	)
	frameErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mspctl",
			Subsystem: "wire",
			Name:      "frame_errors_total",
			Help:      "Inbound frames rejected before decode.",
		},
		[]string{"reason"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mspctl",
			Subsystem: "session",
			Name:      "request_duration_seconds",
			Help:      "Correlated request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "outcome"},
	)
	unsolicited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mspctl",
			Subsystem: "session",
			Name:      "unsolicited_messages_total",
			Help:      "Decoded frames published without a pending request.",
		},
		[]string{"code"},
	)
	droppedMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mspctl",
			Subsystem: "session",
			Name:      "dropped_messages_total",
			Help:      "Notifications dropped because the consumer fell behind.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mspctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total monitor HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mspctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Monitor HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesSent, framesReceived, frameErrors,
			requestDuration, unsolicited, droppedMessages,
			httpRequests, httpDuration,
		)
	})
}

func RecordFrameSent(version string) {
	RegisterMetrics()
	framesSent.WithLabelValues(version).Inc()
}

func RecordFrameReceived(version string) {
	RegisterMetrics()
	framesReceived.WithLabelValues(version).Inc()
}

func RecordFrameError(reason string) {
	RegisterMetrics()
	frameErrors.WithLabelValues(reason).Inc()
}

func RecordRequest(code string, outcome string, duration time.Duration) {
	RegisterMetrics()
	requestDuration.WithLabelValues(code, outcome).Observe(duration.Seconds())
}

func RecordUnsolicited(code string) {
	RegisterMetrics()
	unsolicited.WithLabelValues(code).Inc()
}

func RecordDroppedMessage() {
	RegisterMetrics()
	droppedMessages.Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
