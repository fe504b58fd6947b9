package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scenectl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"server", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scenectl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"server", "method", "path", "status"},
	)
	sceneOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scenectl",
			Subsystem: "scene",
			Name:      "operations_total",
			Help:      "Scene load, resolve and save operations by outcome.",
		},
		[]string{"op", "result"},
	)
	sceneDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scenectl",
			Subsystem: "scene",
			Name:      "operation_duration_seconds",
			Help:      "Scene operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, sceneOps, sceneDuration)
	})
}

func RecordHTTPRequest(server, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(server, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(server, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordSceneOperation counts op under "ok" or the error kind that ended it.
func RecordSceneOperation(op string, err error, duration time.Duration) {
	RegisterMetrics()
	sceneOps.WithLabelValues(op, ResultLabel(err)).Inc()
	sceneDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func ResultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return dataerr.KindOf(err).String()
}

// SceneRecorder adapts the package-level collectors to resolver.Recorder.
type SceneRecorder struct{}

func (SceneRecorder) RecordOperation(op string, err error, duration time.Duration) {
	RecordSceneOperation(op, err, duration)
}
