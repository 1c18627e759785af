package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bitrise-io/api-utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rocketchat_webhooks_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status_code"})

	traceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rocketchat_webhooks_trace_duration_seconds",
		Help:    "Duration of traced sections in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"name"})

	webhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rocketchat_webhooks_events_total",
		Help: "The total number of processed webhook events",
	}, []string{"provider", "event_type", "outcome"})
)

func getContentTypeFromHeader(header http.Header) string {
	ct := header["Content-Type"]
	contentType := ""
	if len(ct) >= 1 {
		contentType = ct[0]
	}
	return contentType
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// WrapHandlerFunc ...
func WrapHandlerFunc(h func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		h(recorder, req)

		elapsed := time.Since(startTime)
		requestDuration.WithLabelValues(req.Method, strconv.Itoa(recorder.statusCode)).Observe(elapsed.Seconds())
		logging.WithContext(req.Context()).Info(" => request",
			zap.String("method", req.Method),
			zap.String("content_type", getContentTypeFromHeader(req.Header)),
			zap.String("uri", req.RequestURI),
			zap.Int("status", recorder.statusCode),
			zap.Duration("elapsed", elapsed),
		)
	}
}

// Trace ...
func Trace(name string, fn func()) {
	startTime := time.Now()
	fn()
	elapsed := time.Since(startTime)
	traceDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	logging.WithContext(nil).Debug(" ==> TRACE", zap.String("name", name), zap.Duration("elapsed", elapsed))
}

// RecordOutcome counts a processed webhook event.
func RecordOutcome(provider, eventType, outcome string) {
	webhookEvents.WithLabelValues(provider, eventType, outcome).Inc()
}

// Handler serves the collected metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
