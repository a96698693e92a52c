package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_signups_total",
			Help: "Total number of successful waitlist signups",
		},
		[]string{"source", "language"},
	)

	signupConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waitlist_signup_conflicts_total",
			Help: "Total number of signup attempts with an already registered email",
		},
	)

	welcomeEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welcome_emails_sent_total",
			Help: "Total number of welcome emails delivered",
		},
		[]string{"language"},
	)

	welcomeEmailErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "welcome_email_errors_total",
			Help: "Total number of welcome emails that failed to send",
		},
	)

	waitlistSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "waitlist_size",
			Help: "Current number of entries waiting on the list",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSignup(source, language string) {
	signupsTotal.WithLabelValues(source, language).Inc()
}

func RecordSignupConflict() {
	signupConflictsTotal.Inc()
}

func RecordWelcomeEmailSent(language string) {
	welcomeEmailsSent.WithLabelValues(language).Inc()
}

func RecordWelcomeEmailError() {
	welcomeEmailErrors.Inc()
}

func SetWaitlistSize(size int) {
	waitlistSize.Set(float64(size))
}
