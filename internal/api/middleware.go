package daily

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	limiter "github.com/glkeru/loyalty/daily/internal/limiter"
	models "github.com/glkeru/loyalty/daily/internal/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// метрики

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_http_requests_total",
			Help: "Кол-во HTTP запросов",
		},
		[]string{"path", "code"},
	)

	httpRequestsError = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_http_errors_total",
			Help: "Кол-во ошибочных HTTP запросов",
		},
		[]string{"path", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "daily_http_request_duration_seconds",
			Help:    "Продолжительность HTTP запросов",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "code"},
	)

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_rate_limited_total",
			Help: "Кол-во запросов, отклоненных лимитером",
		},
		[]string{"path"},
	)
)

// логируем вызовы
type logResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *logResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func MiddlewareLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			reqtime := time.Now()
			logrw := &logResponseWriter{w, 200}
			next.ServeHTTP(logrw, r)

			// шаблон маршрута, чтобы не плодить метки
			path := "unmatched"
			if route := mux.CurrentRoute(r); route != nil {
				path = r.URL.Path
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			labels := prometheus.Labels{
				"path": path,
				"code": strconv.Itoa(logrw.status),
			}
			elapsed := time.Since(reqtime)
			httpRequestsTotal.With(labels).Inc()
			httpRequestDuration.With(labels).Observe(elapsed.Seconds())

			if logrw.status >= http.StatusBadRequest {
				httpRequestsError.With(labels).Inc()
			}
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.Int("code", logrw.status),
				zap.Duration("elapsed", elapsed),
			)
		})
	}
}

func MiddlewareCORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			next.ServeHTTP(w, r)
		})
	}
}

// Лимит запросов по адресу клиента
func RateLimit(l *limiter.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, retry := l.Allow(ClientOrigin(r))
		if ok {
			next(w, r)
			return
		}
		rateLimitedTotal.WithLabelValues(r.URL.Path).Inc()
		seconds := int64(math.Ceil(retry.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		e := models.NewClaimError(models.RateLimited, "Too fast! Please wait.")
		e.RetryAfter = time.Duration(seconds) * time.Second
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
		writeError(w, e)
	}
}

// Адрес клиента: X-Forwarded-For, X-Real-IP, RemoteAddr
func ClientOrigin(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return host
}
