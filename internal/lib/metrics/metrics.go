// Package metrics объявляет Prometheus-метрики API магазина.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AccessDecisionsTotal считает решения политики доступа.
	AccessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kursevi_access_decisions_total",
			Help: "Total number of access policy decisions",
		},
		[]string{"action", "outcome"},
	)

	// HTTPRequestsTotal считает обработанные HTTP-запросы.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kursevi_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration - длительность обработки запросов.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kursevi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CheckoutSessionsTotal считает созданные сессии оплаты.
	CheckoutSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kursevi_checkout_sessions_total",
			Help: "Total number of created checkout sessions",
		},
	)

	// PurchasesRecordedTotal считает записанные покупки курсов.
	PurchasesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kursevi_purchases_recorded_total",
			Help: "Total number of recorded course purchases",
		},
	)
)

// RecordAccessDecision учитывает решение политики.
func RecordAccessDecision(action, outcome string) {
	AccessDecisionsTotal.WithLabelValues(action, outcome).Inc()
}

// Middleware учитывает каждый запрос по шаблону маршрута chi.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
