// Package kursevi собирает HTTP API магазина курсов.
package kursevi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/access"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/config"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/admin/reports"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/admin/stats"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/admin/usercreate"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/admin/users"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/auth/forgotpassword"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/auth/login"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/auth/logout"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/auth/register"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/auth/resetpassword"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/client/checkout"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/client/purchases"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/complete"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/create"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/list"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/progress"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/read"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/remove"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/course/update"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/csrftoken"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/educator/clients"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/health"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/payment/webhook"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/csrf"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/metrics"
	adminsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/admin"
	authsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/auth"
	coursesvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/course"
	paymentsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/payment"
)

// Deps - всё, что нужно маршрутам.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Resolver *middlewarectx.Resolver
	Guard    *csrf.Guard
	Policy   middlewarectx.Decider
	Auth     *authsvc.Service
	Courses  *coursesvc.Service
	Payments *paymentsvc.PaymentService
	Admin    *adminsvc.Service
	Health   map[string]health.Check
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger
	httpCfg := d.Config.HTTPServer
	sec := d.Config.Security

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   httpCfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", csrf.HeaderName},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	// allow - публичные маршруты: негодный токен трактуется как аноним.
	allow := func(action access.Action) func(http.Handler) http.Handler {
		return middlewarectx.Authorize(d.Policy, action, logger)
	}
	// protect - маршруты только для вошедших: негодный токен даёт 401
	// "invalid or expired token" до проверки политики.
	strict := middlewarectx.AuthenticateStrict(d.Resolver, logger)
	protect := func(action access.Action) func(http.Handler) http.Handler {
		authorize := allow(action)
		return func(next http.Handler) http.Handler {
			return strict(authorize(next))
		}
	}
	withCSRF := middlewarectx.CSRF(d.Guard, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(httpCfg.RateLimitRPS, httpCfg.RateLimitBurst, logger))
		r.Use(middlewarectx.Authenticate(d.Resolver))

		r.Get("/health", health.New(logger, d.Health).ServeHTTP)
		r.Get("/csrf-token", csrftoken.New(logger, d.Guard).ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/logout", logout.New(logger, sec.SecureCookies).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.LimitByIP(httpCfg.AuthPerMinute, time.Minute))
				r.Use(withCSRF)
				r.Post("/register", register.New(logger, d.Auth).ServeHTTP)
				r.Post("/login", login.New(logger, d.Auth, sec.TokenTTL, sec.SecureCookies).ServeHTTP)
				r.Post("/forgot-password", forgotpassword.New(logger, d.Auth).ServeHTTP)
				r.Post("/reset-password", resetpassword.New(logger, d.Auth).ServeHTTP)
			})
		})

		r.Route("/kursevi", func(r chi.Router) {
			r.With(allow(access.CourseList)).Get("/", list.New(logger, d.Courses).ServeHTTP)
			r.With(protect(access.CourseCreate), withCSRF).Post("/", create.New(logger, d.Courses).ServeHTTP)
			r.With(allow(access.CourseRead)).Get("/{id}", read.New(logger, d.Courses).ServeHTTP)
			r.With(protect(access.CourseUpdate), withCSRF).Patch("/{id}", update.New(logger, d.Courses).ServeHTTP)
			r.With(protect(access.CourseDelete), withCSRF).Delete("/{id}", remove.New(logger, d.Courses).ServeHTTP)
			r.With(protect(access.ProgressTrack)).Get("/{id}/napredak", progress.New(logger, d.Courses).ServeHTTP)
			r.With(protect(access.ProgressTrack), withCSRF).
				Post("/{id}/lekcije/{lekcijaId}/napredak", complete.New(logger, d.Courses).ServeHTTP)
		})

		r.Route("/klijent", func(r chi.Router) {
			r.With(protect(access.PurchaseList)).Get("/kupljeni-kursevi", purchases.New(logger, d.Payments).ServeHTTP)
			r.With(protect(access.Checkout), withCSRF).Post("/checkout", checkout.New(logger, d.Payments).ServeHTTP)
		})

		r.With(protect(access.EducatorClients)).Get("/edukator/klijenti", clients.New(logger, d.Admin).ServeHTTP)

		r.Route("/admin", func(r chi.Router) {
			r.With(protect(access.AdminUsers)).Get("/korisnici", users.New(logger, d.Admin).ServeHTTP)
			r.With(protect(access.AdminUserCreate), withCSRF).Post("/korisnik", usercreate.New(logger, d.Admin).ServeHTTP)
			r.With(protect(access.AdminReports)).Get("/izvestaji", reports.New(logger, d.Admin).ServeHTTP)
			r.With(protect(access.AdminStats)).Get("/statistika-prodaje", stats.New(logger, d.Admin).ServeHTTP)
		})

		// Вебхук провайдера (подпись вместо сессии)
		r.Post("/webhooks/checkout", webhook.New(logger, d.Payments, d.Config.Payment.WebhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
