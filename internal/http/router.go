package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/auth"
	"github.com/MrJamesThe3rd/cofre/internal/http/category"
	"github.com/MrJamesThe3rd/cofre/internal/http/draft"
	"github.com/MrJamesThe3rd/cofre/internal/http/license"
	"github.com/MrJamesThe3rd/cofre/internal/http/transaction"
	"github.com/MrJamesThe3rd/cofre/internal/observability"
)

type Options struct {
	CORSOrigins  []string
	AdminKeyHash string
	Tokens       *auth.Tokens
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

func New(
	opts Options,
	transactionsV1 *transaction.Handler,
	draftsV1 *draft.Handler,
	categoriesV1 *category.Handler,
	licensesV1 *license.Handler,
	adminLicensesV1 *license.AdminHandler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(observability.TracingMiddleware)
	router.Use(observability.ZapLoggerMiddleware(opts.Logger))
	router.Use(observability.MetricsMiddleware(opts.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", auth.AdminKeyHeader},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/licenses", licensesV1.Routes)

		r.Route("/admin/licenses", func(r chi.Router) {
			r.Use(auth.AdminKey(opts.AdminKeyHash))
			adminLicensesV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(opts.Tokens.Middleware)

			r.Route("/transactions", transactionsV1.Routes)
			r.Route("/drafts", draftsV1.Routes)
			r.Route("/categories", categoriesV1.Routes)
		})
	})

	return router
}
