package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agriquote/agriquote-backend/api/controllers"
	"github.com/agriquote/agriquote-backend/api/middleware"
	"github.com/agriquote/agriquote-backend/internal/advisor"
	"github.com/agriquote/agriquote-backend/internal/analytics"
	"github.com/agriquote/agriquote-backend/internal/auth"
	"github.com/agriquote/agriquote-backend/internal/catalog"
	"github.com/agriquote/agriquote-backend/internal/exports"
	"github.com/agriquote/agriquote-backend/internal/quotations"
	"github.com/agriquote/agriquote-backend/internal/quotedoc"
	"github.com/agriquote/agriquote-backend/internal/users"
	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/metrics"
)

// NewRouter wires every route. dbP, redisP and rateStore may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTP,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	rateStore middleware.RateLimiterStore,
	authService auth.Service,
	registry users.Service,
	catalogService catalog.Service,
	quotationService quotations.Service,
	analyticsService analytics.Service,
	advisorService advisor.Service,
	quoteDocs *quotedoc.Generator,
	requestExports *exports.Generator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginPhoneLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/districts", controllers.PublicDistricts())
		r.Get("/brands", controllers.PublicBrands(catalogService, logg))
		r.Get("/tractors", controllers.PublicTractors(catalogService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.LoadCaller(registry, logg))

		r.Get("/me", controllers.Me(logg))
		r.Post("/advisor", controllers.Advise(advisorService, logg))

		r.Route("/customer", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleCustomer))
			r.Post("/requests", controllers.CustomerCreateRequest(quotationService, catalogService, logg))
			r.Get("/requests", controllers.CustomerListRequests(quotationService, logg))
			r.Get("/requests/{requestId}/quotes/{quoteId}/document", controllers.CustomerQuoteDocument(quotationService, quoteDocs, logg))
		})

		r.Route("/dealer", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleDealer))
			r.Get("/requests", controllers.DealerListRequests(quotationService, logg))
			r.Post("/requests/{requestId}/quotes", controllers.DealerSubmitQuote(quotationService, logg))
			r.Get("/summary", controllers.DealerSummary(analyticsService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.LoadCaller(registry, logg))
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))

		r.Route("/dealers", func(r chi.Router) {
			r.Get("/", controllers.AdminListDealers(registry, logg))
			r.Post("/{dealerId}/approval", controllers.AdminSetApproval(registry, logg))
			r.Put("/{dealerId}/brands", controllers.AdminSetBrands(registry, logg))
		})
		r.Route("/tractors", func(r chi.Router) {
			r.Get("/", controllers.PublicTractors(catalogService, logg))
			r.Post("/", controllers.AdminAddTractor(catalogService, logg))
			r.Delete("/{tractorId}", controllers.AdminRemoveTractor(catalogService, logg))
		})
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", controllers.AdminListRequests(quotationService, logg))
			r.Get("/export", controllers.AdminExportRequests(quotationService, requestExports, logg))
		})
		r.Get("/analytics", controllers.AdminAnalytics(analyticsService, logg))
	})

	return r
}
