package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xypherlux/storefront-backend/api/controllers"
	"github.com/xypherlux/storefront-backend/api/middleware"
	authsvc "github.com/xypherlux/storefront-backend/internal/auth"
	"github.com/xypherlux/storefront-backend/internal/cart"
	"github.com/xypherlux/storefront-backend/internal/catalog"
	checkoutsvc "github.com/xypherlux/storefront-backend/internal/checkout"
	"github.com/xypherlux/storefront-backend/internal/orders"
	"github.com/xypherlux/storefront-backend/pkg/auth/session"
	"github.com/xypherlux/storefront-backend/pkg/config"
	"github.com/xypherlux/storefront-backend/pkg/db"
	"github.com/xypherlux/storefront-backend/pkg/logger"
	"github.com/xypherlux/storefront-backend/pkg/metrics"
	"github.com/xypherlux/storefront-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry

	AuthService     authsvc.Service
	CatalogService  catalog.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))

		r.Route("/password-reset", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/request", controllers.PasswordResetRequest(deps.AuthService, logg))
			r.Post("/verify", controllers.PasswordResetVerify(deps.AuthService, logg))
			r.Post("/complete", controllers.PasswordResetComplete(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoryList(deps.CatalogService, logg))
		r.Get("/products", controllers.ProductList(deps.CatalogService, logg))
		r.Get("/products/featured", controllers.ProductFeatured(deps.CatalogService, logg))
		r.Get("/products/{slug}", controllers.ProductDetail(deps.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartService, logg))
				r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
				r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.CartService, logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))
				r.Delete("/", controllers.CartClear(deps.CartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersService, logg))
			})
		})
	})

	return r
}
