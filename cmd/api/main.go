package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xypherlux/storefront-backend/api/routes"
	authsvc "github.com/xypherlux/storefront-backend/internal/auth"
	"github.com/xypherlux/storefront-backend/internal/cart"
	"github.com/xypherlux/storefront-backend/internal/catalog"
	checkoutsvc "github.com/xypherlux/storefront-backend/internal/checkout"
	"github.com/xypherlux/storefront-backend/internal/mailer"
	"github.com/xypherlux/storefront-backend/internal/orders"
	"github.com/xypherlux/storefront-backend/internal/users"
	"github.com/xypherlux/storefront-backend/pkg/auth/session"
	"github.com/xypherlux/storefront-backend/pkg/config"
	"github.com/xypherlux/storefront-backend/pkg/db"
	"github.com/xypherlux/storefront-backend/pkg/logger"
	"github.com/xypherlux/storefront-backend/pkg/metrics"
	"github.com/xypherlux/storefront-backend/pkg/migrate"
	"github.com/xypherlux/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	resetStore, err := session.NewResetStore(redisClient, cfg.PasswordReset.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create reset store", err)
		os.Exit(1)
	}

	var mailSender mailer.Sender
	if cfg.Mail.SMTPHost != "" {
		smtpSender, err := mailer.NewSMTPSender(cfg.Mail, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create smtp sender", err)
			os.Exit(1)
		}
		mailSender = smtpSender
	} else {
		mailSender = mailer.NewNoopSender(logg)
	}

	userRepo := users.NewRepository(dbClient.DB())
	resetCodeRepo := authsvc.NewResetCodeRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		ResetCodeRepo:  resetCodeRepo,
		SessionManager: sessionManager,
		ResetStore:     resetStore,
		Mailer:         mailSender,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		ResetConfig:    cfg.PasswordReset,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	pricer, err := cart.NewPricer(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricer", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, catalogRepo, pricer)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(dbClient, cartRepo, ordersRepo, userRepo, pricer, mailSender, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	metricsRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(metricsRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionChecker:  sessionManager,
			HTTPMetrics:     httpMetrics,
			MetricsRegistry: metricsRegistry,
			AuthService:     authService,
			CatalogService:  catalogService,
			CartService:     cartService,
			CheckoutService: checkoutService,
			OrdersService:   ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
