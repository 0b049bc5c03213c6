package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agriquote/agriquote-backend/api/controllers"
	"github.com/agriquote/agriquote-backend/api/middleware"
	"github.com/agriquote/agriquote-backend/api/routes"
	"github.com/agriquote/agriquote-backend/internal/advisor"
	"github.com/agriquote/agriquote-backend/internal/analytics"
	"github.com/agriquote/agriquote-backend/internal/auth"
	"github.com/agriquote/agriquote-backend/internal/catalog"
	"github.com/agriquote/agriquote-backend/internal/exports"
	"github.com/agriquote/agriquote-backend/internal/platform"
	"github.com/agriquote/agriquote-backend/internal/quotations"
	"github.com/agriquote/agriquote-backend/internal/quotedoc"
	"github.com/agriquote/agriquote-backend/internal/seed"
	"github.com/agriquote/agriquote-backend/internal/users"
	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

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
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plat, err := platform.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := plat.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	if cfg.App.SeedOnStart {
		syncer, err := seed.NewSyncer(plat.Users, plat.Tractors, logg)
		if err != nil {
			logg.Error(ctx, "failed to create seed syncer", err)
			os.Exit(1)
		}
		if _, err := syncer.Sync(ctx); err != nil {
			logg.Error(ctx, "failed to seed data", err)
			os.Exit(1)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	market := metrics.NewMarketplace(reg)

	registry, err := users.NewService(plat.Users, logg)
	exitOn(ctx, logg, "users service", err)
	catalogService, err := catalog.NewService(plat.Tractors)
	exitOn(ctx, logg, "catalog service", err)
	quotationService, err := quotations.NewService(plat.Requests, market, logg)
	exitOn(ctx, logg, "quotations service", err)
	analyticsService, err := analytics.NewService(quotationService, catalogService, registry)
	exitOn(ctx, logg, "analytics service", err)

	var generator advisor.Generator
	if cfg.Advisor.GeminiAPIKey != "" {
		generator, err = advisor.NewGemini(ctx, cfg.Advisor.GeminiAPIKey, cfg.Advisor.Model)
		exitOn(ctx, logg, "gemini client", err)
	} else {
		logg.Warn(ctx, "advisor running without a gemini key, replies fall back")
	}
	advisorService, err := advisor.NewService(catalogService, generator, market, logg, cfg.Advisor.Timeout)
	exitOn(ctx, logg, "advisor service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		Users:     registry,
		JWTConfig: cfg.JWT,
		Logger:    logg,
	})
	exitOn(ctx, logg, "auth service", err)

	// a typed nil would defeat the nil checks downstream
	var redisPinger controllers.Pinger
	var rateStore middleware.RateLimiterStore
	if plat.Redis != nil {
		redisPinger = plat.Redis
		rateStore = plat.Redis
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(
			cfg,
			logg,
			reg,
			metrics.NewHTTP(reg),
			plat.DB,
			redisPinger,
			rateStore,
			authService,
			registry,
			catalogService,
			quotationService,
			analyticsService,
			advisorService,
			quotedoc.NewGenerator(indiaLocation()),
			exports.NewGenerator(),
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func exitOn(ctx context.Context, logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to create "+what, err)
	os.Exit(1)
}

func indiaLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}
