package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nations-server/internal/auth"
	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/middleware"
	"nations-server/internal/military"
	"nations-server/internal/player"
	"nations-server/internal/projection"
	"nations-server/internal/report"
	"nations-server/internal/rules"
	"nations-server/internal/server"
	"nations-server/internal/shared/config"
	"nations-server/internal/shared/database"
	"nations-server/internal/shared/logger"
	"nations-server/internal/shared/redis"
	"nations-server/internal/tick"
	"nations-server/internal/world"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := config.Init(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger.Init()

	cfg := config.GlobalConfig
	mainLogger := slog.With("component", "main")
	mainLogger.Info("Starting nations server", "environment", cfg.Server.Environment)

	db, err := database.Connect()
	if err != nil {
		mainLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		mainLogger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	cache, err := redis.Connect()
	if err != nil {
		mainLogger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	oauthConfig := auth.InitOAuth()

	// Repositories.
	countryRepo := country.NewRepository(db, slog.Default())
	playerRepo := player.NewRepository(db, slog.Default())
	authRepo := auth.NewRepository(db)
	budgetRepo := budget.NewRepository(db, slog.Default())
	rulesRepo := rules.NewRepository(db, slog.Default())
	effectRepo := effect.NewRepository(db, slog.Default())
	militaryRepo := military.NewRepository(db, slog.Default())
	worldRepo := world.NewRepository(db)

	// Services.
	resolver := effect.NewResolver()
	countryService := country.NewService(countryRepo, cache, slog.Default())
	playerService := player.NewService(playerRepo, slog.Default())
	authService := auth.NewService(authRepo, slog.Default())
	budgetService := budget.NewService(budgetRepo, slog.Default())
	militaryService := military.NewService(militaryRepo, slog.Default())
	worldService := world.NewService(worldRepo, slog.Default())
	projectionService := projection.NewService(
		countryService, budgetRepo, rulesRepo, effectRepo, militaryRepo, resolver, slog.Default())
	reportService := report.NewService(projectionService, worldService, cache, slog.Default())
	tickService := tick.NewService(
		db, countryRepo, countryService, budgetRepo, rulesRepo, effectRepo, worldService, resolver, slog.Default())

	routes := server.NewRoutes(
		db,
		playerService,
		authService,
		countryService,
		budgetService,
		militaryService,
		projectionService,
		reportService,
		worldService,
		tickService,
		rulesRepo,
		effectRepo,
		oauthConfig,
		slog.Default(),
	)
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		Enabled:           cfg.RateLimit.Enabled,
		TrustProxy:        cfg.RateLimit.TrustProxy,
	})
	corsMiddleware := middleware.NewCORS()

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	scheduler := tick.NewScheduler(tickService, cfg.Tick.Interval, slog.Default())
	if cfg.Tick.SchedulerEnabled {
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		mainLogger.Info("Tick scheduler disabled, ticks run via the admin endpoint only")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		mainLogger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLogger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		mainLogger.Error("Server shutdown failed", "error", err)
	}

	mainLogger.Info("Server stopped")
}
