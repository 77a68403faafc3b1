package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"starforge-server/internal/galaxy"
	"starforge-server/internal/middleware"
	"starforge-server/internal/server"
	"starforge-server/internal/shared/config"
	"starforge-server/internal/shared/database"
	"starforge-server/internal/shared/logger"
	"starforge-server/internal/shared/redis"
	"starforge-server/internal/snapshot"
	snapshotHandlers "starforge-server/internal/snapshot/handlers"
	"starforge-server/internal/universe"
	universeHandlers "starforge-server/internal/universe/handlers"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.GlobalConfig

	logger.Init()
	log := slog.With("component", "main")

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cache, err := redis.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer cache.Close()

	// Generation services
	generator := universe.NewGenerator(slog.With("component", "generator"))
	composer := galaxy.NewComposer(generator, cfg.Generator.MaxGalaxySize, slog.With("component", "composer"))

	// Snapshot persistence
	snapshotRepo := snapshot.NewRepository(db.DB, slog.With("component", "snapshot_repository"))
	snapshotCache := snapshot.NewCache(cache, cfg.Redis.SnapshotTTL, slog.With("component", "snapshot_cache"))
	snapshotService := snapshot.NewService(snapshotRepo, snapshotCache, slog.With("component", "snapshot_service"))

	generateHandler := universeHandlers.NewGenerateHandler(generator, composer, cfg.Generator, slog.With("component", "generate_handler"))
	snapshotHandler := snapshotHandlers.NewSnapshotHandler(snapshotService, slog.With("component", "snapshot_handler"))

	routes := server.NewRoutes(db, cache, generateHandler, snapshotHandler, slog.With("component", "routes"))
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		Enabled:           cfg.RateLimit.Enabled,
		TrustProxy:        cfg.RateLimit.TrustProxy,
	})
	corsMiddleware := middleware.NewCORS()

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info("Server starting",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"default_preset", cfg.Generator.DefaultPreset,
		"max_bodies", cfg.Generator.MaxBodies,
		"max_galaxy_size", cfg.Generator.MaxGalaxySize,
	)

	return srv.ListenAndServe()
}
