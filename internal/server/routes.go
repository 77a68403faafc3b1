package server

import (
	"log/slog"
	"net/http"

	"starforge-server/internal/middleware"
	serverHandlers "starforge-server/internal/server/handlers"
	"starforge-server/internal/shared/database"
	"starforge-server/internal/shared/redis"
	snapshotHandlers "starforge-server/internal/snapshot/handlers"
	universeHandlers "starforge-server/internal/universe/handlers"
)

type Routes struct {
	db              *database.DB
	cache           *redis.Client
	generateHandler *universeHandlers.GenerateHandler
	snapshotHandler *snapshotHandlers.SnapshotHandler
	logger          *slog.Logger
}

func NewRoutes(db *database.DB, cache *redis.Client, generateHandler *universeHandlers.GenerateHandler, snapshotHandler *snapshotHandlers.SnapshotHandler, logger *slog.Logger) *Routes {
	return &Routes{
		db:              db,
		cache:           cache,
		generateHandler: generateHandler,
		snapshotHandler: snapshotHandler,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.cache)

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/presets", r.generateHandler.ListPresets)
	mux.HandleFunc("POST /api/universes/generate", r.generateHandler.GenerateSystem)
	mux.HandleFunc("POST /api/galaxies/generate", r.generateHandler.GenerateGalaxy)
	mux.HandleFunc("GET /api/snapshots", r.snapshotHandler.List)
	mux.HandleFunc("GET /api/snapshots/{id}", r.snapshotHandler.Get)

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/snapshots", middleware.RequireAdmin(http.HandlerFunc(r.snapshotHandler.Save)))
	mux.Handle("DELETE /api/snapshots/{id}", middleware.RequireAdmin(http.HandlerFunc(r.snapshotHandler.Delete)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{
			"/api/server/health", "/api/presets",
			"/api/universes/generate", "/api/galaxies/generate",
			"/api/snapshots",
		},
		"admin_endpoints", []string{"/api/snapshots", "/api/snapshots/{id}"},
	)

	return mux
}
