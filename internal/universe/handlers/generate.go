package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"starforge-server/internal/galaxy"
	"starforge-server/internal/procgen/grammar"
	"starforge-server/internal/shared/config"
	"starforge-server/internal/shared/errors"
	"starforge-server/internal/shared/response"
	"starforge-server/internal/universe"
)

type GenerateHandler struct {
	generator *universe.Generator
	composer  *galaxy.Composer
	defaults  config.GeneratorConfig
	logger    *slog.Logger
}

func NewGenerateHandler(generator *universe.Generator, composer *galaxy.Composer, defaults config.GeneratorConfig, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		composer:  composer,
		defaults:  defaults,
		logger:    logger,
	}
}

// generateResult is the response shape shared by the system and galaxy
// endpoints: the generated universe together with its validation report
// and aggregate statistics.
type generateResult struct {
	Universe *universe.Universe `json:"universe"`
	Report   universe.Report    `json:"report"`
	Stats    universe.Stats     `json:"stats"`
}

type galaxyRequest struct {
	SystemCount int              `json:"system_count"`
	Config      *universe.Config `json:"config"`
}

// GenerateSystem handles POST /api/universes/generate
func (h *GenerateHandler) GenerateSystem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "generate_system")

	cfg, err := h.decodeConfig(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	u, err := h.generator.GenerateSystem(cfg)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("System generated", "seed", u.Seed, "bodies", len(u.Bodies))
	response.Success(w, http.StatusOK, generateResult{
		Universe: u,
		Report:   universe.Validate(u),
		Stats:    universe.Analyze(u),
	})
}

// GenerateGalaxy handles POST /api/galaxies/generate
func (h *GenerateHandler) GenerateGalaxy(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "generate_galaxy")

	var req galaxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.Validationf("invalid request body: %v", err))
		return
	}

	cfg := universe.Config{}
	if req.Config != nil {
		cfg = *req.Config
	}
	h.applyDefaults(&cfg)

	systemCount := req.SystemCount
	if systemCount == 0 {
		systemCount = h.defaults.DefaultGalaxy
	}

	g, err := h.composer.GenerateGalaxy(systemCount, cfg)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Galaxy generated",
		"seed", g.Seed,
		"systems", systemCount,
		"bodies", len(g.Bodies),
		"groups", len(g.Groups),
	)
	response.Success(w, http.StatusOK, generateResult{
		Universe: g,
		Report:   universe.Validate(g),
		Stats:    universe.Analyze(g),
	})
}

// ListPresets handles GET /api/presets
func (h *GenerateHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	type presetInfo struct {
		ID      string `json:"id"`
		Default bool   `json:"default"`
	}

	presets := []presetInfo{}
	for _, id := range grammar.Presets() {
		presets = append(presets, presetInfo{
			ID:      string(id),
			Default: string(id) == h.defaults.DefaultPreset,
		})
	}

	response.Success(w, http.StatusOK, presets)
}

// decodeConfig reads a generation config from the request body. An empty
// body selects the server's default preset.
func (h *GenerateHandler) decodeConfig(r *http.Request) (universe.Config, error) {
	cfg := universe.Config{}

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			return cfg, errors.Validationf("invalid request body: %v", err)
		}
	}

	h.applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults backfills a sparse request with the server's default
// preset and clamps the per-request body budget to the server-wide cap.
func (h *GenerateHandler) applyDefaults(cfg *universe.Config) {
	if cfg.Preset == "" && cfg.StarWeights == ([3]float64{}) {
		cfg.Preset = grammar.PresetID(h.defaults.DefaultPreset)
	}
	if h.defaults.MaxBodies > 0 {
		if cfg.MaxBodies <= 0 || cfg.MaxBodies > h.defaults.MaxBodies {
			cfg.MaxBodies = h.defaults.MaxBodies
		}
	}
}
