package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"starforge-server/internal/shared/errors"
	"starforge-server/internal/shared/response"
	"starforge-server/internal/snapshot"
	"starforge-server/internal/universe"
)

type SnapshotHandler struct {
	service *snapshot.Service
	logger  *slog.Logger
}

func NewSnapshotHandler(service *snapshot.Service, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		service: service,
		logger:  logger,
	}
}

type saveRequest struct {
	Name     string             `json:"name"`
	Universe *universe.Universe `json:"universe"`
}

// Save handles POST /api/snapshots - Admin only
func (h *SnapshotHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "save_snapshot")

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.Validationf("invalid request body: %v", err))
		return
	}
	if req.Universe == nil {
		response.Error(w, r, logger, errors.Validation("universe is required"))
		return
	}

	snap, err := h.service.Save(r.Context(), req.Name, req.Universe)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, snap)
}

// List handles GET /api/snapshots
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_snapshots")

	snapshots, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, snapshots)
}

// Get handles GET /api/snapshots/{id}
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_snapshot")

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("snapshot id is required"))
		return
	}

	snap, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, snap)
}

// Delete handles DELETE /api/snapshots/{id} - Admin only
func (h *SnapshotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_snapshot")

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("snapshot id is required"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
