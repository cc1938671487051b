package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/tripgen/internal/domain/history"
	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
)

// GenerationReader is the read side of history.Store.
type GenerationReader interface {
	Get(ctx context.Context, id string) (*history.Generation, error)
	List(ctx context.Context, f history.ListFilter) ([]*history.Generation, int, error)
}

// GenerationHandler serves the generation log.
type GenerationHandler struct {
	store GenerationReader
}

// NewGenerationHandler creates a GenerationHandler backed by store.
func NewGenerationHandler(store GenerationReader) *GenerationHandler {
	return &GenerationHandler{store: store}
}

// ListGenerationsResponse is the body of GET /api/v1/generations.
type ListGenerationsResponse struct {
	Data []*history.Generation `json:"data"`
	Meta Meta                  `json:"meta"`
}

// ListGenerations handles GET /api/v1/generations?limit&offset&batch.
// batch accepts the same ids and aliases as the CLI; unknown values are a 400.
func (h *GenerationHandler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	page := parsePaginationParams(r)

	var batch string
	if raw := r.URL.Query().Get("batch"); raw != "" {
		id, err := trip.ParseBatchID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown batch")
			return
		}
		batch = string(id)
	}

	rows, total, err := h.store.List(r.Context(), history.ListFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
		Batch:  batch,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list generations")
		return
	}

	writeJSON(w, http.StatusOK, ListGenerationsResponse{
		Data: rows,
		Meta: Meta{Total: total, Limit: page.Limit, Offset: page.Offset},
	})
}

// GetGeneration handles GET /api/v1/generations/{id}.
func (h *GenerationHandler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := h.store.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "generation not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get generation")
		return
	}
	writeJSON(w, http.StatusOK, g)
}
