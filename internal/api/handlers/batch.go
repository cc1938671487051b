package handlers

import (
	"net/http"

	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
)

// BatchHandler exposes the batch catalog.
type BatchHandler struct {
	catalog *trip.Catalog
}

// NewBatchHandler creates a BatchHandler for catalog.
func NewBatchHandler(catalog *trip.Catalog) *BatchHandler {
	return &BatchHandler{catalog: catalog}
}

// ListBatchesResponse is the body of GET /api/v1/batches.
type ListBatchesResponse struct {
	Data []trip.Batch `json:"data"`
}

// ListBatches handles GET /api/v1/batches.
func (h *BatchHandler) ListBatches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ListBatchesResponse{Data: h.catalog.All()})
}
