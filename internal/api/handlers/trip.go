package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/matiasleandrokruk/tripgen/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
)

// TripGenerator is the subset of trip.Service the handlers call.
type TripGenerator interface {
	GeneratePlaceInfo(ctx context.Context, promptText string) (string, error)
	GenerateAdventure(ctx context.Context, in trip.Input) (string, error)
	GenerateItinerary(ctx context.Context, in trip.Input) (string, error)
}

// TripHandler serves the three generation endpoints.
type TripHandler struct {
	svc TripGenerator
}

// NewTripHandler creates a TripHandler backed by svc.
func NewTripHandler(svc TripGenerator) *TripHandler {
	return &TripHandler{svc: svc}
}

// PlaceRequest is the body of POST /api/v1/trips/place.
type PlaceRequest struct {
	Prompt string `json:"prompt"`
}

// TripResponse carries the model's raw text. Response is not guaranteed to
// be valid JSON.
type TripResponse struct {
	Batch    trip.BatchID `json:"batch"`
	Response string       `json:"response"`
}

// Place handles POST /api/v1/trips/place.
//
// Response codes:
//   - 200 OK: model answered
//   - 400 Bad Request: invalid JSON or empty prompt
//   - 413 Request Entity Too Large: body over MaxBodyBytes
//   - 502 Bad Gateway: upstream model call failed
//   - 504 Gateway Timeout: upstream model call timed out
func (h *TripHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	text, err := h.svc.GeneratePlaceInfo(callerContext(r), req.Prompt)
	h.respond(w, trip.BatchPlaceInfo, text, err)
}

// Adventure handles POST /api/v1/trips/adventure. Same codes as Place.
//
// fromDate and toDate are integer epoch values; a fractional number is
// rejected with 400.
func (h *TripHandler) Adventure(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTripInput(w, r)
	if !ok {
		return
	}
	text, err := h.svc.GenerateAdventure(callerContext(r), in)
	h.respond(w, trip.BatchAdventure, text, err)
}

// Itinerary handles POST /api/v1/trips/itinerary. Same codes as Place.
func (h *TripHandler) Itinerary(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTripInput(w, r)
	if !ok {
		return
	}
	text, err := h.svc.GenerateItinerary(callerContext(r), in)
	h.respond(w, trip.BatchItinerary, text, err)
}

func (h *TripHandler) respond(w http.ResponseWriter, id trip.BatchID, text string, err error) {
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			writeError(w, http.StatusRequestTimeout, "request cancelled")
		case errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusGatewayTimeout, "upstream model timed out")
		default:
			writeError(w, http.StatusBadGateway, "upstream model request failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, TripResponse{Batch: id, Response: text})
}

func decodeTripInput(w http.ResponseWriter, r *http.Request) (trip.Input, bool) {
	var in trip.Input
	if !decodeJSON(w, r, &in) {
		return trip.Input{}, false
	}
	if strings.TrimSpace(in.UserPrompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return trip.Input{}, false
	}
	return in, true
}

// callerContext forwards the authenticated client id to the trip service.
func callerContext(r *http.Request) context.Context {
	ctx := r.Context()
	if id := ctxkeys.String(ctx, ctxkeys.ClientID); id != "" {
		ctx = trip.WithCaller(ctx, id)
	}
	return ctx
}
