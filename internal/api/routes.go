// Package api wires the chi router: public health, metrics and token routes,
// and the /api/v1 generation and history routes.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/tripgen/internal/api/middleware"
	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/metrics"
	pkgauth "github.com/matiasleandrokruk/tripgen/pkg/auth"
)

// Deps are the services the router serves. Issuer nil disables /auth/token
// and leaves /api/v1 open; History nil disables the /generations routes.
type Deps struct {
	Trips            handlers.TripGenerator
	Catalog          *trip.Catalog
	History          handlers.GenerationReader
	Issuer           *pkgauth.Issuer
	ClientID         string
	ClientSecretHash string
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates the chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.AccessLog(deps.Logger, deps.Metrics))
	r.Use(middleware.Recoverer)

	// ===== PUBLIC ROUTES (no auth required) =====

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	if deps.Issuer != nil {
		authHandler := handlers.NewAuthHandler(deps.Issuer, deps.ClientID, deps.ClientSecretHash)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", authHandler.Token) // POST /auth/token
		})
	}

	// ===== API ROUTES (JWT required when an issuer is configured) =====

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Issuer != nil {
			r.Use(apmiddleware.Auth(deps.Issuer))
		}

		tripHandler := handlers.NewTripHandler(deps.Trips)
		r.Route("/trips", func(r chi.Router) {
			r.Post("/place", tripHandler.Place)         // POST /api/v1/trips/place
			r.Post("/adventure", tripHandler.Adventure) // POST /api/v1/trips/adventure
			r.Post("/itinerary", tripHandler.Itinerary) // POST /api/v1/trips/itinerary
		})

		r.Get("/batches", handlers.NewBatchHandler(deps.Catalog).ListBatches) // GET /api/v1/batches

		if deps.History != nil {
			generationHandler := handlers.NewGenerationHandler(deps.History)
			r.Route("/generations", func(r chi.Router) {
				r.Get("/", generationHandler.ListGenerations)  // GET /api/v1/generations
				r.Get("/{id}", generationHandler.GetGeneration) // GET /api/v1/generations/{id}
			})
		}
	})

	return r
}
