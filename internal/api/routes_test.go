package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/domain/history"
	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/eventbus"
	"github.com/matiasleandrokruk/tripgen/internal/infra/llm"
	"github.com/matiasleandrokruk/tripgen/internal/infra/metrics"
	"github.com/matiasleandrokruk/tripgen/internal/infra/sqlite"
	pkgauth "github.com/matiasleandrokruk/tripgen/pkg/auth"
)

type echoProvider struct{}

func (echoProvider) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: `{"len":` + jsonInt(len(req.Prompt)) + `}`, Model: "echo"}, nil
}
func (echoProvider) ModelInfo() llm.ModelMeta          { return llm.ModelMeta{ID: "echo", Provider: "stub"} }
func (echoProvider) HealthCheck(context.Context) error { return nil }

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

// newTestDeps wires a real trip service, an in-memory history store and a
// fresh metrics registry. auth toggles the JWT issuer.
func newTestDeps(t *testing.T, auth bool) (Deps, *history.Store) {
	t.Helper()

	catalog, err := trip.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	db, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("sqlite.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := history.NewStore(db)

	deps := Deps{
		Trips:   trip.NewService(catalog, echoProvider{}),
		Catalog: catalog,
		History: store,
		Metrics: metrics.New(),
		Logger:  zerolog.Nop(),
	}
	if auth {
		iss, err := pkgauth.NewIssuer("test-secret-key-32-chars-min!!!", time.Hour)
		if err != nil {
			t.Fatalf("NewIssuer: %v", err)
		}
		hash, err := pkgauth.HashPassword("s3cret")
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		deps.Issuer = iss
		deps.ClientID = "mobile-app"
		deps.ClientSecretHash = hash
	}
	return deps, store
}

// withRecorder routes generation events from the trip service into store.
func withRecorder(t *testing.T, deps Deps, store *history.Store) Deps {
	t.Helper()
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(bus.Close)
	t.Cleanup(cancel)

	history.NewRecorder(store, zerolog.Nop()).Start(ctx, bus)
	deps.Trips = trip.NewService(deps.Catalog, echoProvider{}, trip.WithEventBus(bus))
	return deps
}

func serve(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewRouter_HealthEndpoint(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, false)
	w := serve(NewRouter(deps), http.MethodGet, "/health", "", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("expected body to contain 'ok', got %q", w.Body.String())
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, false)
	router := NewRouter(deps)
	serve(router, http.MethodGet, "/health", "", "")

	w := serve(router, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `tripgen_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Errorf("expected health request counted, got:\n%s", w.Body.String())
	}
}

func TestNewRouter_AuthDisabled_OpenAPIAndNoTokenRoute(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, false)
	router := NewRouter(deps)

	if w := serve(router, http.MethodPost, "/auth/token", `{"clientId":"a","clientSecret":"b"}`, ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for /auth/token without auth, got %d", w.Code)
	}
	if w := serve(router, http.MethodGet, "/api/v1/batches", "", ""); w.Code != http.StatusOK {
		t.Errorf("expected open /api/v1/batches, got %d", w.Code)
	}
}

func TestNewRouter_AuthEnabled_TokenFlow(t *testing.T) {
	t.Parallel()

	deps, store := newTestDeps(t, true)
	router := NewRouter(withRecorder(t, deps, store))

	if w := serve(router, http.MethodPost, "/api/v1/trips/place", `{"prompt":"Paris"}`, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w := serve(router, http.MethodPost, "/auth/token", `{"clientId":"mobile-app","clientSecret":"s3cret"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /auth/token, got %d: %s", w.Code, w.Body.String())
	}
	var tok struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&tok); err != nil || tok.Token == "" {
		t.Fatalf("decode token: %v (%q)", err, w.Body.String())
	}

	w = serve(router, http.MethodPost, "/api/v1/trips/place", `{"prompt":"Paris"}`, tok.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}

	// The recorder persists asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for {
		rows, _, err := store.List(context.Background(), history.ListFilter{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(rows) == 1 {
			if rows[0].ClientID != "mobile-app" || rows[0].Batch != "place_info" {
				t.Errorf("unexpected row %+v", rows[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("generation was not recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	w = serve(router, http.MethodGet, "/api/v1/generations?batch=batch1", "", tok.Token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total":1`) {
		t.Errorf("unexpected generations list %d %q", w.Code, w.Body.String())
	}
	if w := serve(router, http.MethodGet, "/api/v1/generations/missing", "", tok.Token); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown generation, got %d", w.Code)
	}
}

func TestNewRouter_TripRoutes(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, false)
	router := NewRouter(deps)

	for _, path := range []string{"/api/v1/trips/place", "/api/v1/trips/adventure", "/api/v1/trips/itinerary"} {
		if w := serve(router, http.MethodPost, path, `{"prompt":"Kyoto"}`, ""); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if w := serve(router, http.MethodPost, path, `{"prompt":""}`, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 for empty prompt, got %d", path, w.Code)
		}
	}
}
