// Unit tests for Router with stub providers: no HTTP needed.
package llm

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// stubProvider is a minimal Provider stub for router testing.
type stubProvider struct{ id string }

func (s *stubProvider) Generate(_ context.Context, _ GenerateRequest) (*GenerateResponse, error) {
	return &GenerateResponse{Text: "stub"}, nil
}
func (s *stubProvider) ModelInfo() ModelMeta              { return ModelMeta{ID: s.id, Provider: "stub"} }
func (s *stubProvider) HealthCheck(_ context.Context) error { return nil }

func TestRouter_Route_ReturnsDefaultProvider(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]Provider{"ollama": &stubProvider{id: "llama-pro:latest"}}, "ollama")

	p, err := r.Route(context.Background())
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if p.ModelInfo().ID != "llama-pro:latest" {
		t.Errorf("unexpected provider returned: %v", p.ModelInfo())
	}
}

func TestRouter_Route_UnknownDefaultProvider_ReturnsError(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]Provider{"ollama": &stubProvider{}}, "openai")

	_, err := r.Route(context.Background())
	if !errors.Is(err, ErrProviderNotRegistered) {
		t.Errorf("expected ErrProviderNotRegistered, got %v", err)
	}
}

func TestRouter_Register_ThenRoute(t *testing.T) {
	t.Parallel()

	r := NewRouter(nil, "openai")
	r.Register("openai", &stubProvider{id: "gpt-4o-mini"})

	p, err := r.Route(context.Background())
	if err != nil {
		t.Fatalf("Route after Register failed: %v", err)
	}
	if p.ModelInfo().ID != "gpt-4o-mini" {
		t.Errorf("unexpected provider %v", p.ModelInfo())
	}
}

func TestRouter_NewRouter_CopiesInputMap(t *testing.T) {
	t.Parallel()

	in := map[string]Provider{"ollama": &stubProvider{}}
	r := NewRouter(in, "ollama")
	delete(in, "ollama")

	if _, err := r.Route(context.Background()); err != nil {
		t.Errorf("router must not observe caller map mutation: %v", err)
	}
}

func TestRouter_Keys_Sorted(t *testing.T) {
	t.Parallel()

	r := NewRouter(map[string]Provider{"openai": &stubProvider{}, "ollama": &stubProvider{}}, "ollama")
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"ollama", "openai"}) {
		t.Errorf("Keys() = %v", got)
	}
}
