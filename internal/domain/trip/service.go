package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/infra/eventbus"
	"github.com/matiasleandrokruk/tripgen/internal/infra/llm"
	"github.com/matiasleandrokruk/tripgen/internal/infra/metrics"
)

// GenerationEvent is published on eventbus.TopicGenerationCompleted after
// every upstream call.
type GenerationEvent struct {
	Batch    BatchID
	Provider string
	Model    string
	Prompt   string // composed text actually sent upstream
	Response string
	Err      string // empty on success
	Duration time.Duration
	At       time.Time
	ClientID string
}

type callerKey struct{}

// WithCaller tags ctx with the authenticated client id so it lands on the
// generation event.
func WithCaller(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, callerKey{}, clientID)
}

func callerFrom(ctx context.Context) string {
	id, _ := ctx.Value(callerKey{}).(string)
	return id
}

// Service runs the three batches against one llm.Provider. It keeps no
// per-call state, so concurrent calls need no coordination.
type Service struct {
	catalog  *Catalog
	provider llm.Provider
	bus      eventbus.EventBus
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEventBus publishes a GenerationEvent per call.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Service) { s.bus = bus }
}

// WithMetrics records call counts and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService wires a catalog to a provider.
func NewService(catalog *Catalog, provider llm.Provider, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		provider: provider,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the batches this service serves.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// GeneratePlaceInfo asks for general information and the best time to visit.
func (s *Service) GeneratePlaceInfo(ctx context.Context, promptText string) (string, error) {
	return s.run(ctx, BatchPlaceInfo, BuildPlacePrompt(promptText))
}

// GenerateAdventure asks for adventure activities, local cuisine and a packing checklist.
func (s *Service) GenerateAdventure(ctx context.Context, in Input) (string, error) {
	return s.run(ctx, BatchAdventure, BuildPrompt(in))
}

// GenerateItinerary asks for a day-by-day itinerary and top places with coordinates.
func (s *Service) GenerateItinerary(ctx context.Context, in Input) (string, error) {
	return s.run(ctx, BatchItinerary, BuildPrompt(in))
}

// Generate dispatches on id. The place-info batch only reads in.UserPrompt.
func (s *Service) Generate(ctx context.Context, id BatchID, in Input) (string, error) {
	switch id {
	case BatchPlaceInfo:
		return s.GeneratePlaceInfo(ctx, in.UserPrompt)
	case BatchAdventure:
		return s.GenerateAdventure(ctx, in)
	case BatchItinerary:
		return s.GenerateItinerary(ctx, in)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
}

func (s *Service) run(ctx context.Context, id BatchID, prompt string) (string, error) {
	batch, err := s.catalog.Get(id)
	if err != nil {
		return "", err
	}

	text := ComposeRequest(batch, prompt)
	meta := s.provider.ModelInfo()
	log := s.logger.With().Str("batch", string(id)).Str("provider", meta.Provider).Logger()
	log.Debug().Str("prompt", text).Msg("sending generation request")

	start := s.now()
	resp, err := s.provider.Generate(ctx, llm.GenerateRequest{Prompt: text})
	elapsed := s.now().Sub(start)

	s.metrics.ObserveGeneration(string(id), meta.Provider, elapsed, err)

	evt := GenerationEvent{
		Batch:    id,
		Provider: meta.Provider,
		Model:    meta.ID,
		Prompt:   text,
		Duration: elapsed,
		At:       start,
		ClientID: callerFrom(ctx),
	}

	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("generation failed")
		evt.Err = err.Error()
		s.publish(evt)
		return "", fmt.Errorf("trip %s: %w", id, err)
	}

	if resp.Model != "" {
		evt.Model = resp.Model
	}
	evt.Response = resp.Text
	s.publish(evt)

	log.Info().Dur("elapsed", elapsed).Int("response_bytes", len(resp.Text)).Msg("generation completed")
	return resp.Text, nil
}

func (s *Service) publish(evt GenerationEvent) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.TopicGenerationCompleted, evt)
}
