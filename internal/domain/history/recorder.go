package history

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/eventbus"
)

// Recorder persists every trip.GenerationEvent seen on the bus.
type Recorder struct {
	store  *Store
	logger zerolog.Logger
}

// NewRecorder returns a recorder writing to store.
func NewRecorder(store *Store, logger zerolog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Start subscribes to generation events and writes them until the bus closes
// the channel. Cancelling ctx does not stop the loop: events published during
// shutdown are still written, so callers stop it with bus.Close and wait on
// the returned channel, which closes once every buffered event is stored.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) <-chan struct{} {
	events := bus.Subscribe(eventbus.TopicGenerationCompleted)
	done := make(chan struct{})
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		for evt := range events {
			r.handle(ctx, evt)
		}
	}()

	return done
}

func (r *Recorder) handle(ctx context.Context, evt eventbus.Event) {
	ge, ok := evt.Payload.(trip.GenerationEvent)
	if !ok {
		r.logger.Warn().Str("topic", string(evt.Topic)).Msgf("unexpected payload %T", evt.Payload)
		return
	}

	g, err := r.store.Insert(ctx, FromEvent(ge))
	if err != nil {
		r.logger.Error().Err(err).Str("batch", string(ge.Batch)).Msg("record generation")
		return
	}
	r.logger.Debug().Str("id", g.ID).Str("batch", g.Batch).Msg("generation recorded")
}

// FromEvent maps a bus event onto a storable row.
func FromEvent(ge trip.GenerationEvent) Generation {
	return Generation{
		Batch:      string(ge.Batch),
		Provider:   ge.Provider,
		Model:      ge.Model,
		Prompt:     ge.Prompt,
		Response:   ge.Response,
		Error:      ge.Err,
		DurationMS: ge.Duration.Milliseconds(),
		ClientID:   ge.ClientID,
		CreatedAt:  ge.At,
	}
}
