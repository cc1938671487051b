package main

import (
	"context"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/api"
	"github.com/matiasleandrokruk/tripgen/internal/domain/history"
	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/config"
	"github.com/matiasleandrokruk/tripgen/internal/infra/eventbus"
	"github.com/matiasleandrokruk/tripgen/internal/infra/logging"
	"github.com/matiasleandrokruk/tripgen/internal/infra/metrics"
	"github.com/matiasleandrokruk/tripgen/internal/infra/sqlite"
	"github.com/matiasleandrokruk/tripgen/internal/server"
	pkgauth "github.com/matiasleandrokruk/tripgen/pkg/auth"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func runServe(ctx context.Context, args []string, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	host := fs.String("host", cfg.HTTPHost, "Listen host")
	port := fs.Int("port", cfg.HTTPPort, "Listen port")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg.HTTPHost, cfg.HTTPPort = *host, *port

	logger := newLogger(cfg)
	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("serve failed")
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	m := metrics.New()

	bus := eventbus.New()
	bus.OnDrop = func(evt eventbus.Event) {
		m.EventDropped()
		logger.Warn().Str("topic", string(evt.Topic)).Msg("event dropped")
	}

	svc, err := newService(cfg, logger, trip.WithEventBus(bus), trip.WithMetrics(m))
	if err != nil {
		return err
	}

	issuer, err := newIssuer(cfg, logger)
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	store := history.NewStore(db)
	recorded := history.NewRecorder(store, logging.Component(logger, "history")).Start(ctx, bus)

	deps := api.Deps{
		Trips:            svc,
		Catalog:          svc.Catalog(),
		History:          store,
		Issuer:           issuer,
		ClientID:         cfg.APIClientID,
		ClientSecretHash: cfg.APIClientSecretHash,
		Metrics:          m,
		Logger:           logging.Component(logger, "http"),
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host, srvCfg.Port = cfg.HTTPHost, cfg.HTTPPort
	if floor := cfg.LLMTimeout + srvCfg.ReadTimeout; srvCfg.WriteTimeout < floor {
		srvCfg.WriteTimeout = floor
	}

	// The recorder keeps draining after ctx is cancelled; closing the bus ends it
	// before the database goes away.
	srv := server.NewServer(api.NewRouter(deps), srvCfg, logging.Component(logger, "server"),
		closerFunc(func() error {
			bus.Close()
			<-recorded
			return nil
		}),
		db,
	)

	logger.Info().
		Str("provider", cfg.LLMProvider).
		Str("db", cfg.DBPath).
		Bool("auth", cfg.AuthEnabled()).
		Msgf("tripgen listening on %s", srv.Addr())
	return srv.Run(ctx)
}

// newIssuer returns nil when auth is disabled.
func newIssuer(cfg config.Config, logger zerolog.Logger) (*pkgauth.Issuer, error) {
	if !cfg.AuthEnabled() {
		logger.Warn().Msg("JWT_SECRET not set; /api/v1 is unauthenticated")
		return nil, nil
	}
	if cfg.APIClientID == "" || cfg.APIClientSecretHash == "" {
		logger.Warn().Msg("JWT_SECRET set without API_CLIENT_ID/API_CLIENT_SECRET_HASH; /auth/token will reject every request")
	}
	return pkgauth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
}
