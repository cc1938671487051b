package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/config"
	"github.com/matiasleandrokruk/tripgen/internal/infra/llm"
	"github.com/matiasleandrokruk/tripgen/internal/infra/logging"
)

// newLogger builds the process logger on stderr from cfg.
func newLogger(cfg config.Config) zerolog.Logger {
	return logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

// newProvider registers every provider cfg can build and returns the one
// LLM_PROVIDER selects.
func newProvider(cfg config.Config, logger zerolog.Logger) (llm.Provider, error) {
	llmLogger := logging.Component(logger, "llm")

	router := llm.NewRouter(map[string]llm.Provider{
		config.ProviderOllama: llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel,
			llm.WithOllamaTimeout(cfg.LLMTimeout),
			llm.WithOllamaLogger(llmLogger),
		),
	}, cfg.LLMProvider)

	if cfg.OpenAIAPIKey != "" {
		p, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
			Logger:  &llmLogger,
		})
		if err != nil {
			return nil, err
		}
		router.Register(config.ProviderOpenAI, p)
	}

	p, err := router.Get(cfg.LLMProvider)
	if err != nil {
		return nil, fmt.Errorf("select provider: %w", err)
	}
	return p, nil
}

// newService loads the catalog and provider and wires them into a trip.Service.
func newService(cfg config.Config, logger zerolog.Logger, opts ...trip.Option) (*trip.Service, error) {
	catalog, err := trip.LoadCatalog(cfg.BatchesFile)
	if err != nil {
		return nil, err
	}
	provider, err := newProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	opts = append([]trip.Option{trip.WithLogger(logging.Component(logger, "trip"))}, opts...)
	return trip.NewService(catalog, provider, opts...), nil
}
