package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAITimeout = 60 * time.Second

// OpenAIConfig holds what OpenAIProvider needs; BaseURL may point at any
// OpenAI-compatible server (vLLM, LM Studio, Ollama's /v1).
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zerolog.Logger
}

// OpenAIProvider implements Provider with a single non-streaming chat completion.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewOpenAIProvider validates cfg and builds the go-openai client.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai provider: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai provider: model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultOpenAITimeout
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimRight(base, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Generate sends req.Prompt as the only user message and returns the first
// choice's content verbatim.
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return nil, p.fail(model, classifyOpenAIError(err))
	}
	if len(resp.Choices) == 0 {
		return nil, p.fail(model, errors.New("openai generate: response has no choices"))
	}

	answeredBy := resp.Model
	if answeredBy == "" {
		answeredBy = model
	}
	return &GenerateResponse{Text: resp.Choices[0].Message.Content, Model: answeredBy}, nil
}

// ModelInfo returns static metadata for this provider/model.
func (p *OpenAIProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: "openai"}
}

// HealthCheck lists models; any answer means the endpoint and key work.
func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai healthcheck: %w", classifyOpenAIError(err))
	}
	return nil
}

// classifyOpenAIError folds go-openai's status-bearing errors into ErrHTTPStatus.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return fmt.Errorf("openai generate: %w: %d %s", ErrHTTPStatus, apiErr.HTTPStatusCode, http.StatusText(apiErr.HTTPStatusCode))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return fmt.Errorf("openai generate: %w: %d %s", ErrHTTPStatus, reqErr.HTTPStatusCode, http.StatusText(reqErr.HTTPStatusCode))
	}
	return fmt.Errorf("openai generate: %w", err)
}

func (p *OpenAIProvider) fail(model string, err error) error {
	p.logger.Error().Err(err).Str("provider", "openai").Str("model", model).Msg("generation failed")
	return err
}
