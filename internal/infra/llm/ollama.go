// OllamaProvider calls the Ollama REST API using net/http.
// Endpoints used:
//   - POST /api/generate: non-streaming completion
//   - GET  /api/tags: health check (lists available models)
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/version"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"

	defaultOllamaTimeout = 60 * time.Second
)

// OllamaProvider implements Provider against a running Ollama instance.
type OllamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// OllamaOption customises an OllamaProvider.
type OllamaOption func(*OllamaProvider)

// WithOllamaTimeout sets the per-request HTTP timeout.
func WithOllamaTimeout(d time.Duration) OllamaOption {
	return func(p *OllamaProvider) {
		if d > 0 {
			p.httpClient.Timeout = d
		}
	}
}

// WithOllamaHTTPClient replaces the HTTP client (tests, custom transports).
func WithOllamaHTTPClient(c *http.Client) OllamaOption {
	return func(p *OllamaProvider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithOllamaLogger sets the logger used for failed calls.
func WithOllamaLogger(l zerolog.Logger) OllamaOption {
	return func(p *OllamaProvider) { p.logger = l }
}

// NewOllamaProvider creates an OllamaProvider with a 60s default timeout.
func NewOllamaProvider(baseURL, model string, opts ...OllamaOption) *OllamaProvider {
	p := &OllamaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: defaultOllamaTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ─── internal Ollama JSON types ──────────────────────────────────────────────

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// ─── Provider implementation ─────────────────────────────────────────────────

// Generate performs a non-streaming completion via POST /api/generate and
// returns the body's `response` field as-is.
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return nil, p.fail(model, fmt.Errorf("ollama generate: encode request: %w", err))
	}

	respBody, postErr := p.doPost(ctx, "/api/generate", body)
	if postErr != nil {
		return nil, p.fail(model, postErr)
	}
	defer respBody.Close() //nolint:errcheck

	var decoded ollamaGenerateResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&decoded); decodeErr != nil {
		return nil, p.fail(model, fmt.Errorf("ollama generate: decode response: %w", decodeErr))
	}

	answeredBy := decoded.Model
	if answeredBy == "" {
		answeredBy = model
	}
	return &GenerateResponse{Text: decoded.Response, Model: answeredBy}, nil
}

// ModelInfo returns static metadata for this provider/model.
func (p *OllamaProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: "ollama"}
}

// HealthCheck calls GET /api/tags: returns nil if Ollama is reachable.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("ollama healthcheck: build request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama healthcheck: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama healthcheck: %w: %s", ErrHTTPStatus, resp.Status)
	}
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// doPost sends a POST request to baseURL+path and returns the response body.
// Caller is responsible for closing the returned ReadCloser.
func (p *OllamaProvider) doPost(ctx context.Context, path string, body []byte) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama post %s: build request: %w", path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set(headerUserAgent, version.UserAgent())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama post %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close() //nolint:errcheck
		return nil, fmt.Errorf("ollama post %s: %w: %s", path, ErrHTTPStatus, resp.Status)
	}
	return resp.Body, nil
}

// fail logs err and hands it back so call sites stay one line.
func (p *OllamaProvider) fail(model string, err error) error {
	p.logger.Error().Err(err).Str("provider", "ollama").Str("model", model).Msg("generation failed")
	return err
}
