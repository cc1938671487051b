// Package llm defines the model-agnostic generation abstraction shared by the
// provider interface and its adapters.
package llm

import "errors"

// ErrHTTPStatus is wrapped by every provider when the upstream answers with a
// non-2xx status. The wrapped message carries the response status line.
var ErrHTTPStatus = errors.New("llm: upstream http error")

// GenerateRequest is the input for a single non-streaming completion.
type GenerateRequest struct {
	// Model overrides the provider default when non-empty.
	Model  string
	Prompt string
}

// GenerateResponse is the raw upstream text. It is never parsed or validated.
type GenerateResponse struct {
	Text  string
	Model string // model that actually answered, as reported upstream
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID       string // e.g. "llama-pro:latest", "gpt-4o-mini"
	Provider string // e.g. "ollama", "openai"
}
