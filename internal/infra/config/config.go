// Package config provides application-wide configuration loaded from env vars.
// Every field has a default so `tripgen serve` runs against a local Ollama
// without any environment setup.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for tripgen.
type Config struct {
	// LLM
	LLMProvider   string        // LLM_PROVIDER: "ollama" (default) | "openai"
	LLMTimeout    time.Duration // LLM_TIMEOUT: default: 60s
	OllamaBaseURL string        // OLLAMA_BASE_URL: default: "http://localhost:11434"
	OllamaModel   string        // OLLAMA_MODEL: default: "llama-pro:latest"
	OpenAIAPIKey  string        // OPENAI_API_KEY
	OpenAIBaseURL string        // OPENAI_BASE_URL: empty means api.openai.com
	OpenAIModel   string        // OPENAI_MODEL: default: "gpt-4o-mini"

	// Batch catalog override (YAML). Empty uses the embedded catalog.
	BatchesFile string // TRIP_BATCHES_FILE

	// HTTP
	HTTPHost string // HTTP_HOST: default: "0.0.0.0"
	HTTPPort int    // HTTP_PORT: default: 8080

	// Storage
	DBPath string // DB_PATH: default: "./data/tripgen.db"

	// Logging
	LogLevel  string // LOG_LEVEL: default: "info"
	LogFormat string // LOG_FORMAT: "json" (default) | "console"

	// Auth. Empty JWTSecret disables bearer auth on /api/v1.
	JWTSecret           string        // JWT_SECRET
	JWTExpiry           time.Duration // JWT_EXPIRY: hours, default: 24
	APIClientID         string        // API_CLIENT_ID
	APIClientSecretHash string        // API_CLIENT_SECRET_HASH: bcrypt hash
}

const (
	envKeyLLMProvider         = "LLM_PROVIDER"
	envKeyLLMTimeout          = "LLM_TIMEOUT"
	envKeyOllamaBaseURL       = "OLLAMA_BASE_URL"
	envKeyOllamaModel         = "OLLAMA_MODEL"
	envKeyOpenAIAPIKey        = "OPENAI_API_KEY"
	envKeyOpenAIBaseURL       = "OPENAI_BASE_URL"
	envKeyOpenAIModel         = "OPENAI_MODEL"
	envKeyBatchesFile         = "TRIP_BATCHES_FILE"
	envKeyHTTPHost            = "HTTP_HOST"
	envKeyHTTPPort            = "HTTP_PORT"
	envKeyDBPath              = "DB_PATH"
	envKeyLogLevel            = "LOG_LEVEL"
	envKeyLogFormat           = "LOG_FORMAT"
	envKeyJWTSecret           = "JWT_SECRET"
	envKeyJWTExpiry           = "JWT_EXPIRY"
	envKeyAPIClientID         = "API_CLIENT_ID"
	envKeyAPIClientSecretHash = "API_CLIENT_SECRET_HASH"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	DefaultOllamaModel = "llama-pro:latest"
	DefaultLLMTimeout  = 60 * time.Second
	DefaultJWTExpiry   = 24 * time.Hour
)

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	return Config{
		LLMProvider:   envOr(envKeyLLMProvider, ProviderOllama),
		LLMTimeout:    envDuration(envKeyLLMTimeout, DefaultLLMTimeout),
		OllamaBaseURL: envOr(envKeyOllamaBaseURL, "http://localhost:11434"),
		OllamaModel:   envOr(envKeyOllamaModel, DefaultOllamaModel),
		OpenAIAPIKey:  os.Getenv(envKeyOpenAIAPIKey),
		OpenAIBaseURL: os.Getenv(envKeyOpenAIBaseURL),
		OpenAIModel:   envOr(envKeyOpenAIModel, "gpt-4o-mini"),

		BatchesFile: os.Getenv(envKeyBatchesFile),

		HTTPHost: envOr(envKeyHTTPHost, "0.0.0.0"),
		HTTPPort: envInt(envKeyHTTPPort, 8080),

		DBPath: envOr(envKeyDBPath, "./data/tripgen.db"),

		LogLevel:  envOr(envKeyLogLevel, "info"),
		LogFormat: envOr(envKeyLogFormat, "json"),

		JWTSecret:           os.Getenv(envKeyJWTSecret),
		JWTExpiry:           envHours(envKeyJWTExpiry, DefaultJWTExpiry),
		APIClientID:         os.Getenv(envKeyAPIClientID),
		APIClientSecretHash: os.Getenv(envKeyAPIClientSecretHash),
	}
}

// AuthEnabled reports whether /api/v1 requires a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt parses key as an int; unset or malformed values yield fallback.
func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

// envDuration accepts Go duration strings ("90s", "2m").
func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// envHours reads a whole number of hours, the same unit JWT_EXPIRY always used.
func envHours(key string, fallback time.Duration) time.Duration {
	h := envInt(key, 0)
	if h <= 0 {
		return fallback
	}
	return time.Duration(h) * time.Hour
}
