package config

import (
	"fmt"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	// PlaceholderAPIKey is accepted at startup but cannot reach the provider.
	PlaceholderAPIKey = "test-key-placeholder"
)

// AIConfig is handed to the gateway constructor once at startup.
type AIConfig struct {
	Provider     string
	GeminiAPIKey string
	OpenAIAPIKey string
	Model        string
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64 // provider calls per second, 0 disables pacing
	RateBurst    int
}

// ConfigurationError reports missing or invalid AI credentials. It disables
// chat features only.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "ai configuration: " + e.Reason
}

// APIKey returns the key of the selected provider.
func (c AIConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// Check validates the provider selection and its credentials.
func (c AIConfig) Check() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return &ConfigurationError{Reason: "GEMINI_API_KEY not found in environment variables"}
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return &ConfigurationError{Reason: "OPENAI_API_KEY not found in environment variables"}
		}
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown AI_PROVIDER %q", c.Provider)}
	}
	return nil
}

// IsPlaceholderKey reports whether the configured key is the test placeholder.
func (c AIConfig) IsPlaceholderKey() bool {
	return c.APIKey() == PlaceholderAPIKey
}
