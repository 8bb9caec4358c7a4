package llm

import (
	"context"
	"fmt"

	"datavista/internal/config"
)

// CompletionRequest is the provider-neutral completion input.
type CompletionRequest struct {
	System    string // optional system instruction
	Prompt    string // user prompt
	MaxTokens int    // completion token cap, 0 for the provider default
}

// CompletionResponse is the provider-neutral completion output.
type CompletionResponse struct {
	Text       string
	Model      string
	ResponseID string
}

// LLM is the common interface every language model client implements.
type LLM interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// NewClient is a factory that creates an LLM client for the configured
// provider.
func NewClient(cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai provider selected but no API key is configured")
		}
		return NewOpenAI(cfg.OpenAI.Model, cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini provider selected but no API key is configured")
		}
		return NewGemini(context.Background(), cfg.Gemini.Model, cfg.Gemini.APIKey)
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
