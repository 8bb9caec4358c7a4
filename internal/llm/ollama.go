package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	olla "github.com/ollama/ollama/api"
)

var _ LLM = (*Ollama)(nil)

// Ollama is an LLM client for a local or remote Ollama server.
type Ollama struct {
	client *olla.Client
	model  string
}

// NewOllama creates a new Ollama client. An empty baseURL defaults to
// "http://localhost:11434".
func NewOllama(model, baseURL string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &Ollama{
		client: olla.NewClient(parsedURL, hc),
		model:  model,
	}, nil
}

// Complete generates a completion using the Ollama API.
func (o *Ollama) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	var sb strings.Builder
	stream := false

	err := o.client.Generate(ctx, &olla.GenerateRequest{
		Model:  o.model,
		System: req.System,
		Prompt: req.Prompt,
		Stream: &stream,
	}, func(resp olla.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return &CompletionResponse{
		Text:  sb.String(),
		Model: o.model,
	}, nil
}
