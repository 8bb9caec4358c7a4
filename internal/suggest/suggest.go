// Package suggest asks the configured language model for visualization
// suggestions based on a small sample of the uploaded dataset. Failures are
// surfaced as a display string instead of an error so a broken or absent
// credential never interrupts the upload/preview workflow.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"datavista/internal/config"
	"datavista/internal/dataset"
	"datavista/internal/llm"
	"datavista/pkg/logger"
)

const promptTemplate = `I have the following data from an uploaded file:
%s

The dataset consists of columns with different types of data, such as numeric, categorical, and date values.
Please suggest creative, insightful, and effective visualizations based on this data. Here are the types of insights I am looking for:

1. What patterns or trends can be identified?
2. What comparisons can be drawn between different categories or values?
3. How can time-based trends be visualized, if applicable?
4. What relationships between variables can be highlighted through a chart?

Provide the names of suitable visualizations and why they are a good fit for the data.
If possible, suggest both common visualizations (e.g., bar charts, line graphs) and more creative alternatives (e.g., heatmaps, radar charts, etc.).`

// Suggester calls the language model with a dataset sample. A nil client
// (no credential configured) disables suggestions without disabling the
// rest of the session.
type Suggester struct {
	client  llm.LLM
	cfg     config.SuggestionConfig
	log     *logger.Logger
	timeout time.Duration
	backoff time.Duration
}

// New creates a Suggester. client may be nil when no provider credential is
// available.
func New(client llm.LLM, cfg config.SuggestionConfig, log *logger.Logger) *Suggester {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	backoff, err := time.ParseDuration(cfg.Retry.Backoff)
	if err != nil || backoff < 0 {
		backoff = 0
	}
	return &Suggester{
		client:  client,
		cfg:     cfg,
		log:     log,
		timeout: timeout,
		backoff: backoff,
	}
}

// Enabled reports whether a language model client is configured.
func (s *Suggester) Enabled() bool {
	return s.client != nil
}

// Suggest returns visualization suggestions for the dataset, or a display
// string describing why none could be produced. The call is bounded by the
// configured per-attempt timeout and retried per the retry policy.
func (s *Suggester) Suggest(ctx context.Context, ds *dataset.Dataset) string {
	if s.client == nil {
		return "AI suggestions are disabled: no language model API key is configured."
	}

	req := &llm.CompletionRequest{
		Prompt:    fmt.Sprintf(promptTemplate, sampleTable(ds, s.cfg.SampleRows)),
		MaxTokens: s.cfg.MaxTokens,
	}

	attempts := s.cfg.Retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := s.client.Complete(attemptCtx, req)
		cancel()
		if err == nil {
			return strings.TrimSpace(resp.Text)
		}
		lastErr = err
		s.log.WithError(err).WithPayload(map[string]interface{}{
			"attempt": attempt,
			"dataset": ds.Name,
		}).Warn("Suggestion attempt failed")
		if attempt < attempts && s.backoff > 0 {
			select {
			case <-time.After(s.backoff):
			case <-ctx.Done():
				return fmt.Sprintf("Error generating suggestions: %v", ctx.Err())
			}
		}
	}
	return fmt.Sprintf("Error generating suggestions: %v", lastErr)
}

// sampleTable renders the header and up to n leading rows as a
// tab-separated block for the prompt.
func sampleTable(ds *dataset.Dataset, n int) string {
	if n <= 0 {
		n = 5
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(ds.Columns, "\t"))
	for _, row := range ds.Head(n) {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}
