package parse

import (
	"context"
	"fmt"
	"strings"

	"firmdesk/internal/config"
)

const summarizePrompt = `Summarize the tax document below in a single sentence for an accountant. Return only the sentence, nothing else.

Document text:
---
%s
---`

// Summarizer implements port.Summarizer against the Anthropic Messages API.
type Summarizer struct {
	client *anthropicClient
}

// NewSummarizer creates the summarization provider.
func NewSummarizer(cfg *config.AIProviderConfig) *Summarizer {
	return &Summarizer{client: newAnthropicClient(cfg, "")}
}

// NewSummarizerWithEndpoint creates a summarizer pointing at a custom API endpoint (for testing).
func NewSummarizerWithEndpoint(cfg *config.AIProviderConfig, endpoint string) *Summarizer {
	return &Summarizer{client: newAnthropicClient(cfg, endpoint)}
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	reply, err := s.client.message(ctx, fmt.Sprintf(summarizePrompt, text), 1024)
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", fmt.Errorf("summarization provider returned empty output")
	}
	return summary, nil
}
