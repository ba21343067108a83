package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"firmdesk/internal/config"
	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Classifier implements port.DocumentClassifier using the Anthropic Messages API.
type Classifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClassifier creates a Claude-based document classifier from a provider config.
func NewClassifier(cfg *config.AIProviderConfig) *Classifier {
	return newClassifier(cfg, apiURL)
}

// NewClassifierWithEndpoint creates a classifier pointing at a custom API endpoint (for testing).
func NewClassifierWithEndpoint(cfg *config.AIProviderConfig, endpoint string) *Classifier {
	return newClassifier(cfg, endpoint)
}

func newClassifier(cfg *config.AIProviderConfig, endpoint string) *Classifier {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Classifier{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Classifier) Classify(ctx context.Context, input port.ClassifyInput) (*domain.NoticeAnalysis, error) {
	prompt := BuildPrompt(input.Text, input.FileName)

	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": 4096,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, NewRateLimitError("claude", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// llmAnalysis is the JSON shape the prompt asks the model to return.
type llmAnalysis struct {
	Classification  string   `json:"classification"`
	Category        string   `json:"category"`
	SecondaryType   *string  `json:"secondary_type"`
	NoticeNumber    *string  `json:"notice_number"`
	NoticeType      *string  `json:"notice_type"`
	TaxYear         *int     `json:"tax_year"`
	AmountOwed      *float64 `json:"amount_owed"`
	Deadline        *string  `json:"deadline"`
	Priority        *string  `json:"priority"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

func parseResponse(body []byte) (*domain.NoticeAnalysis, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("output truncated (stop_reason: max_tokens)")
	}

	text := stripFences(resp.Content[0].Text)

	var parsed llmAnalysis
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	return toAnalysis(&parsed)
}

func toAnalysis(p *llmAnalysis) (*domain.NoticeAnalysis, error) {
	classification := domain.Classification(p.Classification)
	if !domain.ValidClassifications[classification] {
		classification = domain.ClassUnknown
	}
	category := domain.DocumentCategory(p.Category)
	if !domain.ValidCategories[category] {
		category = domain.CategoryOther
	}

	analysis := &domain.NoticeAnalysis{
		Classification:  classification,
		Category:        category,
		TaxYear:         p.TaxYear,
		AmountOwed:      p.AmountOwed,
		Summary:         p.Summary,
		Recommendations: p.Recommendations,
	}
	if p.SecondaryType != nil {
		analysis.SecondaryType = *p.SecondaryType
	}
	if p.NoticeNumber != nil {
		analysis.NoticeNumber = *p.NoticeNumber
	}
	if p.NoticeType != nil {
		analysis.NoticeType = *p.NoticeType
	}
	if p.Priority != nil && domain.ValidNoticePriorities[domain.NoticePriority(*p.Priority)] {
		analysis.Priority = domain.NoticePriority(*p.Priority)
	}
	if p.Deadline != nil && *p.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", *p.Deadline)
		if err == nil {
			analysis.Deadline = &deadline
		}
	}
	return analysis, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
