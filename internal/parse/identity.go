package parse

import (
	"context"
	"encoding/json"
	"fmt"

	"firmdesk/internal/config"
)

const identityPrompt = `Extract identity fields from the document text below. Return ONLY a JSON object, no markdown fences:

{
  "document_kind": "drivers_license" | "passport" | "social_security_card" | "other",
  "full_name": string,
  "date_of_birth": "YYYY-MM-DD",
  "id_number": string,
  "issuing_authority": string,
  "expiration_date": "YYYY-MM-DD",
  "address": string
}

Use empty strings for fields the text does not contain.

Document text:
---
%s
---`

// IdentityParser implements port.IdentityParser against the Anthropic
// Messages API using the document's extracted text.
type IdentityParser struct {
	client *anthropicClient
}

// NewIdentityParser creates the identity extraction provider.
func NewIdentityParser(cfg *config.AIProviderConfig) *IdentityParser {
	return &IdentityParser{client: newAnthropicClient(cfg, "")}
}

// NewIdentityParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewIdentityParserWithEndpoint(cfg *config.AIProviderConfig, endpoint string) *IdentityParser {
	return &IdentityParser{client: newAnthropicClient(cfg, endpoint)}
}

func (p *IdentityParser) Parse(ctx context.Context, text string) (json.RawMessage, error) {
	reply, err := p.client.message(ctx, fmt.Sprintf(identityPrompt, text), 4096)
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(stripFences(reply))
	if !json.Valid(raw) {
		return nil, fmt.Errorf("identity provider returned invalid JSON")
	}
	return raw, nil
}
