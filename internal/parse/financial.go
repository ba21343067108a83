package parse

import (
	"context"
	"encoding/json"
	"fmt"

	"firmdesk/internal/config"
	"firmdesk/internal/port"
)

const financialPrompt = `Extract the financial contents of this document. Return ONLY a JSON object, no markdown fences:

{
  "document_type": "bank_statement" | "invoice" | "receipt" | "other",
  "merchant": {"name": string, "address": string},
  "payment": {"method": string, "status": string},
  "invoice_number": string,
  "date": "YYYY-MM-DD",
  "due_date": "YYYY-MM-DD",
  "total": number,
  "currency": string,
  "line_items": [{"description": string, "quantity": number, "amount": number}],
  "transactions": [{"date": "YYYY-MM-DD", "description": string, "amount": number, "reference_number": string}]
}

Use empty strings, 0 or empty arrays for fields the document does not contain. For bank statements fill "transactions"; for invoices and receipts fill the merchant, totals and line items.`

// documentTypeToSecondary maps the provider's document_type label to the
// secondary classification used for ledger mapping.
var documentTypeToSecondary = map[string]string{
	"bank_statement": "bank statement",
	"invoice":        "invoice",
	"receipt":        "receipt",
}

// FinancialParser implements port.FinancialParser against the Anthropic
// Messages API, sending the stored file by presigned URL.
type FinancialParser struct {
	client *anthropicClient
}

// NewFinancialParser creates the financial parsing provider.
func NewFinancialParser(cfg *config.AIProviderConfig) *FinancialParser {
	return &FinancialParser{client: newAnthropicClient(cfg, "")}
}

// NewFinancialParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewFinancialParserWithEndpoint(cfg *config.AIProviderConfig, endpoint string) *FinancialParser {
	return &FinancialParser{client: newAnthropicClient(cfg, endpoint)}
}

func (p *FinancialParser) Parse(ctx context.Context, fileURL, contentType string) (*port.FinancialParseOutput, error) {
	content := []map[string]interface{}{
		{
			"type": "document",
			"source": map[string]interface{}{
				"type": "url",
				"url":  fileURL,
			},
		},
		{
			"type": "text",
			"text": financialPrompt,
		},
	}

	text, err := p.client.message(ctx, content, 16384)
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(stripFences(text))
	var envelope struct {
		DocumentType string `json:"document_type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parsing financial provider output: %w", err)
	}

	return &port.FinancialParseOutput{
		Raw:           raw,
		SecondaryType: documentTypeToSecondary[envelope.DocumentType],
	}, nil
}
