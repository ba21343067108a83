package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// TaxProcessor runs the tax branch: summarize the document text and merge the
// result into the tax payload under a tax_processing key, preserving any
// sub-keys written by earlier runs.
type TaxProcessor struct {
	summarizer port.Summarizer
	docRepo    port.DocumentRepository
}

// NewTaxProcessor wires the tax branch.
func NewTaxProcessor(summarizer port.Summarizer, docRepo port.DocumentRepository) *TaxProcessor {
	return &TaxProcessor{summarizer: summarizer, docRepo: docRepo}
}

func (p *TaxProcessor) Process(ctx context.Context, doc *domain.Document) (domain.ProcessingOutcome, error) {
	text := ""
	if doc.ExtractedText != nil {
		text = *doc.ExtractedText
	}
	if text == "" {
		return domain.OutcomeFailed, fmt.Errorf("document %s has no extracted text", doc.ID)
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	merged, err := mergeTaxPayload(doc.TaxPayload, summary, time.Now().UTC())
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("merging tax payload for document %s: %w", doc.ID, err)
	}
	doc.TaxPayload = merged

	if err := p.docRepo.UpdatePayload(ctx, doc); err != nil {
		log.Printf("processor.TaxProcessor: persisting payload for document %s failed: %v", doc.ID, err)
		return domain.OutcomeWithWarnings, nil
	}
	return domain.OutcomeCompleted, nil
}

// mergeTaxPayload writes the tax_processing sub-key without clobbering other
// keys already present in the payload.
func mergeTaxPayload(existing json.RawMessage, summary string, now time.Time) (json.RawMessage, error) {
	payload := map[string]json.RawMessage{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &payload); err != nil {
			return nil, fmt.Errorf("decoding existing payload: %w", err)
		}
	}

	entry, err := json.Marshal(map[string]string{
		"summary":      summary,
		"processed_at": now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	payload["tax_processing"] = entry

	return json.Marshal(payload)
}
