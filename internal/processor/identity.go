package processor

import (
	"context"
	"fmt"
	"log"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// IdentityProcessor runs the identity branch: extract structured identity
// fields from the document's text and persist them.
type IdentityProcessor struct {
	parser  port.IdentityParser
	docRepo port.DocumentRepository
}

// NewIdentityProcessor wires the identity branch.
func NewIdentityProcessor(parser port.IdentityParser, docRepo port.DocumentRepository) *IdentityProcessor {
	return &IdentityProcessor{parser: parser, docRepo: docRepo}
}

func (p *IdentityProcessor) Process(ctx context.Context, doc *domain.Document) (domain.ProcessingOutcome, error) {
	text := ""
	if doc.ExtractedText != nil {
		text = *doc.ExtractedText
	}
	if text == "" {
		return domain.OutcomeFailed, fmt.Errorf("document %s has no extracted text", doc.ID)
	}

	raw, err := p.parser.Parse(ctx, text)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	doc.IdentityPayload = raw
	if err := p.docRepo.UpdatePayload(ctx, doc); err != nil {
		log.Printf("processor.IdentityProcessor: persisting payload for document %s failed: %v", doc.ID, err)
		return domain.OutcomeWithWarnings, nil
	}
	return domain.OutcomeCompleted, nil
}
