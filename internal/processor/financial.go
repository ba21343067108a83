package processor

import (
	"context"
	"fmt"
	"log"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// presignExpirySecs is the lifetime of the file URL handed to the financial
// parsing provider.
const presignExpirySecs int64 = 3600

// transactionSubTypes are the secondary classifications that feed the
// unified transaction ledger.
var transactionSubTypes = map[string]bool{
	"bank statement": true,
	"invoice":        true,
	"receipt":        true,
}

// FinancialProcessor runs the financial branch: parse the stored file via a
// presigned URL, persist the raw payload, then derive ledger transactions for
// bank statements, invoices and receipts.
type FinancialProcessor struct {
	parser  port.FinancialParser
	storage port.ObjectStorage
	docRepo port.DocumentRepository
	txnRepo port.TransactionRepository
}

// NewFinancialProcessor wires the financial branch.
func NewFinancialProcessor(parser port.FinancialParser, storage port.ObjectStorage, docRepo port.DocumentRepository, txnRepo port.TransactionRepository) *FinancialProcessor {
	return &FinancialProcessor{
		parser:  parser,
		storage: storage,
		docRepo: docRepo,
		txnRepo: txnRepo,
	}
}

// Process mutates doc's financial payload in place and persists it before
// attempting the ledger insert, so a failed insert never loses the parse
// result.
func (p *FinancialProcessor) Process(ctx context.Context, doc *domain.Document) (domain.ProcessingOutcome, error) {
	fileURL, err := p.storage.GetPresignedURL(ctx, doc.StorageBucket, doc.StorageKey, presignExpirySecs)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("presigning %s: %w", doc.StorageKey, err)
	}

	out, err := p.parser.Parse(ctx, fileURL, doc.ContentType)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	doc.FinancialPayload = out.Raw
	if doc.SecondaryType == nil && out.SecondaryType != "" {
		secondary := out.SecondaryType
		doc.SecondaryType = &secondary
	}
	if err := p.docRepo.UpdatePayload(ctx, doc); err != nil {
		// parse result is lost but the provider call succeeded; the caller
		// still gets the processed data
		log.Printf("processor.FinancialProcessor: persisting payload for document %s failed: %v", doc.ID, err)
	}

	secondary := ""
	if doc.SecondaryType != nil {
		secondary = *doc.SecondaryType
	}
	if !transactionSubTypes[secondary] {
		return domain.OutcomeCompleted, nil
	}
	if doc.ClientID == nil {
		log.Printf("processor.FinancialProcessor: document %s has no client, skipping ledger insert", doc.ID)
		return domain.OutcomeWithWarnings, nil
	}

	txns, err := MapToTransactions(doc, secondary, out.Raw)
	if err != nil {
		log.Printf("processor.FinancialProcessor: mapping transactions for document %s failed: %v", doc.ID, err)
		return domain.OutcomeWithWarnings, nil
	}
	if len(txns) == 0 {
		return domain.OutcomeCompleted, nil
	}
	if err := p.txnRepo.CreateBatch(ctx, txns); err != nil {
		// payload write above stands, partial success
		log.Printf("processor.FinancialProcessor: inserting %d transactions for document %s failed: %v", len(txns), doc.ID, err)
		return domain.OutcomeWithWarnings, nil
	}

	log.Printf("processor.FinancialProcessor: document %s produced %d ledger transactions", doc.ID, len(txns))
	return domain.OutcomeCompleted, nil
}
