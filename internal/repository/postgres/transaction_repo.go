package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

type transactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepo creates a new PostgreSQL-backed TransactionRepository.
func NewTransactionRepo(db *sqlx.DB) port.TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) CreateBatch(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range txns {
		txns[i].CreatedAt = now
	}

	query := `INSERT INTO transactions (
		id, document_id, client_id, source_doc_type,
		transaction_date, description, amount, currency,
		transaction_type, debit_credit, reference_number,
		counterparty, counterparty_address, invoice_number,
		due_date, payment_status, payment_method,
		line_items, raw_response, created_at
	) VALUES (
		:id, :document_id, :client_id, :source_doc_type,
		:transaction_date, :description, :amount, :currency,
		:transaction_type, :debit_credit, :reference_number,
		:counterparty, :counterparty_address, :invoice_number,
		:due_date, :payment_status, :payment_method,
		:line_items, :raw_response, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, txns); err != nil {
		return fmt.Errorf("transactionRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *transactionRepo) ListByDocument(ctx context.Context, ownerID, docID uuid.UUID) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := r.db.SelectContext(ctx, &txns,
		`SELECT t.* FROM transactions t
		 JOIN documents d ON d.id = t.document_id
		 WHERE t.document_id = $1 AND d.owner_id = $2
		 ORDER BY t.transaction_date ASC NULLS LAST, t.created_at ASC`,
		docID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("transactionRepo.ListByDocument: %w", err)
	}
	return txns, nil
}

func (r *transactionRepo) ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) ([]domain.Transaction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM transactions t
		 JOIN clients c ON c.id = t.client_id
		 WHERE t.client_id = $1 AND c.owner_id = $2`,
		clientID, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("transactionRepo.ListByClient count: %w", err)
	}

	var txns []domain.Transaction
	err = r.db.SelectContext(ctx, &txns,
		`SELECT t.* FROM transactions t
		 JOIN clients c ON c.id = t.client_id
		 WHERE t.client_id = $1 AND c.owner_id = $2
		 ORDER BY t.transaction_date DESC NULLS LAST, t.created_at DESC
		 LIMIT $3 OFFSET $4`,
		clientID, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("transactionRepo.ListByClient: %w", err)
	}
	return txns, total, nil
}
