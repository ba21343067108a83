package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/export"
	"firmdesk/internal/port"
)

// TransactionList is a paged transaction listing.
type TransactionList struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Offset       int                  `json:"offset"`
	Limit        int                  `json:"limit"`
}

// TransactionService exposes the unified ledger.
type TransactionService interface {
	ListByDocument(ctx context.Context, ownerID, docID uuid.UUID) ([]domain.Transaction, error)
	ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) (*TransactionList, error)
	ExportByClient(ctx context.Context, w io.Writer, ownerID, clientID uuid.UUID) error
}

type transactionService struct {
	txnRepo port.TransactionRepository
}

// NewTransactionService creates a new TransactionService implementation.
func NewTransactionService(txnRepo port.TransactionRepository) TransactionService {
	return &transactionService{txnRepo: txnRepo}
}

func (s *transactionService) ListByDocument(ctx context.Context, ownerID, docID uuid.UUID) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListByDocument(ctx, ownerID, docID)
	if err != nil {
		return nil, fmt.Errorf("transactionService.ListByDocument: %w", err)
	}
	return txns, nil
}

func (s *transactionService) ListByClient(ctx context.Context, ownerID, clientID uuid.UUID, offset, limit int) (*TransactionList, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	txns, total, err := s.txnRepo.ListByClient(ctx, ownerID, clientID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("transactionService.ListByClient: %w", err)
	}
	return &TransactionList{Transactions: txns, Total: total, Offset: offset, Limit: limit}, nil
}

// ExportByClient streams the client's full ledger as an XLSX workbook.
func (s *transactionService) ExportByClient(ctx context.Context, w io.Writer, ownerID, clientID uuid.UUID) error {
	const pageSize = 500
	var all []domain.Transaction
	for offset := 0; ; offset += pageSize {
		txns, total, err := s.txnRepo.ListByClient(ctx, ownerID, clientID, offset, pageSize)
		if err != nil {
			return fmt.Errorf("transactionService.ExportByClient: %w", err)
		}
		all = append(all, txns...)
		if offset+pageSize >= total || len(txns) == 0 {
			break
		}
	}
	return export.WriteTransactionsXLSX(w, all)
}
