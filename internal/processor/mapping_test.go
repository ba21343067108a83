package processor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmdesk/internal/domain"
)

func docWithClient() *domain.Document {
	clientID := uuid.New()
	return &domain.Document{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		ClientID: &clientID,
	}
}

func TestMapBankStatementTransactions(t *testing.T) {
	raw := json.RawMessage(`{
		"document_type": "bank_statement",
		"currency": "USD",
		"transactions": [
			{"date": "2026-01-05", "description": "POS PURCHASE GROCERY MART", "amount": 54.20, "reference_number": "REF1"},
			{"date": "2026-01-07", "description": "PREAUTHORIZED CREDIT PAYROLL", "amount": 2100.00, "reference_number": "REF2"}
		]
	}`)
	doc := docWithClient()

	txns, err := MapToTransactions(doc, "bank statement", raw)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, doc.ID, txns[0].DocumentID)
	assert.Equal(t, *doc.ClientID, txns[0].ClientID)
	assert.Equal(t, "bank statement", txns[0].SourceDocType)
	assert.Equal(t, "pos_purchase", txns[0].TransactionType)
	assert.Equal(t, domain.Debit, txns[0].DebitCredit)
	require.NotNil(t, txns[0].TransactionDate)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), *txns[0].TransactionDate)
	assert.Equal(t, "REF1", txns[0].ReferenceNumber)

	assert.Equal(t, "direct_deposit", txns[1].TransactionType)
	assert.Equal(t, domain.Credit, txns[1].DebitCredit)
	assert.InDelta(t, 2100.00, txns[1].Amount, 0.001)
}

func TestMapBankStatementNegativeAmountStoredUnsigned(t *testing.T) {
	raw := json.RawMessage(`{
		"document_type": "bank_statement",
		"currency": "USD",
		"transactions": [
			{"date": "2026-01-09", "description": "POS PURCHASE STORE #123", "amount": -42.50}
		]
	}`)

	txns, err := MapToTransactions(docWithClient(), "bank statement", raw)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.Debit, txns[0].DebitCredit)
	assert.InDelta(t, 42.50, txns[0].Amount, 0.001)
}

func TestMapInvoiceSingleTransaction(t *testing.T) {
	raw := json.RawMessage(`{
		"document_type": "invoice",
		"merchant": {"name": "Office Supply Co", "address": "1 Main St"},
		"payment": {"method": "net-30", "status": "unpaid"},
		"invoice_number": "INV-1042",
		"date": "2026-02-01",
		"due_date": "2026-03-03",
		"total": 980.40,
		"currency": "USD",
		"line_items": [{"description": "Paper", "amount": 980.40}]
	}`)
	doc := docWithClient()

	txns, err := MapToTransactions(doc, "invoice", raw)
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, "invoice", txn.SourceDocType)
	assert.Equal(t, "Office Supply Co", txn.Counterparty)
	assert.Equal(t, "1 Main St", txn.CounterpartyAddress)
	assert.Equal(t, "INV-1042", txn.InvoiceNumber)
	assert.Equal(t, "unpaid", txn.PaymentStatus)
	assert.Equal(t, "net-30", txn.PaymentMethod)
	require.NotNil(t, txn.DueDate)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), *txn.DueDate)
	assert.InDelta(t, 980.40, txn.Amount, 0.001)
	assert.NotEmpty(t, txn.LineItems)
	assert.Equal(t, domain.Debit, txn.DebitCredit)
}

func TestMapReceiptDefaultsCurrency(t *testing.T) {
	raw := json.RawMessage(`{
		"document_type": "receipt",
		"merchant": {"name": "Corner Cafe"},
		"total": -12.75
	}`)
	doc := docWithClient()

	txns, err := MapToTransactions(doc, "receipt", raw)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "USD", txns[0].Currency)
	assert.InDelta(t, 12.75, txns[0].Amount, 0.001)
	assert.Equal(t, "Corner Cafe", txns[0].Description)
	assert.Nil(t, txns[0].TransactionDate)
}

func TestMapRequiresClient(t *testing.T) {
	doc := &domain.Document{ID: uuid.New()}
	_, err := MapToTransactions(doc, "receipt", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestMapUnknownSecondaryType(t *testing.T) {
	_, err := MapToTransactions(docWithClient(), "tax return", json.RawMessage(`{}`))
	assert.Error(t, err)
}
