package processor

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
)

// financialEnvelope is the provider-specific shape of a financial parse
// result. Only the fields the ledger mapping needs are modeled; the full
// response is kept opaque in raw_response.
type financialEnvelope struct {
	DocumentType string `json:"document_type"`
	Merchant     struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"merchant"`
	Payment struct {
		Method string `json:"method"`
		Status string `json:"status"`
	} `json:"payment"`
	InvoiceNumber string          `json:"invoice_number"`
	Date          string          `json:"date"`
	DueDate       string          `json:"due_date"`
	Total         float64         `json:"total"`
	Currency      string          `json:"currency"`
	LineItems     json.RawMessage `json:"line_items"`
	Transactions  []struct {
		Date            string  `json:"date"`
		Description     string  `json:"description"`
		Amount          float64 `json:"amount"`
		ReferenceNumber string  `json:"reference_number"`
	} `json:"transactions"`
}

// MapToTransactions converts a raw financial parse result into ledger rows
// for a document whose secondary type is bank statement, invoice or receipt.
// Amounts are stored unsigned; direction is carried by debit_credit.
func MapToTransactions(doc *domain.Document, secondaryType string, raw json.RawMessage) ([]domain.Transaction, error) {
	if doc.ClientID == nil {
		return nil, fmt.Errorf("document %s has no client", doc.ID)
	}

	var env financialEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding financial envelope: %w", err)
	}

	switch secondaryType {
	case "bank statement":
		return mapBankStatement(doc, &env, raw), nil
	case "invoice":
		return []domain.Transaction{mapSingle(doc, &env, raw, "invoice")}, nil
	case "receipt":
		return []domain.Transaction{mapSingle(doc, &env, raw, "receipt")}, nil
	default:
		return nil, fmt.Errorf("secondary type %q has no ledger mapping", secondaryType)
	}
}

func mapBankStatement(doc *domain.Document, env *financialEnvelope, raw json.RawMessage) []domain.Transaction {
	txns := make([]domain.Transaction, 0, len(env.Transactions))
	for _, t := range env.Transactions {
		txns = append(txns, domain.Transaction{
			ID:              uuid.New(),
			DocumentID:      doc.ID,
			ClientID:        *doc.ClientID,
			SourceDocType:   "bank statement",
			TransactionDate: parseDate(t.Date),
			Description:     t.Description,
			Amount:          math.Abs(t.Amount),
			Currency:        currencyOrDefault(env.Currency),
			TransactionType: DeriveTransactionType(t.Description),
			DebitCredit:     DeriveDebitCredit(t.Description),
			ReferenceNumber: t.ReferenceNumber,
			RawResponse:     raw,
			CreatedAt:       time.Now().UTC(),
		})
	}
	return txns
}

func mapSingle(doc *domain.Document, env *financialEnvelope, raw json.RawMessage, sourceType string) domain.Transaction {
	description := env.Merchant.Name
	if description == "" {
		description = sourceType
	}
	return domain.Transaction{
		ID:                  uuid.New(),
		DocumentID:          doc.ID,
		ClientID:            *doc.ClientID,
		SourceDocType:       sourceType,
		TransactionDate:     parseDate(env.Date),
		Description:         description,
		Amount:              math.Abs(env.Total),
		Currency:            currencyOrDefault(env.Currency),
		TransactionType:     sourceType,
		DebitCredit:         domain.Debit,
		Counterparty:        env.Merchant.Name,
		CounterpartyAddress: env.Merchant.Address,
		InvoiceNumber:       env.InvoiceNumber,
		DueDate:             parseDate(env.DueDate),
		PaymentStatus:       env.Payment.Status,
		PaymentMethod:       env.Payment.Method,
		LineItems:           env.LineItems,
		RawResponse:         raw,
		CreatedAt:           time.Now().UTC(),
	}
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "01/02/06", "Jan 2, 2006"}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "USD"
	}
	return c
}
