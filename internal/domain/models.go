package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated firm user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Client represents a CPA-firm client the documents belong to.
type Client struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OwnerID    uuid.UUID `db:"owner_id" json:"owner_id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	TaxID      string    `db:"tax_id" json:"tax_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Document is the central pipeline entity. A document carries at most one
// non-null structured payload, matching its approved classification.
type Document struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	OwnerID          uuid.UUID        `db:"owner_id" json:"owner_id"`
	ClientID         *uuid.UUID       `db:"client_id" json:"client_id"`
	FileName         string           `db:"file_name" json:"file_name"`
	OriginalName     string           `db:"original_name" json:"original_name"`
	FileSize         int64            `db:"file_size" json:"file_size"`
	ContentType      string           `db:"content_type" json:"content_type"`
	Category         DocumentCategory `db:"category" json:"category"`
	StorageBucket    string           `db:"storage_bucket" json:"storage_bucket"`
	StorageKey       string           `db:"storage_key" json:"storage_key"`
	ExtractedText    *string          `db:"extracted_text" json:"extracted_text"`
	AISummary        *string          `db:"ai_summary" json:"ai_summary"`
	Classification   *Classification  `db:"classification" json:"classification"`
	SecondaryType    *string          `db:"secondary_type" json:"secondary_type"`
	Processed        bool             `db:"processed" json:"processed"`
	FinancialPayload json.RawMessage  `db:"financial_payload" json:"financial_payload"`
	IdentityPayload  json.RawMessage  `db:"identity_payload" json:"identity_payload"`
	TaxPayload       json.RawMessage  `db:"tax_payload" json:"tax_payload"`
	PipelineStep     PipelineStep     `db:"pipeline_step" json:"pipeline_step"`
	PipelineError    string           `db:"pipeline_error" json:"pipeline_error"`
	Outcome          *ProcessingOutcome `db:"outcome" json:"outcome"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Notice is a tax-authority notice derived 1:1 from a notice-category document.
type Notice struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	OwnerID         uuid.UUID      `db:"owner_id" json:"owner_id"`
	DocumentID      uuid.UUID      `db:"document_id" json:"document_id"`
	ClientID        *uuid.UUID     `db:"client_id" json:"client_id"`
	NoticeNumber    string         `db:"notice_number" json:"notice_number"`
	NoticeType      string         `db:"notice_type" json:"notice_type"`
	TaxYear         *int           `db:"tax_year" json:"tax_year"`
	AmountOwed      *float64       `db:"amount_owed" json:"amount_owed"`
	Deadline        *time.Time     `db:"deadline" json:"deadline"`
	Status          NoticeStatus   `db:"status" json:"status"`
	Priority        NoticePriority `db:"priority" json:"priority"`
	AISummary       string         `db:"ai_summary" json:"ai_summary"`
	Recommendations string         `db:"recommendations" json:"recommendations"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// Transaction is a normalized ledger row derived from a financial document.
// Every row carries a non-null client id.
type Transaction struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	DocumentID      uuid.UUID       `db:"document_id" json:"document_id"`
	ClientID        uuid.UUID       `db:"client_id" json:"client_id"`
	SourceDocType   string          `db:"source_doc_type" json:"source_doc_type"`
	TransactionDate *time.Time      `db:"transaction_date" json:"transaction_date"`
	Description     string          `db:"description" json:"description"`
	Amount          float64         `db:"amount" json:"amount"`
	Currency        string          `db:"currency" json:"currency"`
	TransactionType string          `db:"transaction_type" json:"transaction_type"`
	DebitCredit     DebitCredit     `db:"debit_credit" json:"debit_credit"`
	ReferenceNumber string          `db:"reference_number" json:"reference_number"`
	Counterparty    string          `db:"counterparty" json:"counterparty"`
	CounterpartyAddress string      `db:"counterparty_address" json:"counterparty_address"`
	InvoiceNumber   string          `db:"invoice_number" json:"invoice_number"`
	DueDate         *time.Time      `db:"due_date" json:"due_date"`
	PaymentStatus   string          `db:"payment_status" json:"payment_status"`
	PaymentMethod   string          `db:"payment_method" json:"payment_method"`
	LineItems       json.RawMessage `db:"line_items" json:"line_items"`
	RawResponse     json.RawMessage `db:"raw_response" json:"raw_response"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// Vendor tracks 1099/W-9 status for a client's vendor.
type Vendor struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OwnerID        uuid.UUID  `db:"owner_id" json:"owner_id"`
	ClientID       uuid.UUID  `db:"client_id" json:"client_id"`
	Name           string     `db:"name" json:"name"`
	TaxID          string     `db:"tax_id" json:"tax_id"`
	W9Status       W9Status   `db:"w9_status" json:"w9_status"`
	Requires1099   bool       `db:"requires_1099" json:"requires_1099"`
	PaidYearToDate float64    `db:"paid_year_to_date" json:"paid_year_to_date"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// UploadProgress is the ephemeral per-file progress report. Not persisted.
type UploadProgress struct {
	FileName string       `json:"file_name"`
	Percent  int          `json:"percent"`
	Status   UploadStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
}

// NoticeAnalysis is the complete classification/analysis result shape.
// Every field is populated by the AI call or by the deterministic fallback;
// consumers never see a partial shape.
type NoticeAnalysis struct {
	Classification  Classification   `json:"classification"`
	Category        DocumentCategory `json:"category"`
	SecondaryType   string           `json:"secondary_type"`
	NoticeNumber    string           `json:"notice_number"`
	NoticeType      string           `json:"notice_type"`
	TaxYear         *int             `json:"tax_year"`
	AmountOwed      *float64         `json:"amount_owed"`
	Deadline        *time.Time       `json:"deadline"`
	Priority        NoticePriority   `json:"priority"`
	Summary         string           `json:"summary"`
	Recommendations []string         `json:"recommendations"`
}
