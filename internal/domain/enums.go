package domain

// DocumentCategory is the storage-level category of an uploaded document.
type DocumentCategory string

const (
	CategoryWageStatement   DocumentCategory = "wage-statement"
	CategoryMiscIncome      DocumentCategory = "miscellaneous-income-statement"
	CategoryReceipt         DocumentCategory = "receipt"
	CategoryBankStatement   DocumentCategory = "bank-statement"
	CategoryTaxNotice       DocumentCategory = "tax-authority-notice"
	CategoryVendorTaxForm   DocumentCategory = "vendor-tax-form"
	CategoryInvoice         DocumentCategory = "invoice"
	CategoryOther           DocumentCategory = "other"
)

// ValidCategories enumerates every accepted document category.
var ValidCategories = map[DocumentCategory]bool{
	CategoryWageStatement: true,
	CategoryMiscIncome:    true,
	CategoryReceipt:       true,
	CategoryBankStatement: true,
	CategoryTaxNotice:     true,
	CategoryVendorTaxForm: true,
	CategoryInvoice:       true,
	CategoryOther:         true,
}

// Classification is the top-level AI label driving branch selection.
type Classification string

const (
	ClassFinancial Classification = "Financial"
	ClassIdentity  Classification = "Identity"
	ClassTax       Classification = "Tax"
	ClassUnknown   Classification = "Unknown"
)

// ValidClassifications enumerates the accepted classification labels.
var ValidClassifications = map[Classification]bool{
	ClassFinancial: true,
	ClassIdentity:  true,
	ClassTax:       true,
	ClassUnknown:   true,
}

// PipelineStep is the persisted per-document pipeline phase.
type PipelineStep string

const (
	StepIdle               PipelineStep = "idle"
	StepOCR                PipelineStep = "ocr"
	StepClassification     PipelineStep = "classification"
	StepNeedsApproval      PipelineStep = "needs_approval"
	StepSpecificProcessing PipelineStep = "specific_processing"
	StepCompleted          PipelineStep = "completed"
	StepError              PipelineStep = "error"
)

// ProcessingOutcome is the tagged result of a branch processor run.
type ProcessingOutcome string

const (
	OutcomeCompleted    ProcessingOutcome = "completed"
	OutcomeWithWarnings ProcessingOutcome = "completed_with_warnings"
	OutcomeFailed       ProcessingOutcome = "failed"
)

// NoticeStatus tracks resolution of an IRS/tax-authority notice.
type NoticeStatus string

const (
	NoticeStatusPending    NoticeStatus = "pending"
	NoticeStatusInProgress NoticeStatus = "in_progress"
	NoticeStatusResolved   NoticeStatus = "resolved"
	NoticeStatusAppealed   NoticeStatus = "appealed"
)

// ValidNoticeStatuses enumerates the accepted notice statuses.
var ValidNoticeStatuses = map[NoticeStatus]bool{
	NoticeStatusPending:    true,
	NoticeStatusInProgress: true,
	NoticeStatusResolved:   true,
	NoticeStatusAppealed:   true,
}

// NoticePriority ranks a notice's urgency.
type NoticePriority string

const (
	PriorityLow      NoticePriority = "low"
	PriorityMedium   NoticePriority = "medium"
	PriorityHigh     NoticePriority = "high"
	PriorityCritical NoticePriority = "critical"
)

// ValidNoticePriorities enumerates the accepted notice priorities.
var ValidNoticePriorities = map[NoticePriority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// DebitCredit flags the direction of a ledger transaction.
type DebitCredit string

const (
	Debit  DebitCredit = "debit"
	Credit DebitCredit = "credit"
)

// W9Status tracks the W-9 collection lifecycle for a vendor.
type W9Status string

const (
	W9Missing   W9Status = "missing"
	W9Requested W9Status = "requested"
	W9Received  W9Status = "received"
	W9Verified  W9Status = "verified"
)

// ValidW9Statuses enumerates the accepted W-9 statuses.
var ValidW9Statuses = map[W9Status]bool{
	W9Missing:   true,
	W9Requested: true,
	W9Received:  true,
	W9Verified:  true,
}

// UserRole defines the role hierarchy within the firm.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// UploadStatus is the ephemeral per-file upload state reported to callers.
type UploadStatus string

const (
	UploadPending    UploadStatus = "pending"
	UploadUploading  UploadStatus = "uploading"
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadError      UploadStatus = "error"
)

// MaxUploadBytes is the upload size ceiling.
const MaxUploadBytes = 50 * 1024 * 1024

// AllowedContentTypes is the MIME allow-list for uploads.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"text/plain":      true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}
