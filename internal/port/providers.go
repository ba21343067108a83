package port

import (
	"context"
	"encoding/json"

	"firmdesk/internal/domain"
)

// ExtractInput carries what the text-extraction provider needs.
type ExtractInput struct {
	FileURL     string // presigned URL to the stored file
	FileBytes   []byte // raw bytes for local fallback extraction
	ContentType string
	FileName    string
}

// TextExtractor abstracts OCR/text extraction. Implementations must return a
// non-empty text string: when the provider is degraded the extractor falls
// back to locally-synthesized text so the downstream contract holds.
type TextExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (string, error)
}

// ClassifyInput carries what the classification provider needs.
type ClassifyInput struct {
	Text     string
	FileName string
}

// DocumentClassifier abstracts the LLM-backed classification/analysis call.
type DocumentClassifier interface {
	Classify(ctx context.Context, input ClassifyInput) (*domain.NoticeAnalysis, error)
}

// FinancialParseOutput is the provider envelope from the financial parser.
type FinancialParseOutput struct {
	Raw           json.RawMessage
	SecondaryType string
}

// FinancialParser abstracts the financial-document parsing endpoint.
// It consumes a presigned file URL rather than extracted text.
type FinancialParser interface {
	Parse(ctx context.Context, fileURL, contentType string) (*FinancialParseOutput, error)
}

// IdentityParser abstracts the identity-document extraction endpoint.
type IdentityParser interface {
	Parse(ctx context.Context, text string) (json.RawMessage, error)
}

// Summarizer abstracts the single-sentence summarization endpoint.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
