package port

import (
	"context"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
)

// DocumentFilter narrows document list queries.
type DocumentFilter struct {
	ClientID *uuid.UUID
	Category *domain.DocumentCategory
}

// DocumentRepository defines the contract for document persistence.
// All reads and writes are scoped to the owning user.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, ownerID uuid.UUID, filter DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	UpdateExtraction(ctx context.Context, doc *domain.Document) error
	UpdateClassification(ctx context.Context, doc *domain.Document) error
	UpdatePayload(ctx context.Context, doc *domain.Document) error
	// BeginProcessing atomically moves a document into specific_processing.
	// It returns domain.ErrProcessingInProgress when another caller won the
	// transition, which is how concurrent approve/override is serialized.
	BeginProcessing(ctx context.Context, ownerID, docID uuid.UUID) error
	SetPipelineStep(ctx context.Context, ownerID, docID uuid.UUID, step domain.PipelineStep, pipelineErr string) error
	// DeleteWithNotice removes the document row and any notice referencing it
	// in a single database transaction.
	DeleteWithNotice(ctx context.Context, ownerID, docID uuid.UUID) error
}
