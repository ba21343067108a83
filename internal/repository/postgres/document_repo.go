package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, owner_id, client_id, file_name, original_name, file_size, content_type,
		category, storage_bucket, storage_key,
		extracted_text, ai_summary, classification, secondary_type, processed,
		financial_payload, identity_payload, tax_payload,
		pipeline_step, pipeline_error, outcome,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10,
		$11, $12, $13, $14, $15,
		$16, $17, $18,
		$19, $20, $21,
		$22, $23
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.OwnerID, doc.ClientID, doc.FileName, doc.OriginalName, doc.FileSize, doc.ContentType,
		doc.Category, doc.StorageBucket, doc.StorageKey,
		doc.ExtractedText, doc.AISummary, doc.Classification, doc.SecondaryType, doc.Processed,
		doc.FinancialPayload, doc.IdentityPayload, doc.TaxPayload,
		doc.PipelineStep, doc.PipelineError, doc.Outcome,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND owner_id = $2", docID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	where := []string{"owner_id = $1"}
	args := []interface{}{ownerID}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE "+cond, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		fmt.Sprintf(`SELECT * FROM documents WHERE %s
		 ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) UpdateExtraction(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			extracted_text = $1, ai_summary = $2, processed = $3, updated_at = $4
		 WHERE id = $5 AND owner_id = $6`,
		doc.ExtractedText, doc.AISummary, doc.Processed, doc.UpdatedAt,
		doc.ID, doc.OwnerID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateExtraction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateClassification(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			classification = $1, secondary_type = $2, pipeline_step = $3,
			pipeline_error = $4, updated_at = $5
		 WHERE id = $6 AND owner_id = $7`,
		doc.Classification, doc.SecondaryType, doc.PipelineStep,
		doc.PipelineError, doc.UpdatedAt,
		doc.ID, doc.OwnerID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateClassification: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdatePayload(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			financial_payload = $1, identity_payload = $2, tax_payload = $3,
			processed = $4, pipeline_step = $5, pipeline_error = $6, outcome = $7,
			updated_at = $8
		 WHERE id = $9 AND owner_id = $10`,
		doc.FinancialPayload, doc.IdentityPayload, doc.TaxPayload,
		doc.Processed, doc.PipelineStep, doc.PipelineError, doc.Outcome,
		doc.UpdatedAt,
		doc.ID, doc.OwnerID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdatePayload: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// BeginProcessing performs a compare-and-set on pipeline_step so only one
// caller can move a document into specific_processing.
func (r *documentRepo) BeginProcessing(ctx context.Context, ownerID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET pipeline_step = $1, updated_at = $2
		 WHERE id = $3 AND owner_id = $4 AND pipeline_step = $5`,
		domain.StepSpecificProcessing, time.Now().UTC(),
		docID, ownerID, domain.StepNeedsApproval)
	if err != nil {
		return fmt.Errorf("documentRepo.BeginProcessing: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a missing document from a lost race
		var step domain.PipelineStep
		err := r.db.GetContext(ctx, &step,
			"SELECT pipeline_step FROM documents WHERE id = $1 AND owner_id = $2", docID, ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDocumentNotFound
		}
		if err != nil {
			return fmt.Errorf("documentRepo.BeginProcessing check: %w", err)
		}
		switch step {
		case domain.StepSpecificProcessing:
			return domain.ErrProcessingInProgress
		case domain.StepCompleted:
			return domain.ErrAlreadyProcessed
		}
		return domain.ErrNotClassified
	}
	return nil
}

func (r *documentRepo) SetPipelineStep(ctx context.Context, ownerID, docID uuid.UUID, step domain.PipelineStep, pipelineErr string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET pipeline_step = $1, pipeline_error = $2, updated_at = $3
		 WHERE id = $4 AND owner_id = $5`,
		step, pipelineErr, time.Now().UTC(), docID, ownerID)
	if err != nil {
		return fmt.Errorf("documentRepo.SetPipelineStep: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// DeleteWithNotice deletes the notice row (if any) and the document row in
// one transaction. Ledger rows go with the document via ON DELETE CASCADE.
func (r *documentRepo) DeleteWithNotice(ctx context.Context, ownerID, docID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.DeleteWithNotice begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM notices WHERE document_id = $1 AND owner_id = $2", docID, ownerID); err != nil {
		return fmt.Errorf("documentRepo.DeleteWithNotice notice: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND owner_id = $2", docID, ownerID)
	if err != nil {
		return fmt.Errorf("documentRepo.DeleteWithNotice document: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.DeleteWithNotice commit: %w", err)
	}
	return nil
}
