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

type noticeRepo struct {
	db *sqlx.DB
}

// NewNoticeRepo creates a new PostgreSQL-backed NoticeRepository.
func NewNoticeRepo(db *sqlx.DB) port.NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) Create(ctx context.Context, notice *domain.Notice) error {
	now := time.Now().UTC()
	notice.CreatedAt = now
	notice.UpdatedAt = now

	query := `INSERT INTO notices (
		id, owner_id, document_id, client_id,
		notice_number, notice_type, tax_year, amount_owed, deadline,
		status, priority, ai_summary, recommendations,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8, $9,
		$10, $11, $12, $13,
		$14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		notice.ID, notice.OwnerID, notice.DocumentID, notice.ClientID,
		notice.NoticeNumber, notice.NoticeType, notice.TaxYear, notice.AmountOwed, notice.Deadline,
		notice.Status, notice.Priority, notice.AISummary, notice.Recommendations,
		notice.CreatedAt, notice.UpdatedAt)
	if err != nil {
		// Unique constraint on document_id backs up the pre-insert check
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "document_id") {
			return fmt.Errorf("%w: document %s", domain.ErrDuplicateNotice, notice.DocumentID)
		}
		return fmt.Errorf("noticeRepo.Create: %w", err)
	}
	return nil
}

func (r *noticeRepo) GetByID(ctx context.Context, ownerID, noticeID uuid.UUID) (*domain.Notice, error) {
	var notice domain.Notice
	err := r.db.GetContext(ctx, &notice,
		"SELECT * FROM notices WHERE id = $1 AND owner_id = $2", noticeID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("noticeRepo.GetByID: %w", err)
	}
	return &notice, nil
}

func (r *noticeRepo) GetByDocumentID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Notice, error) {
	var notice domain.Notice
	err := r.db.GetContext(ctx, &notice,
		"SELECT * FROM notices WHERE document_id = $1 AND owner_id = $2", docID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("noticeRepo.GetByDocumentID: %w", err)
	}
	return &notice, nil
}

func (r *noticeRepo) List(ctx context.Context, ownerID uuid.UUID, status *domain.NoticeStatus, offset, limit int) ([]domain.Notice, int, error) {
	cond := "owner_id = $1"
	args := []interface{}{ownerID}
	if status != nil {
		args = append(args, *status)
		cond += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM notices WHERE "+cond, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("noticeRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var notices []domain.Notice
	err = r.db.SelectContext(ctx, &notices,
		fmt.Sprintf(`SELECT * FROM notices WHERE %s
		 ORDER BY deadline ASC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d`,
			cond, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("noticeRepo.List: %w", err)
	}
	return notices, total, nil
}

func (r *noticeRepo) ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Notice, error) {
	var notices []domain.Notice
	err := r.db.SelectContext(ctx, &notices,
		`SELECT * FROM notices
		 WHERE deadline IS NOT NULL AND deadline <= $1
		   AND status IN ($2, $3)
		 ORDER BY deadline ASC`,
		cutoff, domain.NoticeStatusPending, domain.NoticeStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("noticeRepo.ListDueBefore: %w", err)
	}
	return notices, nil
}

func (r *noticeRepo) Update(ctx context.Context, notice *domain.Notice) error {
	notice.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE notices SET
			notice_number = $1, notice_type = $2, tax_year = $3,
			amount_owed = $4, deadline = $5, status = $6, priority = $7,
			ai_summary = $8, recommendations = $9, updated_at = $10
		 WHERE id = $11 AND owner_id = $12`,
		notice.NoticeNumber, notice.NoticeType, notice.TaxYear,
		notice.AmountOwed, notice.Deadline, notice.Status, notice.Priority,
		notice.AISummary, notice.Recommendations, notice.UpdatedAt,
		notice.ID, notice.OwnerID)
	if err != nil {
		return fmt.Errorf("noticeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNoticeNotFound
	}
	return nil
}

func (r *noticeRepo) Delete(ctx context.Context, ownerID, noticeID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM notices WHERE id = $1 AND owner_id = $2", noticeID, ownerID)
	if err != nil {
		return fmt.Errorf("noticeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNoticeNotFound
	}
	return nil
}
