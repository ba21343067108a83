package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// NoticeUpdateInput is the DTO for operator edits to a notice.
type NoticeUpdateInput struct {
	Status     *domain.NoticeStatus   `json:"status"`
	Priority   *domain.NoticePriority `json:"priority"`
	ClientID   *uuid.UUID             `json:"client_id"`
	Deadline   *time.Time             `json:"deadline"`
	TaxYear    *int                   `json:"tax_year"`
	AmountOwed *float64               `json:"amount_owed"`
}

// NoticeList is a paged notice listing.
type NoticeList struct {
	Notices []domain.Notice `json:"notices"`
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
}

// NoticeService manages tax-authority notice tracking.
type NoticeService interface {
	Get(ctx context.Context, ownerID, noticeID uuid.UUID) (*domain.Notice, error)
	List(ctx context.Context, ownerID uuid.UUID, status *domain.NoticeStatus, offset, limit int) (*NoticeList, error)
	Update(ctx context.Context, ownerID, noticeID uuid.UUID, input NoticeUpdateInput) (*domain.Notice, error)
	Delete(ctx context.Context, ownerID, noticeID uuid.UUID) error
}

type noticeService struct {
	noticeRepo port.NoticeRepository
}

// NewNoticeService creates a new NoticeService implementation.
func NewNoticeService(noticeRepo port.NoticeRepository) NoticeService {
	return &noticeService{noticeRepo: noticeRepo}
}

func (s *noticeService) Get(ctx context.Context, ownerID, noticeID uuid.UUID) (*domain.Notice, error) {
	return s.noticeRepo.GetByID(ctx, ownerID, noticeID)
}

func (s *noticeService) List(ctx context.Context, ownerID uuid.UUID, status *domain.NoticeStatus, offset, limit int) (*NoticeList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	notices, total, err := s.noticeRepo.List(ctx, ownerID, status, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("noticeService.List: %w", err)
	}
	return &NoticeList{Notices: notices, Total: total, Offset: offset, Limit: limit}, nil
}

func (s *noticeService) Update(ctx context.Context, ownerID, noticeID uuid.UUID, input NoticeUpdateInput) (*domain.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, ownerID, noticeID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.ValidNoticeStatuses[*input.Status] {
			return nil, fmt.Errorf("noticeService.Update: invalid status %q", *input.Status)
		}
		notice.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidNoticePriorities[*input.Priority] {
			return nil, fmt.Errorf("noticeService.Update: invalid priority %q", *input.Priority)
		}
		notice.Priority = *input.Priority
	}
	if input.ClientID != nil {
		notice.ClientID = input.ClientID
	}
	if input.Deadline != nil {
		notice.Deadline = input.Deadline
	}
	if input.TaxYear != nil {
		notice.TaxYear = input.TaxYear
	}
	if input.AmountOwed != nil {
		notice.AmountOwed = input.AmountOwed
	}

	if err := s.noticeRepo.Update(ctx, notice); err != nil {
		return nil, fmt.Errorf("noticeService.Update: %w", err)
	}
	return notice, nil
}

func (s *noticeService) Delete(ctx context.Context, ownerID, noticeID uuid.UUID) error {
	return s.noticeRepo.Delete(ctx, ownerID, noticeID)
}
