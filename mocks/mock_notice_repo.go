package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
)

// MockNoticeRepo is a mock implementation of port.NoticeRepository.
type MockNoticeRepo struct {
	mock.Mock
}

func (m *MockNoticeRepo) Create(ctx context.Context, notice *domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNoticeRepo) GetByID(ctx context.Context, ownerID, noticeID uuid.UUID) (*domain.Notice, error) {
	args := m.Called(ctx, ownerID, noticeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *MockNoticeRepo) GetByDocumentID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Notice, error) {
	args := m.Called(ctx, ownerID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *MockNoticeRepo) List(ctx context.Context, ownerID uuid.UUID, status *domain.NoticeStatus, offset, limit int) ([]domain.Notice, int, error) {
	args := m.Called(ctx, ownerID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Notice), args.Int(1), args.Error(2)
}

func (m *MockNoticeRepo) ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Notice, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notice), args.Error(1)
}

func (m *MockNoticeRepo) Update(ctx context.Context, notice *domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNoticeRepo) Delete(ctx context.Context, ownerID, noticeID uuid.UUID) error {
	args := m.Called(ctx, ownerID, noticeID)
	return args.Error(0)
}
