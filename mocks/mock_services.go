package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
	"firmdesk/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input service.LoginInput) (*service.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, ownerID uuid.UUID, input service.UploadFileInput, opts service.UploadOptions, onProgress service.ProgressFunc) (*domain.Document, error) {
	args := m.Called(ctx, ownerID, input, opts, onProgress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockUploadService) UploadBatch(ctx context.Context, ownerID uuid.UUID, inputs []service.UploadFileInput, opts service.UploadOptions, onProgress service.ProgressFunc) []service.UploadResult {
	args := m.Called(ctx, ownerID, inputs, opts, onProgress)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.UploadResult)
}

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Get(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, ownerID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) (*service.DocumentList, error) {
	args := m.Called(ctx, ownerID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentList), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, ownerID, docID uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, ownerID, docID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockDocumentService) Delete(ctx context.Context, ownerID, docID uuid.UUID) error {
	args := m.Called(ctx, ownerID, docID)
	return args.Error(0)
}

// MockNoticeService is a mock implementation of service.NoticeService.
type MockNoticeService struct {
	mock.Mock
}

func (m *MockNoticeService) Get(ctx context.Context, ownerID, noticeID uuid.UUID) (*domain.Notice, error) {
	args := m.Called(ctx, ownerID, noticeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *MockNoticeService) List(ctx context.Context, ownerID uuid.UUID, status *domain.NoticeStatus, offset, limit int) (*service.NoticeList, error) {
	args := m.Called(ctx, ownerID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoticeList), args.Error(1)
}

func (m *MockNoticeService) Update(ctx context.Context, ownerID, noticeID uuid.UUID, input service.NoticeUpdateInput) (*domain.Notice, error) {
	args := m.Called(ctx, ownerID, noticeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *MockNoticeService) Delete(ctx context.Context, ownerID, noticeID uuid.UUID) error {
	args := m.Called(ctx, ownerID, noticeID)
	return args.Error(0)
}
