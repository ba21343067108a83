package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/service"
)

// MockPipelineService is a mock implementation of service.PipelineService.
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) ProcessInBackground(ownerID, docID uuid.UUID) {
	m.Called(ownerID, docID)
}

func (m *MockPipelineService) Process(ctx context.Context, ownerID, docID uuid.UUID) (*service.ProcessResult, error) {
	args := m.Called(ctx, ownerID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessResult), args.Error(1)
}

func (m *MockPipelineService) Approve(ctx context.Context, ownerID, docID uuid.UUID) (*service.ApprovalResult, error) {
	args := m.Called(ctx, ownerID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApprovalResult), args.Error(1)
}

func (m *MockPipelineService) Override(ctx context.Context, ownerID, docID uuid.UUID, newClass domain.Classification) (*service.ApprovalResult, error) {
	args := m.Called(ctx, ownerID, docID, newClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApprovalResult), args.Error(1)
}

func (m *MockPipelineService) GetPreviewURL(ctx context.Context, ownerID, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, ownerID, docID)
	return args.String(0), args.Error(1)
}

// MockBranchProcessor is a mock implementation of service.BranchProcessor.
type MockBranchProcessor struct {
	mock.Mock
}

func (m *MockBranchProcessor) Process(ctx context.Context, doc *domain.Document) (domain.ProcessingOutcome, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(domain.ProcessingOutcome), args.Error(1)
}
