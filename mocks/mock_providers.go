package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, input port.ExtractInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// MockClassifier is a mock implementation of port.DocumentClassifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, input port.ClassifyInput) (*domain.NoticeAnalysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NoticeAnalysis), args.Error(1)
}

// MockFinancialParser is a mock implementation of port.FinancialParser.
type MockFinancialParser struct {
	mock.Mock
}

func (m *MockFinancialParser) Parse(ctx context.Context, fileURL, contentType string) (*port.FinancialParseOutput, error) {
	args := m.Called(ctx, fileURL, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.FinancialParseOutput), args.Error(1)
}

// MockIdentityParser is a mock implementation of port.IdentityParser.
type MockIdentityParser struct {
	mock.Mock
}

func (m *MockIdentityParser) Parse(ctx context.Context, text string) (json.RawMessage, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockSummarizer is a mock implementation of port.Summarizer.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendNoticeReminder(ctx context.Context, toEmail, toName string, notice *domain.Notice) error {
	args := m.Called(ctx, toEmail, toName, notice)
	return args.Error(0)
}
