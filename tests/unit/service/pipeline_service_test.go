package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firmdesk/internal/domain"
	"firmdesk/internal/service"
	"firmdesk/mocks"
)

type pipelineFixture struct {
	svc        service.PipelineService
	docRepo    *mocks.MockDocumentRepo
	noticeRepo *mocks.MockNoticeRepo
	storage    *mocks.MockObjectStorage
	extractor  *mocks.MockTextExtractor
	classifier *mocks.MockClassifier
	financial  *mocks.MockBranchProcessor
	identity   *mocks.MockBranchProcessor
	tax        *mocks.MockBranchProcessor
}

func setupPipelineService() *pipelineFixture {
	f := &pipelineFixture{
		docRepo:    new(mocks.MockDocumentRepo),
		noticeRepo: new(mocks.MockNoticeRepo),
		storage:    new(mocks.MockObjectStorage),
		extractor:  new(mocks.MockTextExtractor),
		classifier: new(mocks.MockClassifier),
		financial:  new(mocks.MockBranchProcessor),
		identity:   new(mocks.MockBranchProcessor),
		tax:        new(mocks.MockBranchProcessor),
	}
	f.svc = service.NewPipelineService(
		f.docRepo, f.noticeRepo, f.storage, f.extractor, f.classifier,
		f.financial, f.identity, f.tax,
	)
	return f
}

func pipelineDoc(ownerID uuid.UUID) *domain.Document {
	return &domain.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		FileName:      "stored.pdf",
		OriginalName:  "statement.pdf",
		ContentType:   "application/pdf",
		Category:      domain.CategoryBankStatement,
		StorageBucket: "client-documents",
		StorageKey:    "key/stored.pdf",
		PipelineStep:  domain.StepIdle,
	}
}

// --- Process ---

func TestPipelineService_Process_ClassifiesAndAwaitsApproval(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, domain.StepOCR, "").Return(nil)
	f.storage.On("GetPresignedURL", mock.Anything, "client-documents", "key/stored.pdf", int64(3600)).
		Return("https://s3.example/presigned", nil)
	f.storage.On("Download", mock.Anything, "client-documents", "key/stored.pdf").
		Return([]byte("%PDF raw"), nil)
	f.extractor.On("Extract", mock.Anything, mock.AnythingOfType("port.ExtractInput")).
		Return("ACCOUNT STATEMENT beginning balance 1000.00", nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, domain.StepClassification, "").Return(nil)
	f.classifier.On("Classify", mock.Anything, mock.AnythingOfType("port.ClassifyInput")).
		Return(&domain.NoticeAnalysis{
			Classification: domain.ClassFinancial,
			Category:       domain.CategoryBankStatement,
			SecondaryType:  "bank statement",
			Priority:       domain.PriorityLow,
			Summary:        "Monthly checking account statement.",
		}, nil)
	f.docRepo.On("UpdateExtraction", mock.Anything, doc).Return(nil)
	f.docRepo.On("UpdateClassification", mock.Anything, doc).Return(nil)

	result, err := f.svc.Process(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, domain.ClassFinancial, result.Analysis.Classification)
	assert.Nil(t, result.NoticeID)

	assert.Equal(t, domain.StepNeedsApproval, doc.PipelineStep)
	assert.NotNil(t, doc.Classification)
	assert.Equal(t, domain.ClassFinancial, *doc.Classification)
	assert.NotNil(t, doc.SecondaryType)
	assert.Equal(t, "bank statement", *doc.SecondaryType)
	assert.NotNil(t, doc.ExtractedText)
	assert.True(t, doc.Processed)

	f.docRepo.AssertExpectations(t)
	f.classifier.AssertExpectations(t)
}

func TestPipelineService_Process_SkipsExtractionWhenTextPresent(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)
	text := "already extracted text"
	doc.ExtractedText = &text

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, mock.AnythingOfType("domain.PipelineStep"), "").Return(nil)
	f.classifier.On("Classify", mock.Anything, mock.AnythingOfType("port.ClassifyInput")).
		Return(&domain.NoticeAnalysis{
			Classification: domain.ClassFinancial,
			Category:       domain.CategoryReceipt,
			Priority:       domain.PriorityLow,
			Summary:        "A receipt.",
		}, nil)
	f.docRepo.On("UpdateExtraction", mock.Anything, doc).Return(nil)
	f.docRepo.On("UpdateClassification", mock.Anything, doc).Return(nil)

	_, err := f.svc.Process(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	f.storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineService_Process_TaxNoticeCreatesNotice(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)
	clientID := uuid.New()
	doc.ClientID = &clientID
	text := "IRS CP2000 proposed changes"
	doc.ExtractedText = &text

	year := 2023
	amount := 4521.88
	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, mock.AnythingOfType("domain.PipelineStep"), "").Return(nil)
	f.classifier.On("Classify", mock.Anything, mock.AnythingOfType("port.ClassifyInput")).
		Return(&domain.NoticeAnalysis{
			Classification: domain.ClassTax,
			Category:       domain.CategoryTaxNotice,
			NoticeNumber:   "CP2000",
			NoticeType:     "underreported income",
			TaxYear:        &year,
			AmountOwed:     &amount,
			Priority:       domain.PriorityHigh,
			Summary:        "Proposed additional tax for 2023.",
		}, nil)
	f.docRepo.On("UpdateExtraction", mock.Anything, doc).Return(nil)
	f.docRepo.On("UpdateClassification", mock.Anything, doc).Return(nil)
	f.noticeRepo.On("GetByDocumentID", mock.Anything, ownerID, doc.ID).Return(nil, domain.ErrNoticeNotFound)

	var created *domain.Notice
	f.noticeRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notice")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Notice) }).
		Return(nil)

	result, err := f.svc.Process(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	assert.NotNil(t, result.NoticeID)
	assert.NotNil(t, created)
	assert.Equal(t, doc.ID, created.DocumentID)
	assert.Equal(t, &clientID, created.ClientID)
	assert.Equal(t, "CP2000", created.NoticeNumber)
	assert.Equal(t, domain.NoticeStatusPending, created.Status)
	assert.Equal(t, domain.PriorityHigh, created.Priority)
	assert.Equal(t, &year, created.TaxYear)
	assert.Equal(t, &amount, created.AmountOwed)
}

func TestPipelineService_Process_ReclassifyUpdatesExistingNotice(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)
	text := "IRS CP14 balance due"
	doc.ExtractedText = &text

	existing := &domain.Notice{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		DocumentID: doc.ID,
		Status:     domain.NoticeStatusInProgress,
		Priority:   domain.PriorityLow,
	}

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, mock.AnythingOfType("domain.PipelineStep"), "").Return(nil)
	f.classifier.On("Classify", mock.Anything, mock.AnythingOfType("port.ClassifyInput")).
		Return(&domain.NoticeAnalysis{
			Classification: domain.ClassTax,
			Category:       domain.CategoryTaxNotice,
			NoticeNumber:   "CP14",
			Priority:       domain.PriorityMedium,
			Summary:        "Balance due notice.",
		}, nil)
	f.docRepo.On("UpdateExtraction", mock.Anything, doc).Return(nil)
	f.docRepo.On("UpdateClassification", mock.Anything, doc).Return(nil)
	f.noticeRepo.On("GetByDocumentID", mock.Anything, ownerID, doc.ID).Return(existing, nil)
	f.noticeRepo.On("Update", mock.Anything, existing).Return(nil)

	result, err := f.svc.Process(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	assert.Equal(t, &existing.ID, result.NoticeID)
	assert.Equal(t, "CP14", existing.NoticeNumber)
	// resolution state survives reclassification
	assert.Equal(t, domain.NoticeStatusInProgress, existing.Status)
	f.noticeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPipelineService_Process_ClassifierFailureMarksError(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)
	text := "some text"
	doc.ExtractedText = &text

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, domain.StepOCR, "").Return(nil)
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, domain.StepClassification, "").Return(nil)
	f.classifier.On("Classify", mock.Anything, mock.AnythingOfType("port.ClassifyInput")).
		Return(nil, errors.New("provider timeout"))
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, domain.StepError, mock.AnythingOfType("string")).Return(nil)
	f.docRepo.On("UpdateExtraction", mock.Anything, doc).Return(nil)

	result, err := f.svc.Process(context.Background(), ownerID, doc.ID)

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, domain.StepError, doc.PipelineStep)
	require.NotNil(t, doc.AISummary)
	assert.Equal(t, "processing failed — review manually", *doc.AISummary)
	f.docRepo.AssertExpectations(t)
}

// --- Approve / Override ---

func approvedDoc(ownerID uuid.UUID, class domain.Classification) *domain.Document {
	doc := pipelineDoc(ownerID)
	doc.Classification = &class
	doc.PipelineStep = domain.StepNeedsApproval
	return doc
}

func TestPipelineService_Approve_Success(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := approvedDoc(ownerID, domain.ClassFinancial)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("BeginProcessing", mock.Anything, ownerID, doc.ID).Return(nil)
	f.financial.On("Process", mock.Anything, doc).Return(domain.OutcomeCompleted, nil)
	f.docRepo.On("UpdatePayload", mock.Anything, doc).Return(nil)

	result, err := f.svc.Approve(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Equal(t, domain.StepCompleted, doc.PipelineStep)
	assert.NotNil(t, doc.Outcome)
	assert.Equal(t, domain.OutcomeCompleted, *doc.Outcome)
	assert.True(t, doc.Processed)
	f.identity.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	f.tax.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPipelineService_Approve_NotClassified(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)

	result, err := f.svc.Approve(context.Background(), ownerID, doc.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotClassified)
	f.docRepo.AssertNotCalled(t, "BeginProcessing", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineService_Approve_ConcurrentClaimRejected(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := approvedDoc(ownerID, domain.ClassTax)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("BeginProcessing", mock.Anything, ownerID, doc.ID).Return(domain.ErrProcessingInProgress)

	result, err := f.svc.Approve(context.Background(), ownerID, doc.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProcessingInProgress)
	f.tax.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPipelineService_Approve_CompletedDocumentRejected(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := approvedDoc(ownerID, domain.ClassTax)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("BeginProcessing", mock.Anything, ownerID, doc.ID).Return(domain.ErrAlreadyProcessed)

	result, err := f.svc.Approve(context.Background(), ownerID, doc.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	f.tax.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPipelineService_Approve_BranchFailureRecordsOutcome(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := approvedDoc(ownerID, domain.ClassIdentity)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("BeginProcessing", mock.Anything, ownerID, doc.ID).Return(nil)
	f.identity.On("Process", mock.Anything, doc).
		Return(domain.OutcomeFailed, errors.New("no extracted text"))
	f.docRepo.On("SetPipelineStep", mock.Anything, ownerID, doc.ID, domain.StepError, mock.AnythingOfType("string")).Return(nil)
	f.docRepo.On("UpdateExtraction", mock.Anything, doc).Return(nil)

	result, err := f.svc.Approve(context.Background(), ownerID, doc.ID)

	assert.Error(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Equal(t, domain.StepError, doc.PipelineStep)
	f.docRepo.AssertNotCalled(t, "UpdatePayload", mock.Anything, mock.Anything)
}

func TestPipelineService_Override_RejectsUnknown(t *testing.T) {
	f := setupPipelineService()

	result, err := f.svc.Override(context.Background(), uuid.New(), uuid.New(), domain.ClassUnknown)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidClassification)
	f.docRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineService_Override_RejectsInvalidLabel(t *testing.T) {
	f := setupPipelineService()

	_, err := f.svc.Override(context.Background(), uuid.New(), uuid.New(), domain.Classification("Bogus"))

	assert.ErrorIs(t, err, domain.ErrInvalidClassification)
}

func TestPipelineService_Override_ReroutesBranch(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := approvedDoc(ownerID, domain.ClassFinancial)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.docRepo.On("UpdateClassification", mock.Anything, doc).Return(nil)
	f.docRepo.On("BeginProcessing", mock.Anything, ownerID, doc.ID).Return(nil)
	f.tax.On("Process", mock.Anything, doc).Return(domain.OutcomeCompleted, nil)
	f.docRepo.On("UpdatePayload", mock.Anything, doc).Return(nil)

	result, err := f.svc.Override(context.Background(), ownerID, doc.ID, domain.ClassTax)

	assert.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Equal(t, domain.ClassTax, *doc.Classification)
	f.financial.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPipelineService_GetPreviewURL(t *testing.T) {
	f := setupPipelineService()
	ownerID := uuid.New()
	doc := pipelineDoc(ownerID)

	f.docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "client-documents", "key/stored.pdf", int64(3600)).
		Return("https://s3.example/preview", nil)

	url, err := f.svc.GetPreviewURL(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	assert.Equal(t, "https://s3.example/preview", url)
}
