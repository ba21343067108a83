package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/metrics"
	"firmdesk/internal/port"
)

const (
	backgroundTimeout = 5 * time.Minute
	previewExpirySecs = 3600

	// degradedSummary is shown in place of the AI summary when a pipeline
	// stage fails, so the document stays visible with a reviewable state.
	degradedSummary = "processing failed — review manually"
)

// BranchProcessor is one type-specific processing branch.
type BranchProcessor interface {
	Process(ctx context.Context, doc *domain.Document) (domain.ProcessingOutcome, error)
}

// ProcessResult is what the classification stage returns to the caller.
type ProcessResult struct {
	Analysis *domain.NoticeAnalysis `json:"analysis"`
	NoticeID *uuid.UUID             `json:"notice_id,omitempty"`
}

// ApprovalResult is what approve/override return after the branch runs.
type ApprovalResult struct {
	Outcome  domain.ProcessingOutcome `json:"outcome"`
	Document *domain.Document         `json:"document"`
}

// PipelineService runs the OCR/classification stage and the approval gate.
type PipelineService interface {
	// ProcessInBackground launches Process on a detached context. Errors are
	// swallowed into document state, the upload caller has already returned.
	ProcessInBackground(ownerID, docID uuid.UUID)
	Process(ctx context.Context, ownerID, docID uuid.UUID) (*ProcessResult, error)
	Approve(ctx context.Context, ownerID, docID uuid.UUID) (*ApprovalResult, error)
	Override(ctx context.Context, ownerID, docID uuid.UUID, newClass domain.Classification) (*ApprovalResult, error)
	GetPreviewURL(ctx context.Context, ownerID, docID uuid.UUID) (string, error)
}

type pipelineService struct {
	docRepo    port.DocumentRepository
	noticeRepo port.NoticeRepository
	storage    port.ObjectStorage
	extractor  port.TextExtractor
	classifier port.DocumentClassifier
	branches   map[domain.Classification]BranchProcessor
}

// NewPipelineService wires the pipeline stages together.
func NewPipelineService(
	docRepo port.DocumentRepository,
	noticeRepo port.NoticeRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	classifier port.DocumentClassifier,
	financial, identity, tax BranchProcessor,
) PipelineService {
	return &pipelineService{
		docRepo:    docRepo,
		noticeRepo: noticeRepo,
		storage:    storage,
		extractor:  extractor,
		classifier: classifier,
		branches: map[domain.Classification]BranchProcessor{
			domain.ClassFinancial: financial,
			domain.ClassIdentity:  identity,
			domain.ClassTax:       tax,
		},
	}
}

func (s *pipelineService) ProcessInBackground(ownerID, docID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		log.Printf("pipelineService.ProcessInBackground: starting for document %s", docID)
		if _, err := s.Process(ctx, ownerID, docID); err != nil {
			log.Printf("pipelineService.ProcessInBackground: document %s failed: %v", docID, err)
		}
	}()
}

func (s *pipelineService) Process(ctx context.Context, ownerID, docID uuid.UUID) (*ProcessResult, error) {
	start := time.Now()
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.SetPipelineStep(ctx, ownerID, docID, domain.StepOCR, ""); err != nil {
		return nil, fmt.Errorf("pipelineService.Process: %w", err)
	}

	text := ""
	if doc.ExtractedText != nil {
		text = *doc.ExtractedText
	}
	if strings.TrimSpace(text) == "" {
		text, err = s.extractText(ctx, doc)
		if err != nil {
			s.failPipeline(ctx, doc, fmt.Sprintf("extracting text: %v", err))
			return nil, err
		}
	}

	if err := s.docRepo.SetPipelineStep(ctx, ownerID, docID, domain.StepClassification, ""); err != nil {
		return nil, fmt.Errorf("pipelineService.Process: %w", err)
	}

	analysis, err := s.classifier.Classify(ctx, port.ClassifyInput{
		Text:     text,
		FileName: doc.OriginalName,
	})
	if err != nil {
		s.failPipeline(ctx, doc, fmt.Sprintf("classifying: %v", err))
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	doc.ExtractedText = &text
	doc.AISummary = &analysis.Summary
	doc.Processed = true
	if err := s.docRepo.UpdateExtraction(ctx, doc); err != nil {
		s.failPipeline(ctx, doc, fmt.Sprintf("persisting extraction: %v", err))
		return nil, err
	}

	classification := analysis.Classification
	doc.Classification = &classification
	if analysis.SecondaryType != "" {
		secondary := analysis.SecondaryType
		doc.SecondaryType = &secondary
	}
	doc.PipelineStep = domain.StepNeedsApproval
	doc.PipelineError = ""
	if err := s.docRepo.UpdateClassification(ctx, doc); err != nil {
		s.failPipeline(ctx, doc, fmt.Sprintf("persisting classification: %v", err))
		return nil, err
	}

	result := &ProcessResult{Analysis: analysis}
	if analysis.Category == domain.CategoryTaxNotice {
		noticeID, err := s.upsertNotice(ctx, doc, analysis)
		if err != nil {
			// secondary side-effect, the classification itself succeeded
			log.Printf("pipelineService.Process: notice upsert for document %s failed: %v", doc.ID, err)
		} else {
			result.NoticeID = noticeID
		}
	}

	metrics.PipelineRuns.WithLabelValues("classified").Inc()
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	log.Printf("pipelineService.Process: document %s classified as %s/%s", doc.ID, analysis.Classification, analysis.Category)
	return result, nil
}

func (s *pipelineService) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	fileURL, err := s.storage.GetPresignedURL(ctx, doc.StorageBucket, doc.StorageKey, previewExpirySecs)
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", doc.StorageKey, err)
	}
	fileBytes, err := s.storage.Download(ctx, doc.StorageBucket, doc.StorageKey)
	if err != nil {
		log.Printf("pipelineService.extractText: downloading %s for local fallback failed: %v", doc.StorageKey, err)
		fileBytes = nil
	}
	return s.extractor.Extract(ctx, port.ExtractInput{
		FileURL:     fileURL,
		FileBytes:   fileBytes,
		ContentType: doc.ContentType,
		FileName:    doc.OriginalName,
	})
}

// upsertNotice updates an existing notice for the document in place, or
// inserts a fresh pending one. The unique constraint on document_id backstops
// the existence check.
func (s *pipelineService) upsertNotice(ctx context.Context, doc *domain.Document, analysis *domain.NoticeAnalysis) (*uuid.UUID, error) {
	existing, err := s.noticeRepo.GetByDocumentID(ctx, doc.OwnerID, doc.ID)
	if err != nil && !errors.Is(err, domain.ErrNoticeNotFound) {
		return nil, err
	}

	if existing != nil {
		applyAnalysis(existing, analysis)
		if err := s.noticeRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return &existing.ID, nil
	}

	now := time.Now().UTC()
	notice := &domain.Notice{
		ID:         uuid.New(),
		OwnerID:    doc.OwnerID,
		DocumentID: doc.ID,
		ClientID:   doc.ClientID,
		Status:     domain.NoticeStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyAnalysis(notice, analysis)
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}
	return &notice.ID, nil
}

func applyAnalysis(notice *domain.Notice, analysis *domain.NoticeAnalysis) {
	notice.NoticeNumber = analysis.NoticeNumber
	notice.NoticeType = analysis.NoticeType
	notice.TaxYear = analysis.TaxYear
	notice.AmountOwed = analysis.AmountOwed
	notice.Deadline = analysis.Deadline
	notice.Priority = analysis.Priority
	notice.AISummary = analysis.Summary
	notice.Recommendations = strings.Join(analysis.Recommendations, "\n")
	if notice.Priority == "" {
		notice.Priority = domain.PriorityMedium
	}
}

func (s *pipelineService) Approve(ctx context.Context, ownerID, docID uuid.UUID) (*ApprovalResult, error) {
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return nil, err
	}
	if doc.Classification == nil {
		return nil, domain.ErrNotClassified
	}
	return s.runBranch(ctx, doc)
}

func (s *pipelineService) Override(ctx context.Context, ownerID, docID uuid.UUID, newClass domain.Classification) (*ApprovalResult, error) {
	if !domain.ValidClassifications[newClass] || newClass == domain.ClassUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidClassification, newClass)
	}

	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return nil, err
	}
	if doc.Classification == nil {
		return nil, domain.ErrNotClassified
	}

	doc.Classification = &newClass
	if err := s.docRepo.UpdateClassification(ctx, doc); err != nil {
		return nil, fmt.Errorf("pipelineService.Override: %w", err)
	}
	return s.runBranch(ctx, doc)
}

// runBranch claims the document via the compare-and-set transition, runs the
// matching processor and persists the tagged outcome.
func (s *pipelineService) runBranch(ctx context.Context, doc *domain.Document) (*ApprovalResult, error) {
	if err := s.docRepo.BeginProcessing(ctx, doc.OwnerID, doc.ID); err != nil {
		return nil, err
	}
	doc.PipelineStep = domain.StepSpecificProcessing

	branch, ok := s.branches[*doc.Classification]
	if !ok {
		s.failPipeline(ctx, doc, fmt.Sprintf("no processor for classification %s", *doc.Classification))
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidClassification, *doc.Classification)
	}

	outcome, err := branch.Process(ctx, doc)
	metrics.BranchOutcomes.WithLabelValues(string(*doc.Classification), string(outcome)).Inc()
	if err != nil {
		s.failPipeline(ctx, doc, err.Error())
		doc.Outcome = &outcome
		return &ApprovalResult{Outcome: outcome, Document: doc}, err
	}

	doc.PipelineStep = domain.StepCompleted
	doc.PipelineError = ""
	doc.Outcome = &outcome
	doc.Processed = true
	if err := s.docRepo.UpdatePayload(ctx, doc); err != nil {
		log.Printf("pipelineService.runBranch: persisting outcome for document %s failed: %v", doc.ID, err)
	}
	return &ApprovalResult{Outcome: outcome, Document: doc}, nil
}

func (s *pipelineService) GetPreviewURL(ctx context.Context, ownerID, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.StorageBucket, doc.StorageKey, previewExpirySecs)
}

func (s *pipelineService) failPipeline(ctx context.Context, doc *domain.Document, msg string) {
	if err := s.docRepo.SetPipelineStep(ctx, doc.OwnerID, doc.ID, domain.StepError, msg); err != nil {
		log.Printf("pipelineService.failPipeline: recording error for document %s failed: %v", doc.ID, err)
	}
	doc.PipelineStep = domain.StepError
	doc.PipelineError = msg

	summary := degradedSummary
	doc.AISummary = &summary
	if err := s.docRepo.UpdateExtraction(ctx, doc); err != nil {
		log.Printf("pipelineService.failPipeline: recording summary for document %s failed: %v", doc.ID, err)
	}
}
