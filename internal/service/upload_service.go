package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"math/big"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/config"
	"firmdesk/internal/domain"
	"firmdesk/internal/imaging"
	"firmdesk/internal/metrics"
	"firmdesk/internal/port"
)

// UploadFileInput carries one file to upload.
type UploadFileInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadOptions control category assignment and downstream processing.
type UploadOptions struct {
	ClientID *uuid.UUID
	Category *domain.DocumentCategory
	RunOCR   bool
	RunAI    bool
}

// ProgressFunc receives per-file progress checkpoints.
type ProgressFunc func(domain.UploadProgress)

// UploadResult pairs a created document (or nil) with its terminal progress.
type UploadResult struct {
	Document *domain.Document   `json:"document"`
	Progress domain.UploadProgress `json:"progress"`
	Err      error              `json:"-"`
}

// UploadService orchestrates validate, compress, store, record and the
// background pipeline kick-off.
type UploadService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, input UploadFileInput, opts UploadOptions, onProgress ProgressFunc) (*domain.Document, error)
	UploadBatch(ctx context.Context, ownerID uuid.UUID, inputs []UploadFileInput, opts UploadOptions, onProgress ProgressFunc) []UploadResult
}

type uploadService struct {
	storage  port.ObjectStorage
	docRepo  port.DocumentRepository
	pipeline PipelineService
	s3cfg    config.S3Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(storage port.ObjectStorage, docRepo port.DocumentRepository, pipeline PipelineService, s3cfg config.S3Config) UploadService {
	return &uploadService{
		storage:  storage,
		docRepo:  docRepo,
		pipeline: pipeline,
		s3cfg:    s3cfg,
	}
}

func (s *uploadService) Upload(ctx context.Context, ownerID uuid.UUID, input UploadFileInput, opts UploadOptions, onProgress ProgressFunc) (*domain.Document, error) {
	report := func(percent int, status domain.UploadStatus, errMsg string) {
		if onProgress != nil {
			onProgress(domain.UploadProgress{
				FileName: input.FileName,
				Percent:  percent,
				Status:   status,
				Error:    errMsg,
			})
		}
	}

	if err := validateUpload(input); err != nil {
		report(0, domain.UploadError, err.Error())
		return nil, err
	}
	report(10, domain.UploadUploading, "")

	fileBytes, err := io.ReadAll(io.LimitReader(input.Body, domain.MaxUploadBytes+1))
	if err != nil {
		report(0, domain.UploadError, "reading file")
		return nil, fmt.Errorf("upload.Upload: reading file: %w", err)
	}
	if int64(len(fileBytes)) > domain.MaxUploadBytes {
		report(0, domain.UploadError, domain.ErrFileTooLarge.Error())
		return nil, domain.ErrFileTooLarge
	}

	if imaging.ShouldDownsample(input.ContentType, int64(len(fileBytes))) {
		compressed, err := imaging.Downsample(fileBytes, input.ContentType)
		if err != nil {
			log.Printf("upload.Upload: downsampling %s failed, uploading original: %v", input.FileName, err)
		} else {
			fileBytes = compressed
		}
	}

	category := inferCategory(input.FileName, opts.Category)
	bucket := s.bucketFor(category)
	key := storageKey(ownerID, input.FileName)
	report(30, domain.UploadUploading, "")

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      bucket,
		Key:         key,
		Body:        bytes.NewReader(fileBytes),
		ContentType: input.ContentType,
		Size:        int64(len(fileBytes)),
	}); err != nil {
		report(30, domain.UploadError, "storage upload failed")
		return nil, fmt.Errorf("upload.Upload: %w: %v", domain.ErrUploadFailed, err)
	}
	report(60, domain.UploadProcessing, "")

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		ClientID:      opts.ClientID,
		FileName:      filepath.Base(key),
		OriginalName:  input.FileName,
		FileSize:      int64(len(fileBytes)),
		ContentType:   input.ContentType,
		Category:      category,
		StorageBucket: bucket,
		StorageKey:    key,
		PipelineStep:  domain.StepIdle,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		// compensate: the blob must not outlive the failed record
		if delErr := s.storage.Delete(ctx, bucket, key); delErr != nil {
			log.Printf("upload.Upload: orphaned blob %s/%s could not be deleted: %v", bucket, key, delErr)
		}
		report(60, domain.UploadError, "creating document record failed")
		return nil, fmt.Errorf("upload.Upload: creating record: %w", err)
	}
	metrics.DocumentsUploaded.WithLabelValues(string(category)).Inc()
	report(80, domain.UploadProcessing, "")

	if opts.RunOCR || opts.RunAI {
		s.pipeline.ProcessInBackground(ownerID, doc.ID)
	}

	report(100, domain.UploadCompleted, "")
	return doc, nil
}

// UploadBatch drives files sequentially through Upload, reusing the same
// progress callback per file.
func (s *uploadService) UploadBatch(ctx context.Context, ownerID uuid.UUID, inputs []UploadFileInput, opts UploadOptions, onProgress ProgressFunc) []UploadResult {
	results := make([]UploadResult, 0, len(inputs))
	for _, input := range inputs {
		var last domain.UploadProgress
		doc, err := s.Upload(ctx, ownerID, input, opts, func(p domain.UploadProgress) {
			last = p
			if onProgress != nil {
				onProgress(p)
			}
		})
		results = append(results, UploadResult{Document: doc, Progress: last, Err: err})
	}
	return results
}

func (s *uploadService) bucketFor(category domain.DocumentCategory) string {
	if category == domain.CategoryTaxNotice {
		return s.s3cfg.NoticeBucket
	}
	return s.s3cfg.DocumentBucket
}

func validateUpload(input UploadFileInput) error {
	if input.Size > domain.MaxUploadBytes {
		return domain.ErrFileTooLarge
	}
	if !domain.AllowedContentTypes[input.ContentType] {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, input.ContentType)
	}
	return nil
}

// categoryRules maps filename keywords to a document category, checked in order.
var categoryRules = []struct {
	keywords []string
	category domain.DocumentCategory
}{
	{[]string{"w-2", "w2"}, domain.CategoryWageStatement},
	{[]string{"1099"}, domain.CategoryMiscIncome},
	{[]string{"w-9", "w9"}, domain.CategoryVendorTaxForm},
	{[]string{"irs", "notice", "cp2000", "cp14", "cp90"}, domain.CategoryTaxNotice},
	{[]string{"receipt", "invoice"}, domain.CategoryReceipt},
	{[]string{"bank", "statement"}, domain.CategoryBankStatement},
}

func inferCategory(fileName string, override *domain.DocumentCategory) domain.DocumentCategory {
	if override != nil && domain.ValidCategories[*override] {
		return *override
	}
	name := strings.ToLower(fileName)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9-_]`)

// storageKey builds a collision-resistant object key of the form
// {ownerID}/{epochMillis}_{random}_{sanitizedBase}{ext}.
func storageKey(ownerID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = unsafeChars.ReplaceAllString(base, "_")
	if len(base) > 50 {
		base = base[:50]
	}
	return fmt.Sprintf("%s/%d_%s_%s%s", ownerID, time.Now().UnixMilli(), randomSuffix(6), base, ext)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(suffixAlphabet))))
		if err != nil {
			b[i] = 'x'
			continue
		}
		b[i] = suffixAlphabet[idx.Int64()]
	}
	return string(b)
}
