package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// DocumentList is a paged document listing.
type DocumentList struct {
	Documents []domain.Document `json:"documents"`
	Total     int               `json:"total"`
	Offset    int               `json:"offset"`
	Limit     int               `json:"limit"`
}

// DocumentService exposes document CRUD outside the pipeline.
type DocumentService interface {
	Get(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) (*DocumentList, error)
	Download(ctx context.Context, ownerID, docID uuid.UUID) ([]byte, string, error)
	Delete(ctx context.Context, ownerID, docID uuid.UUID) error
}

type documentService struct {
	docRepo port.DocumentRepository
	storage port.ObjectStorage
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(docRepo port.DocumentRepository, storage port.ObjectStorage) DocumentService {
	return &documentService{docRepo: docRepo, storage: storage}
}

func (s *documentService) Get(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, ownerID, docID)
}

func (s *documentService) List(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) (*DocumentList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	docs, total, err := s.docRepo.List(ctx, ownerID, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("documentService.List: %w", err)
	}
	return &DocumentList{Documents: docs, Total: total, Offset: offset, Limit: limit}, nil
}

func (s *documentService) Download(ctx context.Context, ownerID, docID uuid.UUID) ([]byte, string, error) {
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.storage.Download(ctx, doc.StorageBucket, doc.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("documentService.Download: %w", err)
	}
	return data, doc.ContentType, nil
}

// Delete removes the database rows first, then the blob. A blob that
// outlives its rows is only logged; the inverse would leave dangling records.
func (s *documentService) Delete(ctx context.Context, ownerID, docID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return err
	}
	if err := s.docRepo.DeleteWithNotice(ctx, ownerID, docID); err != nil {
		return fmt.Errorf("documentService.Delete: %w", err)
	}
	if err := s.storage.Delete(ctx, doc.StorageBucket, doc.StorageKey); err != nil {
		log.Printf("documentService.Delete: blob %s/%s could not be deleted: %v", doc.StorageBucket, doc.StorageKey, err)
	}
	return nil
}
