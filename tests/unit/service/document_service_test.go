package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
	"firmdesk/internal/service"
	"firmdesk/mocks"
)

func setupDocumentService() (service.DocumentService, *mocks.MockDocumentRepo, *mocks.MockObjectStorage) {
	docRepo := new(mocks.MockDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewDocumentService(docRepo, storage)
	return svc, docRepo, storage
}

func TestDocumentService_List_ClampsLimit(t *testing.T) {
	svc, docRepo, _ := setupDocumentService()
	ownerID := uuid.New()

	docRepo.On("List", mock.Anything, ownerID, port.DocumentFilter{}, 0, 50).
		Return([]domain.Document{}, 0, nil)

	list, err := svc.List(context.Background(), ownerID, port.DocumentFilter{}, -5, 0)

	assert.NoError(t, err)
	assert.Equal(t, 0, list.Offset)
	assert.Equal(t, 50, list.Limit)
	docRepo.AssertExpectations(t)
}

func TestDocumentService_Download(t *testing.T) {
	svc, docRepo, storage := setupDocumentService()
	ownerID := uuid.New()
	doc := &domain.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		ContentType:   "application/pdf",
		StorageBucket: "client-documents",
		StorageKey:    "k/file.pdf",
	}

	docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	storage.On("Download", mock.Anything, "client-documents", "k/file.pdf").
		Return([]byte("%PDF data"), nil)

	data, contentType, err := svc.Download(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	assert.Equal(t, []byte("%PDF data"), data)
	assert.Equal(t, "application/pdf", contentType)
}

func TestDocumentService_Delete_RemovesRowsThenBlob(t *testing.T) {
	svc, docRepo, storage := setupDocumentService()
	ownerID := uuid.New()
	doc := &domain.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		StorageBucket: "irs-notices",
		StorageKey:    "k/notice.pdf",
	}

	docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	docRepo.On("DeleteWithNotice", mock.Anything, ownerID, doc.ID).Return(nil)
	storage.On("Delete", mock.Anything, "irs-notices", "k/notice.pdf").Return(nil)

	err := svc.Delete(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
	docRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDocumentService_Delete_BlobFailureIsNotFatal(t *testing.T) {
	svc, docRepo, storage := setupDocumentService()
	ownerID := uuid.New()
	doc := &domain.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		StorageBucket: "client-documents",
		StorageKey:    "k/file.pdf",
	}

	docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	docRepo.On("DeleteWithNotice", mock.Anything, ownerID, doc.ID).Return(nil)
	storage.On("Delete", mock.Anything, "client-documents", "k/file.pdf").
		Return(errors.New("s3 unavailable"))

	err := svc.Delete(context.Background(), ownerID, doc.ID)

	assert.NoError(t, err)
}

func TestDocumentService_Delete_RowFailureKeepsBlob(t *testing.T) {
	svc, docRepo, storage := setupDocumentService()
	ownerID := uuid.New()
	doc := &domain.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		StorageBucket: "client-documents",
		StorageKey:    "k/file.pdf",
	}

	docRepo.On("GetByID", mock.Anything, ownerID, doc.ID).Return(doc, nil)
	docRepo.On("DeleteWithNotice", mock.Anything, ownerID, doc.ID).
		Return(errors.New("tx rollback"))

	err := svc.Delete(context.Background(), ownerID, doc.ID)

	assert.Error(t, err)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Delete_NotFound(t *testing.T) {
	svc, docRepo, _ := setupDocumentService()
	ownerID := uuid.New()
	docID := uuid.New()

	docRepo.On("GetByID", mock.Anything, ownerID, docID).Return(nil, domain.ErrDocumentNotFound)

	err := svc.Delete(context.Background(), ownerID, docID)

	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
