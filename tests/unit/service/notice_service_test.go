package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/service"
	"firmdesk/mocks"
)

func setupNoticeService() (service.NoticeService, *mocks.MockNoticeRepo) {
	noticeRepo := new(mocks.MockNoticeRepo)
	return service.NewNoticeService(noticeRepo), noticeRepo
}

func pendingNotice(ownerID uuid.UUID) *domain.Notice {
	return &domain.Notice{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		DocumentID:   uuid.New(),
		NoticeNumber: "CP2000",
		Status:       domain.NoticeStatusPending,
		Priority:     domain.PriorityHigh,
	}
}

func TestNoticeService_Update_PatchesOnlyProvidedFields(t *testing.T) {
	svc, noticeRepo := setupNoticeService()
	ownerID := uuid.New()
	notice := pendingNotice(ownerID)

	noticeRepo.On("GetByID", mock.Anything, ownerID, notice.ID).Return(notice, nil)
	noticeRepo.On("Update", mock.Anything, notice).Return(nil)

	status := domain.NoticeStatusResolved
	updated, err := svc.Update(context.Background(), ownerID, notice.ID, service.NoticeUpdateInput{
		Status: &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.NoticeStatusResolved, updated.Status)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.Equal(t, "CP2000", updated.NoticeNumber)
}

func TestNoticeService_Update_InvalidStatusRejected(t *testing.T) {
	svc, noticeRepo := setupNoticeService()
	ownerID := uuid.New()
	notice := pendingNotice(ownerID)

	noticeRepo.On("GetByID", mock.Anything, ownerID, notice.ID).Return(notice, nil)

	status := domain.NoticeStatus("escalated")
	updated, err := svc.Update(context.Background(), ownerID, notice.ID, service.NoticeUpdateInput{
		Status: &status,
	})

	assert.Nil(t, updated)
	assert.Error(t, err)
	noticeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNoticeService_Update_InvalidPriorityRejected(t *testing.T) {
	svc, noticeRepo := setupNoticeService()
	ownerID := uuid.New()
	notice := pendingNotice(ownerID)

	noticeRepo.On("GetByID", mock.Anything, ownerID, notice.ID).Return(notice, nil)

	priority := domain.NoticePriority("urgent")
	_, err := svc.Update(context.Background(), ownerID, notice.ID, service.NoticeUpdateInput{
		Priority: &priority,
	})

	assert.Error(t, err)
	noticeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNoticeService_Update_AssignsClientAndDeadline(t *testing.T) {
	svc, noticeRepo := setupNoticeService()
	ownerID := uuid.New()
	notice := pendingNotice(ownerID)

	noticeRepo.On("GetByID", mock.Anything, ownerID, notice.ID).Return(notice, nil)
	noticeRepo.On("Update", mock.Anything, notice).Return(nil)

	clientID := uuid.New()
	deadline := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), ownerID, notice.ID, service.NoticeUpdateInput{
		ClientID: &clientID,
		Deadline: &deadline,
	})

	assert.NoError(t, err)
	assert.Equal(t, &clientID, updated.ClientID)
	assert.Equal(t, &deadline, updated.Deadline)
	assert.Equal(t, domain.NoticeStatusPending, updated.Status)
}

func TestNoticeService_Update_NotFound(t *testing.T) {
	svc, noticeRepo := setupNoticeService()
	ownerID := uuid.New()
	noticeID := uuid.New()

	noticeRepo.On("GetByID", mock.Anything, ownerID, noticeID).Return(nil, domain.ErrNoticeNotFound)

	_, err := svc.Update(context.Background(), ownerID, noticeID, service.NoticeUpdateInput{})

	assert.ErrorIs(t, err, domain.ErrNoticeNotFound)
}

func TestNoticeService_List_FiltersByStatus(t *testing.T) {
	svc, noticeRepo := setupNoticeService()
	ownerID := uuid.New()
	status := domain.NoticeStatusPending

	noticeRepo.On("List", mock.Anything, ownerID, &status, 0, 50).
		Return([]domain.Notice{*pendingNotice(ownerID)}, 1, nil)

	list, err := svc.List(context.Background(), ownerID, &status, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, list.Notices, 1)
	assert.Equal(t, 1, list.Total)
}
