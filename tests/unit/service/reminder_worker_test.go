package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"firmdesk/internal/domain"
	"firmdesk/internal/service"
	"firmdesk/mocks"
)

func TestReminderWorker_SendsEachNoticeOnce(t *testing.T) {
	noticeRepo := new(mocks.MockNoticeRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)

	ownerID := uuid.New()
	deadline := time.Now().UTC().Add(48 * time.Hour)
	notice := domain.Notice{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		NoticeNumber: "CP14",
		Deadline:     &deadline,
		Status:       domain.NoticeStatusPending,
		Priority:     domain.PriorityMedium,
	}
	user := &domain.User{
		ID:       ownerID,
		Email:    "cpa@example.com",
		FullName: "Pat Accountant",
		IsActive: true,
	}

	// the same due notice keeps coming back every poll
	noticeRepo.On("ListDueBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Notice{notice}, nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(user, nil).Once()
	sender.On("SendNoticeReminder", mock.Anything, "cpa@example.com", "Pat Accountant", mock.AnythingOfType("*domain.Notice")).
		Return(nil).Once()

	worker := service.NewReminderWorker(noticeRepo, userRepo, sender, service.ReminderConfig{
		PollInterval: 10 * time.Millisecond,
		Lookahead:    7 * 24 * time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	worker.Start(ctx)

	sender.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestReminderWorker_SendFailureRetriesNextPoll(t *testing.T) {
	noticeRepo := new(mocks.MockNoticeRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)

	ownerID := uuid.New()
	deadline := time.Now().UTC().Add(24 * time.Hour)
	notice := domain.Notice{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Deadline: &deadline,
	}
	user := &domain.User{ID: ownerID, Email: "cpa@example.com", FullName: "Pat"}

	noticeRepo.On("ListDueBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Notice{notice}, nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(user, nil)
	sender.On("SendNoticeReminder", mock.Anything, "cpa@example.com", "Pat", mock.AnythingOfType("*domain.Notice")).
		Return(errors.New("ses throttled")).Once()
	sender.On("SendNoticeReminder", mock.Anything, "cpa@example.com", "Pat", mock.AnythingOfType("*domain.Notice")).
		Return(nil).Once()

	worker := service.NewReminderWorker(noticeRepo, userRepo, sender, service.ReminderConfig{
		PollInterval: 10 * time.Millisecond,
		Lookahead:    7 * 24 * time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	worker.Start(ctx)

	sender.AssertExpectations(t)
}

func TestReminderWorker_ListFailureDoesNotCrash(t *testing.T) {
	noticeRepo := new(mocks.MockNoticeRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)

	noticeRepo.On("ListDueBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("db down"))

	worker := service.NewReminderWorker(noticeRepo, userRepo, sender, service.ReminderConfig{
		PollInterval: 10 * time.Millisecond,
		Lookahead:    24 * time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NotPanics(t, func() { worker.Start(ctx) })
	sender.AssertNotCalled(t, "SendNoticeReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
