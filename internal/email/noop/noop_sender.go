package noop

import (
	"context"
	"log"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs reminders to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendNoticeReminder(_ context.Context, toEmail, toName string, notice *domain.Notice) error {
	log.Printf("[NOOP EMAIL] Notice reminder for %s (%s): notice %s deadline %v", toName, toEmail, notice.NoticeNumber, notice.Deadline)
	return nil
}
