package port

import (
	"context"

	"firmdesk/internal/domain"
)

// EmailSender abstracts outbound notification email delivery.
type EmailSender interface {
	SendNoticeReminder(ctx context.Context, toEmail, toName string, notice *domain.Notice) error
}
