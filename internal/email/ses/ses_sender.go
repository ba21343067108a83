package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendNoticeReminder(ctx context.Context, toEmail, toName string, notice *domain.Notice) error {
	deadline := "soon"
	if notice.Deadline != nil {
		deadline = notice.Deadline.Format("January 2, 2006")
	}
	label := notice.NoticeNumber
	if label == "" {
		label = notice.NoticeType
	}

	subject := fmt.Sprintf("Reminder: IRS notice %s deadline %s", label, deadline)
	htmlBody := buildReminderHTML(toName, notice, deadline)
	textBody := buildReminderText(toName, notice, deadline)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReminderText(name string, notice *domain.Notice, deadline string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe response deadline for IRS notice %s (%s) is %s.\n", name, notice.NoticeNumber, notice.NoticeType, deadline)
	if notice.AmountOwed != nil {
		fmt.Fprintf(&b, "Amount owed: $%.2f\n", *notice.AmountOwed)
	}
	if notice.AISummary != "" {
		fmt.Fprintf(&b, "\nSummary: %s\n", notice.AISummary)
	}
	b.WriteString("\nFirmdesk")
	return b.String()
}

func buildReminderHTML(name string, notice *domain.Notice, deadline string) string {
	amount := ""
	if notice.AmountOwed != nil {
		amount = fmt.Sprintf(`<p><strong>Amount owed:</strong> $%.2f</p>`, *notice.AmountOwed)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">IRS notice deadline approaching</h2>
  <p>Hi %s,</p>
  <p>The response deadline for notice <strong>%s</strong> (%s) is <strong>%s</strong>.</p>
  %s
  <p style="color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Firmdesk - CPA Operations</p>
</body>
</html>`, name, notice.NoticeNumber, notice.NoticeType, deadline, amount, notice.AISummary)
}
