package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailNotifier delivers quality alerts to an ops mailbox via Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     string
}

func NewEmailNotifier(apiKey, from, to string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, subject, message string) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: subject,
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">%s</h2>
				<pre style="background: #f5f5f5; padding: 12px; border-radius: 8px; white-space: pre-wrap;">%s</pre>
			</div>
		`, subject, message),
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	slog.Info("alert email sent", "id", sent.Id, "to", n.to)
	return nil
}
