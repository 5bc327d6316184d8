package notify

import (
	"context"
	"log/slog"
)

// MockNotifier implements the Notifier interface by logging alerts.
// It is the default when no Resend API key is configured.
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Publish(ctx context.Context, subject, message string) error {
	slog.Info("alert published", "subject", subject, "message", message)
	return nil
}
