package notify

import "context"

// Notifier defines the interface for publishing quality alerts.
// This abstraction allows swapping the mock with a real delivery channel
// without refactoring.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}
