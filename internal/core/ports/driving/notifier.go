package driving

import "context"

// Notifier sends best-effort desktop notifications.
type Notifier interface {
	// Notify shows message with an optional body. Error notifications
	// persist until dismissed. Delivery failures are logged and dropped.
	Notify(ctx context.Context, message, body string, isError bool)
}
