package driven

import (
	"context"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// NotificationService delivers desktop notifications.
type NotificationService interface {
	// Notify shows n and returns the notification id assigned by the server.
	Notify(ctx context.Context, n domain.Notification) (uint32, error)
}
