package services

import (
	"context"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// Ensure NotifierService implements the interface.
var _ driving.Notifier = (*NotifierService)(nil)

// NotifierService sends best-effort desktop notifications.
type NotifierService struct {
	service driven.NotificationService
}

// NewNotifierService creates a new notifier.
// The service parameter is optional (can be nil), messages are then only logged.
func NewNotifierService(service driven.NotificationService) *NotifierService {
	return &NotifierService{service: service}
}

// Notify shows message with an optional body.
// Failures are logged and otherwise dropped.
func (n *NotifierService) Notify(ctx context.Context, message, body string, isError bool) {
	notification := domain.NewNotification(message, body, isError)

	if n.service == nil {
		logger.Warn("Notification service unavailable, dropping message %q", message)
		return
	}

	if _, err := n.service.Notify(ctx, notification); err != nil {
		logger.Warn("Got error %v while trying to display message %q", err, message)
	}
}
