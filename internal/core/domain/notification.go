package domain

// Notification defaults used for every message sent by the provider.
const (
	NotificationAppName = "papis"
	NotificationIcon    = "papis"

	// NotificationExpireTimeout is the auto-expiry of transient
	// notifications, in milliseconds.
	NotificationExpireTimeout int32 = 3000
)

// Notification is a request to the desktop notification service.
type Notification struct {
	AppName    string
	ReplacesID uint32
	Icon       string
	Summary    string
	Body       string
	Actions    []string

	// Transient notifications bypass the notification history.
	Transient bool

	// ExpireTimeout is in milliseconds. Zero means the notification
	// stays until dismissed.
	ExpireTimeout int32
}

// NewNotification builds a notification for message.
// Error notifications persist, all others are transient and expire.
func NewNotification(message, body string, isError bool) Notification {
	n := Notification{
		AppName:   NotificationAppName,
		Icon:      NotificationIcon,
		Summary:   message,
		Body:      body,
		Actions:   []string{},
		Transient: !isError,
	}
	if !isError {
		n.ExpireTimeout = NotificationExpireTimeout
	}
	return n
}
