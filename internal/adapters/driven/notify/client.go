// Package notify sends desktop notifications over D-Bus.
package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
)

// Well-known names of the freedesktop notification service.
const (
	Destination = "org.freedesktop.Notifications"
	ObjectPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	Interface   = "org.freedesktop.Notifications"
)

// Ensure Client implements the interface.
var _ driven.NotificationService = (*Client)(nil)

// caller is the part of dbus.BusObject the client uses.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Client calls org.freedesktop.Notifications.Notify.
type Client struct {
	obj caller
}

// NewClient creates a client on an established session bus connection.
func NewClient(conn *dbus.Conn) *Client {
	return &Client{obj: conn.Object(Destination, ObjectPath)}
}

// Notify shows n and returns the server-assigned notification id.
func (c *Client) Notify(ctx context.Context, n domain.Notification) (uint32, error) {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := map[string]dbus.Variant{
		"transient": dbus.MakeVariant(n.Transient),
	}

	call := c.obj.CallWithContext(ctx, Interface+".Notify", 0,
		n.AppName, n.ReplacesID, n.Icon, n.Summary, n.Body, actions, hints, n.ExpireTimeout)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: reading reply: %w", err)
	}
	return id, nil
}
