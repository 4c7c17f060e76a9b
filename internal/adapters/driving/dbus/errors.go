// Package dbus exports the GNOME Shell search provider on the session bus.
package dbus

import "errors"

var (
	// ErrMissingSearchProvider is returned when the search provider is not provided.
	ErrMissingSearchProvider = errors.New("dbus: search provider is required")

	// ErrNameTaken is returned when another process owns the bus name.
	ErrNameTaken = errors.New("dbus: bus name already taken")
)
