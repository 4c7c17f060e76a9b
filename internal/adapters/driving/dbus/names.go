package dbus

import (
	"strings"

	godbus "github.com/godbus/dbus/v5"
)

// InterfaceName is the GNOME Shell search provider interface.
const InterfaceName = "org.gnome.Shell.SearchProvider2"

// ObjectPath derives the object path for a well-known bus name,
// e.g. org.gnome.papis.SearchProvider becomes /org/gnome/papis/SearchProvider.
func ObjectPath(busName string) godbus.ObjectPath {
	return godbus.ObjectPath("/" + strings.ReplaceAll(busName, ".", "/"))
}
