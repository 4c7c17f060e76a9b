// Package file stores the provider configuration as a TOML file.
//
// Keys are addressed with dots ("dbus.bus_name") and written back as
// nested tables, so hand-edited files keep their layout.
package file
