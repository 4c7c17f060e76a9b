package domain

import "path/filepath"

// DefaultBusName is the well-known bus name of the search provider.
const DefaultBusName = "org.gnome.papis.SearchProvider"

// Settings holds the application configuration.
type Settings struct {
	// Libraries are the papis library directories to search.
	Libraries []string

	// BusName is the well-known session bus name to own.
	BusName string

	// IndexDir holds the persistent document index.
	IndexDir string

	// OpenerCommand overrides the platform default file handler.
	// Empty means xdg-open (or the platform equivalent).
	OpenerCommand string

	// Watch enables reindexing when library folders change.
	Watch bool

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultSettings returns settings with defaults for the given
// home and cache directories.
func DefaultSettings(home, cacheDir string) Settings {
	return Settings{
		Libraries: []string{filepath.Join(home, "Documents", "papers")},
		BusName:   DefaultBusName,
		IndexDir:  filepath.Join(cacheDir, "papis-search-provider"),
		Watch:     true,
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if len(s.Libraries) == 0 {
		return ErrInvalidInput
	}
	if s.BusName == "" {
		return ErrInvalidInput
	}
	return nil
}
