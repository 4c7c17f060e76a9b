package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLibraries     = "libraries"
	keyBusName       = "dbus.bus_name"
	keyIndexDir      = "index.dir"
	keyOpenerCommand = "opener.command"
	keyWatchEnabled  = "watch.enabled"
	keyLogVerbose    = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	home        string
	defaults    domain.Settings
}

// NewSettingsService creates a new settings service.
// Defaults and "~" expansion are derived from home and cacheDir.
func NewSettingsService(configStore driven.ConfigStore, home, cacheDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		home:        home,
		defaults:    domain.DefaultSettings(home, cacheDir),
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	libraries := s.configStore.GetStringSlice(keyLibraries)
	if len(libraries) == 0 {
		libraries = s.defaults.Libraries
	}
	expanded := make([]string, len(libraries))
	for i, lib := range libraries {
		expanded[i] = s.expandHome(lib)
	}

	settings := &domain.Settings{
		Libraries:     expanded,
		BusName:       s.getString(keyBusName, s.defaults.BusName),
		IndexDir:      s.expandHome(s.getString(keyIndexDir, s.defaults.IndexDir)),
		OpenerCommand: s.configStore.GetString(keyOpenerCommand),
		Watch:         s.getBool(keyWatchEnabled, s.defaults.Watch),
		Verbose:       s.getBool(keyLogVerbose, s.defaults.Verbose),
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyLibraries, settings.Libraries},
		{keyBusName, settings.BusName},
		{keyIndexDir, settings.IndexDir},
		{keyOpenerCommand, settings.OpenerCommand},
		{keyWatchEnabled, settings.Watch},
		{keyLogVerbose, settings.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// getString returns a string setting or the default if not set.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getBool returns a bool setting or the default if not set.
func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// expandHome replaces a leading "~" with the home directory.
func (s *SettingsService) expandHome(path string) string {
	if path == "~" {
		return s.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(s.home, path[2:])
	}
	return path
}
