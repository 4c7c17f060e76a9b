package driving

import "github.com/jnphilipp/papis-search-provider/internal/core/domain"

// SettingsService provides application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error
}
