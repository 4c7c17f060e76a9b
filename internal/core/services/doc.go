// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven
// ports (adapters).
//
//   - SearchProviderService: shell search requests to library queries
//   - NotifierService: best-effort desktop notifications
//   - IndexService: keeps the document index in sync with the libraries
//   - SettingsService: typed access to the config store
package services
