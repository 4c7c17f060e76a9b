// Package cli provides the cobra command tree of papis-search-provider.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/config/file"
	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/core/services"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// version is set at build time via Execute.
var version = "dev"

var (
	configDir string
	verbose   bool
)

// settingsService is created from --config unless set beforehand (tests).
var settingsService driving.SettingsService

// settings holds the configuration loaded before every command.
var settings *domain.Settings

var rootCmd = &cobra.Command{
	Use:   "papis-search-provider",
	Short: "GNOME Shell search provider for papis libraries",
	Long: `papis-search-provider makes the documents of papis libraries searchable
from the GNOME Shell overview. It answers the org.gnome.Shell.SearchProvider2
D-Bus interface and opens the first file of a document when a result is
activated.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default $XDG_CONFIG_HOME/papis-search-provider)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command until it finishes or a signal arrives.
func Execute(v string) error {
	if v != "" {
		version = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer logger.Sync() //nolint:errcheck
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings reads the configuration and applies the logging flags.
func loadSettings(_ *cobra.Command, _ []string) error {
	if settingsService == nil {
		svc, err := newSettingsService(configDir)
		if err != nil {
			return err
		}
		settingsService = svc
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if verbose {
		s.Verbose = true
	}
	logger.SetVerbose(s.Verbose)

	settings = s
	logger.Debug("Libraries: %v", s.Libraries)
	return nil
}

func newSettingsService(dir string) (*services.SettingsService, error) {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("getting cache directory: %w", err)
	}

	return services.NewSettingsService(store, home, cache), nil
}
