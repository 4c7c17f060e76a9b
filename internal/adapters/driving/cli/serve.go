package cli

import (
	"context"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/notify"
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/opener"
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driving/dbus"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/core/services"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

var (
	serveBusName string
	serveNoCache bool
	serveNoWatch bool
)

// connectBus opens a private session bus connection. Tests replace it.
var connectBus = func() (*godbus.Conn, error) {
	return godbus.ConnectSessionBus()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search results on the session bus",
	Long: `Export the search provider on the D-Bus session bus, then index the
configured papis libraries in the background and keep the index up to date
while the libraries change. Until the first index completes, searches are
answered from the index of the previous run.

The command is normally started by D-Bus activation through the service file
written by "desktop-files".`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveBusName, "bus-name", "", "well-known bus name (default from config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "keep the index in memory instead of sqlite")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not watch the libraries for changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	busName := settings.BusName
	if serveBusName != "" {
		busName = serveBusName
	}

	conn, err := connectBus()
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	defer conn.Close()

	index, err := openIndex(serveNoCache)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close()

	notifier := services.NewNotifierService(notify.NewClient(conn))
	provider := services.NewSearchProviderService(index, opener.New(settings.OpenerCommand))

	server, err := dbus.NewServer(&dbus.Ports{SearchProvider: provider}, busName)
	if err != nil {
		return err
	}

	indexer := newIndexService(index, settings.Watch && !serveNoWatch, notifier)

	return serveWhileIndexing(ctx, indexer, notifier, func(ctx context.Context) error {
		return server.Run(ctx, conn)
	})
}

// serveWhileIndexing runs serve while the libraries are indexed in the
// background. It returns only after the indexing goroutine has stopped.
func serveWhileIndexing(
	ctx context.Context,
	indexer driving.IndexService,
	notifier driving.Notifier,
	serve func(context.Context) error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		indexLibraries(ctx, indexer, notifier)
	}()

	err := serve(ctx)
	cancel()
	<-done
	return err
}

// indexLibraries reindexes and then follows library changes until ctx ends.
// The provider answers from the existing index meanwhile.
func indexLibraries(ctx context.Context, indexer driving.IndexService, notifier driving.Notifier) {
	n, err := indexer.Reindex(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// The user has been notified; keep serving the previous index.
		logger.Warn("Serving stale index: %v", err)
	} else if settings.Verbose {
		notifier.Notify(ctx, "papis search provider started", fmt.Sprintf("%d documents indexed", n), false)
	}

	if err := indexer.Watch(ctx); err != nil {
		logger.Warn("Watching libraries: %v", err)
	}
}
