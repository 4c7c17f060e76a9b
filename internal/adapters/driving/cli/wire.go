package cli

import (
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/papis"
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/storage/memory"
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/storage/sqlite"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/core/services"
)

// openIndex opens the document index. Tests replace it.
var openIndex = func(noCache bool) (driven.DocumentIndex, error) {
	if noCache {
		return memory.NewIndex(), nil
	}
	return sqlite.NewStore(settings.IndexDir)
}

// newScanner creates the library scanner. Tests replace it.
var newScanner = func() driven.LibraryScanner {
	return papis.NewScanner(settings.Libraries...)
}

// newIndexService wires scanner, index and optional watcher.
func newIndexService(index driven.DocumentIndex, watch bool, notifier driving.Notifier) *services.IndexService {
	var watcher driven.LibraryWatcher
	if watch {
		watcher = papis.NewWatcher(settings.Libraries...)
	}
	return services.NewIndexService(newScanner(), index, watcher, notifier)
}
