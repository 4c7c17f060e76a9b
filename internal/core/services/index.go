package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// indexFailedMessage is the notification summary for failed reindexes.
const indexFailedMessage = "Indexing papis library failed"

// IndexService keeps the document index in sync with the library folders.
type IndexService struct {
	scanner  driven.LibraryScanner
	index    driven.DocumentIndex
	watcher  driven.LibraryWatcher
	notifier driving.Notifier
	limiter  *rate.Limiter
}

// NewIndexService creates a new index service.
// The watcher and notifier parameters are optional (can be nil).
// Reindexes triggered by changes are limited to one per second.
func NewIndexService(
	scanner driven.LibraryScanner,
	index driven.DocumentIndex,
	watcher driven.LibraryWatcher,
	notifier driving.Notifier,
) *IndexService {
	return &IndexService{
		scanner:  scanner,
		index:    index,
		watcher:  watcher,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// SetLimiter replaces the reindex rate limiter.
func (s *IndexService) SetLimiter(limiter *rate.Limiter) {
	s.limiter = limiter
}

// Reindex scans the libraries and replaces the index contents.
func (s *IndexService) Reindex(ctx context.Context) (int, error) {
	logger.Section("Reindex")

	n, err := s.reindex(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("Reindex cancelled: %v", err)
			return 0, err
		}
		logger.Warn("Reindex failed: %v", err)
		if s.notifier != nil {
			s.notifier.Notify(ctx, indexFailedMessage, err.Error(), true)
		}
		return 0, err
	}

	logger.Info("Indexed %d documents", n)
	return n, nil
}

func (s *IndexService) reindex(ctx context.Context) (int, error) {
	if s.scanner == nil || s.index == nil {
		return 0, domain.ErrLibraryUnavailable
	}

	docs, err := s.scanner.Scan(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan libraries: %w", err)
	}

	if err := s.index.Replace(ctx, docs); err != nil {
		return 0, fmt.Errorf("replace index: %w", err)
	}
	return len(docs), nil
}

// Watch reindexes on library changes until ctx is cancelled.
// Bursts of changes are coalesced into a single reindex.
func (s *IndexService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		logger.Debug("No library watcher configured")
		return nil
	}

	changes, errs, err := s.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch libraries: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Library change: %s %s", change.Type, change.Path)

			if err := s.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("Reindex throttle: %v", err)
				continue
			}
			drain(changes)

			// Errors are already reported by Reindex.
			_, _ = s.Reindex(ctx) //nolint:errcheck

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("Library watcher: %v", err)
		}
	}
}

// drain discards pending changes without blocking.
func drain(changes <-chan domain.LibraryChange) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
