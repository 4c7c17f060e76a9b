package papis

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.LibraryWatcher = (*Watcher)(nil)

// Watcher reports changes to papis libraries.
// fsnotify is not recursive, so every directory below the library roots is
// added individually and new directories are picked up as they appear.
type Watcher struct {
	libraries []string

	mu      sync.Mutex
	fw      *fsnotify.Watcher
	watched map[string]bool
}

// NewWatcher creates a watcher for the given library directories.
func NewWatcher(libraries ...string) *Watcher {
	return &Watcher{
		libraries: libraries,
		watched:   make(map[string]bool),
	}
}

// Watch starts watching the libraries until ctx is cancelled.
// Both returned channels are closed when watching stops.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.LibraryChange, <-chan error, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}

	w.mu.Lock()
	w.fw = fw
	w.mu.Unlock()

	for _, lib := range w.libraries {
		if err := w.addTree(lib); err != nil {
			_ = w.Close()
			return nil, nil, fmt.Errorf("watch library %s: %w", lib, err)
		}
	}

	changes := make(chan domain.LibraryChange, 64)
	errs := make(chan error, 8)

	go func() {
		defer close(changes)
		defer close(errs)
		defer func() { _ = w.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				change := w.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				default:
					logger.Warn("Dropped watcher error: %v", err)
				}
			}
		}
	}()

	return changes, errs, nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fw == nil {
		return nil
	}
	err := w.fw.Close()
	w.fw = nil
	w.watched = make(map[string]bool)
	return err
}

// handleFsEvent converts an fsnotify event into a library change.
// Only info.yaml files and directories are relevant; attached files are
// referenced from info.yaml and do not change the index on their own.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.LibraryChange {
	if isHidden(filepath.Base(event.Name)) {
		return nil
	}

	isInfo := filepath.Base(event.Name) == InfoFile

	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				logger.Warn("Could not watch %s: %v", event.Name, err)
			}
			return &domain.LibraryChange{Path: event.Name, Type: domain.ChangeCreated}
		}
		if isInfo {
			return &domain.LibraryChange{Path: event.Name, Type: domain.ChangeCreated}
		}
	case event.Has(fsnotify.Write):
		if isInfo {
			return &domain.LibraryChange{Path: event.Name, Type: domain.ChangeUpdated}
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if isInfo || w.forget(event.Name) {
			return &domain.LibraryChange{Path: event.Name, Type: domain.ChangeDeleted}
		}
	}

	return nil
}

// addTree watches root and every non-hidden directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.add(path)
	})
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[dir] {
		return nil
	}
	if w.fw != nil {
		if err := w.fw.Add(dir); err != nil {
			return err
		}
	}
	w.watched[dir] = true
	logger.Debug("Watching %s", dir)
	return nil
}

// forget drops a removed directory and reports whether it was watched.
// fsnotify removes the watch itself.
func (w *Watcher) forget(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watched[dir] {
		return false
	}
	delete(w.watched, dir)
	return true
}
