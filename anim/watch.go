package anim

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// LibraryWatcher reloads an animation library whenever its source file
// changes. Reloaded holds the path of each successful reload; reload
// failures keep the previous animations and surface on Errors.
type LibraryWatcher struct {
	watcher  *fsnotify.Watcher
	loader   *Loader
	library  *Library
	logger   *slog.Logger
	Reloaded chan string
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
}

// Watch loads the library file and starts watching its directory for
// changes to it.
func (l *Loader) Watch(path string, logger *slog.Logger) (*Library, *LibraryWatcher, error) {
	library, err := l.Load(path)
	if err != nil {
		return nil, nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()

		return nil, nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	watcher := &LibraryWatcher{
		watcher:  fw,
		loader:   l,
		library:  library,
		logger:   logger,
		Reloaded: make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}

	go watcher.run(path)

	return library, watcher, nil
}

// Close stops the watcher. Reloaded and Errors stay open so an in-flight
// reload can never send on a closed channel; they simply go quiet.
func (w *LibraryWatcher) Close() error {
	var err error

	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})

	return err
}

func (w *LibraryWatcher) run(path string) {
	var lastReload time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if !isLibraryFile(event.Name) || filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}

			now := time.Now()
			if now.Sub(lastReload) < reloadDebounce {
				continue
			}

			lastReload = now

			w.reload(path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *LibraryWatcher) reload(path string) {
	fresh, err := w.loader.Load(path)
	if err != nil {
		w.logger.Warn("animation library reload failed", "path", path, "error", err)

		select {
		case w.Errors <- err:
		default:
		}

		return
	}

	w.library.replace(fresh)
	w.logger.Debug("animation library reloaded", "path", path, "animations", len(fresh.animations))

	select {
	case w.Reloaded <- path:
	default:
	}
}

func isLibraryFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return ext == ".yaml" || ext == ".yml"
}
