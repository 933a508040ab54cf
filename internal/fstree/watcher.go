package fstree

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"

	"github.com/bonilindsley/rcpilot/internal/log"
)

// Watcher reports directories whose contents changed on disk. The TUI
// adds a directory when it expands and reloads the matching tree node
// when the directory shows up on Changes.
type Watcher struct {
	fw      *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts a watcher. Callers must Close it.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "failed to create filesystem watcher")
	}
	w := &Watcher{
		fw:      fw,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	logger := log.WithComponent("fstree.watcher")
	defer close(w.changes)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// The event names the changed entry; the node to
			// reload is its containing directory.
			dir := filepath.Dir(event.Name)
			select {
			case w.changes <- dir:
			default:
				// Drop on backpressure, a reload is already due.
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// Watch starts watching a directory. Watching the same directory twice
// is harmless.
func (w *Watcher) Watch(dir string) error {
	if err := w.fw.Add(dir); err != nil {
		return eris.Wrapf(err, "failed to watch %s", dir)
	}
	return nil
}

// Unwatch stops watching a directory. Unknown directories are a no-op.
func (w *Watcher) Unwatch(dir string) {
	_ = w.fw.Remove(dir)
}

// Changes delivers the paths of directories whose contents changed.
// The channel closes when the watcher shuts down.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close shuts the watcher down. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}
