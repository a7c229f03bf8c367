package dict

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// selfWriteGrace is how long after our own save a file event is attributed
// to that save instead of an external editor.
const selfWriteGrace = 500 * time.Millisecond

// Watch reloads the user dictionary when another process (the settings GUI)
// rewrites the file. It blocks until ctx is cancelled. The watch is placed
// on the parent directory so atomic rename-style saves are still observed.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create dictionary watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(m.userPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != m.userPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			m.reloadExternal()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if m.logger != nil {
				m.logger.Warn("dictionary watcher error", "error", err.Error())
			}
		}
	}
}

// reloadExternal re-reads user state unless the event matches our own
// write-through save.
func (m *Manager) reloadExternal() {
	m.mu.Lock()
	savedAt := m.savedAt
	m.mu.Unlock()

	if savedAt > 0 && time.Since(time.Unix(0, savedAt)) < selfWriteGrace {
		return
	}

	if m.logger != nil {
		m.logger.Info("user dictionary changed externally, reloading", "path", m.userPath)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadUserLocked()
}
