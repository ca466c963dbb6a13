package localstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Event reports a mutation of one stored key.
type Event struct {
	Key string
}

const watchBuffer = 16

// Watch emits an Event for every create, write, remove or rename under the
// store directory until ctx is cancelled. The returned channel is closed when
// the watcher stops. Events are dropped, not blocked on, when the reader lags.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("localstore: watcher: %w", err)
	}
	if err := w.Add(s.BasePath()); err != nil {
		w.Close()
		return nil, fmt.Errorf("localstore: watch %s: %w", s.BasePath(), err)
	}

	ch := make(chan Event, watchBuffer)
	go func() {
		defer close(ch)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-w.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				key := filepath.Base(evt.Name)
				if strings.HasPrefix(key, ".") {
					continue
				}
				s.Invalidate(key)
				select {
				case ch <- Event{Key: key}:
				default:
					s.logger.Debug("store watch event dropped", zap.String("key", key))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("store watcher error", zap.Error(err))
			}
		}
	}()

	return ch, nil
}
