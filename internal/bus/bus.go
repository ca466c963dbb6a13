// Package bus is the in-process channel between the host page's event
// producers (fullscreen toggles, sign-in changes relayed over HTTP or
// WebSocket) and the components that react to them.
package bus

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FullscreenEvent reports the host page entering or leaving fullscreen.
type FullscreenEvent struct {
	Active bool
}

// AuthChangedEvent reports that one of the observed sign-in sources may have
// changed. It carries no payload; subscribers re-read the sources themselves.
type AuthChangedEvent struct{}

type Bus struct {
	mu          sync.RWMutex
	fullscreen  map[string]func(FullscreenEvent)
	authChanged map[string]func(AuthChangedEvent)
	logger      *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		fullscreen:  make(map[string]func(FullscreenEvent)),
		authChanged: make(map[string]func(AuthChangedEvent)),
		logger:      logger,
	}
}

// SubscribeFullscreen registers fn for fullscreen events. The returned cancel
// removes it and may be called more than once.
func (b *Bus) SubscribeFullscreen(fn func(FullscreenEvent)) (cancel func()) {
	id := uuid.NewString()
	b.mu.Lock()
	b.fullscreen[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.fullscreen, id)
		b.mu.Unlock()
	}
}

// SubscribeAuthChanged registers fn for auth-changed events. The returned
// cancel removes it and may be called more than once.
func (b *Bus) SubscribeAuthChanged(fn func(AuthChangedEvent)) (cancel func()) {
	id := uuid.NewString()
	b.mu.Lock()
	b.authChanged[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.authChanged, id)
		b.mu.Unlock()
	}
}

// PublishFullscreen delivers evt to every fullscreen subscriber. Delivery is
// synchronous and in publisher order; handlers run without the bus lock held,
// so they may subscribe or cancel freely.
func (b *Bus) PublishFullscreen(evt FullscreenEvent) {
	b.mu.RLock()
	handlers := make([]func(FullscreenEvent), 0, len(b.fullscreen))
	for _, fn := range b.fullscreen {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	b.logger.Debug("publishing fullscreen event",
		zap.Bool("active", evt.Active),
		zap.Int("subscribers", len(handlers)))
	for _, fn := range handlers {
		fn(evt)
	}
}

// PublishAuthChanged delivers an auth-changed notification to every
// subscriber.
func (b *Bus) PublishAuthChanged() {
	b.mu.RLock()
	handlers := make([]func(AuthChangedEvent), 0, len(b.authChanged))
	for _, fn := range b.authChanged {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	b.logger.Debug("publishing auth-changed event", zap.Int("subscribers", len(handlers)))
	for _, fn := range handlers {
		fn(AuthChangedEvent{})
	}
}
