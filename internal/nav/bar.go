// Package nav implements the bottom navigation bar: three fixed tabs (home,
// map, profile) whose profile tab mirrors the sign-in state the host
// application exposes through a handful of independent signals. The bar is a
// singleton per process, mounted once and rendered into every page.
package nav

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/bus"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultPollChecks   = 11
)

// ErrMissingBus is returned by Init and New when no event bus is supplied.
var ErrMissingBus = errors.New("nav: event bus is required")

// Config wires the bar to its host. Bus is required; every signal source and
// hook is optional and nil-safe.
type Config struct {
	Bus    *bus.Bus
	Logger *zap.Logger

	// The three sign-in signals, in precedence order for naming.
	Identity    IdentitySource
	Presence    PresenceSource
	Credentials CredentialStore

	// RevealModal shows the host page's own auth modal and reports whether
	// one exists. OpenModal is a host-registered opener; when set, activating
	// the profile tab while signed out invokes it. Navigate observes the
	// navigations the bar decides on.
	RevealModal func(ctx context.Context) bool
	OpenModal   func(ctx context.Context)
	Navigate    func(url string)

	// Cadence of the polling fallback. Zero values mean 500ms and 11 checks,
	// counting the immediate check performed at mount.
	PollInterval time.Duration
	PollChecks   int
}

// Bar is the bottom navigation bar.
type Bar struct {
	cfg    Config
	logger *zap.Logger
	res    *resolver

	mu          sync.Mutex
	state       State
	destroyed   bool
	cancelPoll  context.CancelFunc
	unsubscribe []func()
}

var (
	regMu  sync.Mutex
	active *Bar
)

// New builds an unmounted bar. It performs no side effects: no subscriptions,
// no polling, no singleton registration. Most callers want Init instead.
func New(cfg Config) (*Bar, error) {
	if cfg.Bus == nil {
		return nil, ErrMissingBus
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.PollChecks <= 0 {
		cfg.PollChecks = defaultPollChecks
	}
	return &Bar{
		cfg:    cfg,
		logger: cfg.Logger,
		res:    newResolver(cfg.Identity, cfg.Presence, cfg.Credentials),
		state:  State{CurrentPage: PageHome, Visible: true},
	}, nil
}

// Init mounts the bar exactly once and returns it. While a bar is mounted,
// further Init calls return the live instance without repeating any mount
// side effects; after Destroy, Init mounts a fresh one.
func Init(cfg Config) (*Bar, error) {
	regMu.Lock()
	defer regMu.Unlock()
	if active != nil {
		return active, nil
	}
	b, err := New(cfg)
	if err != nil {
		return nil, err
	}
	b.mount()
	active = b
	return b, nil
}

// Current returns the mounted bar, if any.
func Current() (*Bar, bool) {
	regMu.Lock()
	defer regMu.Unlock()
	if active == nil {
		return nil, false
	}
	return active, true
}

// mount performs the one-time side effects: the initial auth check, the event
// subscriptions, the optional identity notifier hookup, and the polling
// fallback.
func (b *Bar) mount() {
	b.RefreshAuth(context.Background())

	subs := []func(){
		b.cfg.Bus.SubscribeFullscreen(func(evt bus.FullscreenEvent) {
			b.SetVisible(!evt.Active)
		}),
		b.cfg.Bus.SubscribeAuthChanged(func(bus.AuthChangedEvent) {
			b.RefreshAuth(context.Background())
		}),
	}
	if notifier, ok := b.cfg.Identity.(IdentityNotifier); ok {
		subs = append(subs, notifier.OnChange(func() {
			b.RefreshAuth(context.Background())
		}))
	}

	pollCtx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.unsubscribe = subs
	b.cancelPoll = cancel
	b.mu.Unlock()

	go b.poll(pollCtx)

	mountsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("phase", "mount")))
	b.logger.Info("bottom nav mounted",
		zap.Duration("poll_interval", b.cfg.PollInterval),
		zap.Int("poll_checks", b.cfg.PollChecks))
}

// Destroy unmounts the bar: the poller stops, every subscription is removed,
// and the singleton slot is cleared so layouts stop rendering it. Calling it
// again is a no-op.
func (b *Bar) Destroy() {
	regMu.Lock()
	if active == b {
		active = nil
	}
	regMu.Unlock()

	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	cancel := b.cancelPoll
	subs := b.unsubscribe
	b.cancelPoll = nil
	b.unsubscribe = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, unsub := range subs {
		unsub()
	}

	mountsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("phase", "unmount")))
	b.logger.Info("bottom nav destroyed")
}

// Alive reports whether the bar has not been destroyed. Handlers holding an
// injected *Bar use it to skip rendering after teardown.
func (b *Bar) Alive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.destroyed
}

// Snapshot returns a copy of the current state.
func (b *Bar) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SetPath updates the active tab from a request path.
func (b *Bar) SetPath(path string) {
	page := Detect(path)
	b.mu.Lock()
	b.state.CurrentPage = page
	b.mu.Unlock()
}

// Show makes the bar visible.
func (b *Bar) Show() { b.SetVisible(true) }

// Hide removes the bar from view without unmounting it.
func (b *Bar) Hide() { b.SetVisible(false) }

// Toggle flips visibility and reports the new value.
func (b *Bar) Toggle() bool {
	b.mu.Lock()
	b.state.Visible = !b.state.Visible
	v := b.state.Visible
	b.mu.Unlock()

	visibilityTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("visible", v)))
	return v
}

// SetVisible sets visibility outright. The fullscreen subscription feeds it:
// entering fullscreen hides the bar, leaving restores it.
func (b *Bar) SetVisible(v bool) {
	b.mu.Lock()
	changed := b.state.Visible != v
	b.state.Visible = v
	b.mu.Unlock()

	if changed {
		visibilityTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("visible", v)))
		b.logger.Debug("bottom nav visibility changed", zap.Bool("visible", v))
	}
}

// Visible reports whether the bar is currently shown.
func (b *Bar) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Visible
}

// RefreshAuth re-reads every sign-in signal and folds the result into the
// state. It is idempotent and safe to call from any goroutine; the last
// writer wins.
func (b *Bar) RefreshAuth(ctx context.Context) State {
	ctx, span := tracer.Start(ctx, "nav.RefreshAuth")
	defer span.End()

	sig := b.res.resolve(ctx)

	b.mu.Lock()
	b.state.SignedIn = sig.SignedIn
	if sig.SignedIn {
		b.state.DisplayName = sig.Name
	} else {
		b.state.DisplayName = ""
	}
	st := b.state
	b.mu.Unlock()

	span.SetAttributes(attribute.Bool("signed_in", st.SignedIn))
	refreshesTotal.Add(ctx, 1)
	return st
}
