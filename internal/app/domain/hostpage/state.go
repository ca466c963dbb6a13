package hostpage

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tabrail/tabrail/internal/app/models"
	"github.com/tabrail/tabrail/internal/nav"
)

// State is the demo host's in-memory account state. It owns two of the three
// auth signals the bar probes, the identity object and the page's signed-in
// indicator; the third, the persisted token, lives in the key-value store.
type State struct {
	mu        sync.RWMutex
	user      *models.User
	indicator bool
	nextID    int
	listeners map[int]func()
}

func NewState() *State {
	return &State{listeners: make(map[int]func())}
}

// CurrentUser implements middleware.UserSource.
func (s *State) CurrentUser(_ context.Context) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Account implements nav.IdentitySource.
func (s *State) Account(_ context.Context) *nav.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	return &nav.Account{DisplayName: s.user.Name, Email: s.user.Email}
}

// Present implements nav.PresenceSource.
func (s *State) Present(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indicator
}

// OnChange implements nav.IdentityNotifier. Every account mutation calls the
// registered functions after releasing the state lock.
func (s *State) OnChange(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SignIn installs the identity object and turns the presence indicator on.
func (s *State) SignIn(name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(models.ErrValidation, "name is required")
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    strings.TrimSpace(email),
		IsActive: true,
	}

	s.mu.Lock()
	s.user = user
	s.indicator = true
	s.mu.Unlock()

	s.notify()
	return user, nil
}

// SignOut clears the identity object and the presence indicator.
func (s *State) SignOut() {
	s.mu.Lock()
	s.user = nil
	s.indicator = false
	s.mu.Unlock()

	s.notify()
}

// SetIndicator flips just the presence signal so the probe fallbacks can be
// exercised one at a time.
func (s *State) SetIndicator(on bool) {
	s.mu.Lock()
	s.indicator = on
	s.mu.Unlock()

	s.notify()
}

// SetUser installs or clears just the identity object.
func (s *State) SetUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.notify()
}

func (s *State) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
