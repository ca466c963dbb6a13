package nav

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/bus"
)

// fakeIdentity is a host current-user source that also implements the change
// notifier extension.
type fakeIdentity struct {
	mu            sync.Mutex
	acct          *Account
	registrations int
	cancelled     int
	listeners     map[int]func()
	nextID        int
}

func (f *fakeIdentity) Account(context.Context) *Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acct
}

func (f *fakeIdentity) OnChange(fn func()) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations++
	if f.listeners == nil {
		f.listeners = make(map[int]func())
	}
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.listeners[id]; ok {
			delete(f.listeners, id)
			f.cancelled++
		}
	}
}

func (f *fakeIdentity) set(a *Account) {
	f.mu.Lock()
	f.acct = a
	fns := make([]func(), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type fakePresence struct {
	mu      sync.Mutex
	present bool
}

func (f *fakePresence) Present(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.present
}

func (f *fakePresence) set(v bool) {
	f.mu.Lock()
	f.present = v
	f.mu.Unlock()
}

type fakeCredentials struct {
	mu         sync.Mutex
	token      string
	userName   string
	tokenReads int
}

func (f *fakeCredentials) Token(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenReads++
	return f.token
}

func (f *fakeCredentials) UserName(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userName
}

func (f *fakeCredentials) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenReads
}

// newTestBar builds an unmounted bar so signal folding can be exercised
// without singleton bookkeeping or polling.
func newTestBar(t *testing.T, cfg Config) *Bar {
	t.Helper()
	if cfg.Bus == nil {
		cfg.Bus = bus.New(zap.NewNop())
	}
	b, err := New(cfg)
	require.NoError(t, err)
	return b
}

func TestRefreshAuthCombinesSignals(t *testing.T) {
	tests := []struct {
		name         string
		identity     *Account
		presence     bool
		token        string
		userName     string
		wantSignedIn bool
		wantName     string
	}{
		{
			name: "all silent",
		},
		{
			name:         "identity with display name",
			identity:     &Account{DisplayName: "Roadrunner"},
			wantSignedIn: true,
			wantName:     "Roadrunner",
		},
		{
			name:         "identity falls back to email local part",
			identity:     &Account{Email: "jsmith@example.com"},
			wantSignedIn: true,
			wantName:     "jsmith",
		},
		{
			name:         "presence alone has no name",
			presence:     true,
			wantSignedIn: true,
			wantName:     "You",
		},
		{
			name:         "token alone has no name",
			token:        "tok-1",
			wantSignedIn: true,
			wantName:     "You",
		},
		{
			name:         "token with stored user name",
			token:        "tok-1",
			userName:     "stored",
			wantSignedIn: true,
			wantName:     "stored",
		},
		{
			name:         "identity name outranks stored name",
			identity:     &Account{DisplayName: "Ada"},
			token:        "tok-1",
			userName:     "stored",
			wantSignedIn: true,
			wantName:     "Ada",
		},
		{
			name:         "nameless identity defers to stored name",
			identity:     &Account{},
			userName:     "stored",
			wantSignedIn: true,
			wantName:     "stored",
		},
		{
			name:         "stored name applies without a token",
			presence:     true,
			userName:     "stored",
			wantSignedIn: true,
			wantName:     "stored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBar(t, Config{
				Identity:    &fakeIdentity{acct: tt.identity},
				Presence:    &fakePresence{present: tt.presence},
				Credentials: &fakeCredentials{token: tt.token, userName: tt.userName},
			})

			st := b.RefreshAuth(context.Background())

			assert.Equal(t, tt.wantSignedIn, st.SignedIn)
			if tt.wantSignedIn {
				assert.Equal(t, tt.wantName, st.DisplayName)
			} else {
				assert.Empty(t, st.DisplayName)
			}
		})
	}
}

func TestRefreshAuthSurvivesNilSources(t *testing.T) {
	b := newTestBar(t, Config{})

	st := b.RefreshAuth(context.Background())

	assert.False(t, st.SignedIn)
	assert.Empty(t, st.DisplayName)
}

func TestRefreshAuthClearsNameOnSignOut(t *testing.T) {
	creds := &fakeCredentials{token: "tok", userName: "dana"}
	b := newTestBar(t, Config{Credentials: creds})

	st := b.RefreshAuth(context.Background())
	require.True(t, st.SignedIn)
	require.Equal(t, "dana", st.DisplayName)

	creds.mu.Lock()
	creds.token = ""
	creds.mu.Unlock()

	st = b.RefreshAuth(context.Background())
	assert.False(t, st.SignedIn)
	assert.Empty(t, st.DisplayName)
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "jsmith", emailLocalPart("jsmith@example.com"))
	assert.Equal(t, "no-at-sign", emailLocalPart("no-at-sign"))
	assert.Equal(t, "", emailLocalPart("@example.com"))
	assert.Equal(t, "", emailLocalPart(""))
}
