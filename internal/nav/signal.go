package nav

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Account is the host-owned current-user object the identity probe reads.
// The bar never writes it.
type Account struct {
	DisplayName string
	Email       string
}

// IdentitySource exposes the host's current-user object, or nil when nobody
// is signed in.
type IdentitySource interface {
	Account(ctx context.Context) *Account
}

// PresenceSource reports whether the host page is currently showing its own
// signed-in indicator.
type PresenceSource interface {
	Present(ctx context.Context) bool
}

// CredentialStore exposes the values the host persists across sessions.
type CredentialStore interface {
	Token(ctx context.Context) string
	UserName(ctx context.Context) string
}

// IdentityNotifier is an optional extension of IdentitySource: sources that
// implement it push change notifications instead of relying on the bar's
// polling fallback.
type IdentityNotifier interface {
	OnChange(fn func()) (cancel func())
}

// Signal is one probe's contribution to the combined auth state.
type Signal struct {
	SignedIn bool
	Name     string
}

type probe func(ctx context.Context) Signal

// identityProbe reads the current-user object. The name is the account's
// display name, falling back to the local part of its email address.
func identityProbe(src IdentitySource) probe {
	return func(ctx context.Context) Signal {
		if src == nil {
			return Signal{}
		}
		acct := src.Account(ctx)
		if acct == nil {
			return Signal{}
		}
		name := acct.DisplayName
		if name == "" {
			name = emailLocalPart(acct.Email)
		}
		return Signal{SignedIn: true, Name: name}
	}
}

// presenceProbe reads the host page's signed-in indicator. It contributes no
// name.
func presenceProbe(src PresenceSource) probe {
	return func(ctx context.Context) Signal {
		if src == nil {
			return Signal{}
		}
		return Signal{SignedIn: src.Present(ctx)}
	}
}

// credentialProbe reads the persisted token and user name. The name is
// consulted even when the token is absent; it sits last in the name
// precedence chain.
func credentialProbe(store CredentialStore) probe {
	return func(ctx context.Context) Signal {
		if store == nil {
			return Signal{}
		}
		return Signal{
			SignedIn: store.Token(ctx) != "",
			Name:     store.UserName(ctx),
		}
	}
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// fallbackDisplayName is used when every probe agrees the user is signed in
// but none of them can name them.
const fallbackDisplayName = "You"

// resolver folds the ordered probe signals into one. Probes are independent,
// so they run concurrently; precedence is preserved by combining results in
// probe order. Concurrent resolves collapse into a single pass.
type resolver struct {
	probes []probe
	group  singleflight.Group
}

func newResolver(identity IdentitySource, presence PresenceSource, credentials CredentialStore) *resolver {
	return &resolver{
		probes: []probe{
			identityProbe(identity),
			presenceProbe(presence),
			credentialProbe(credentials),
		},
	}
}

// resolve returns the combined signal: signed-in is the OR of every probe,
// the name is the first non-empty one in probe order, with "You" standing in
// when signed in and nameless.
func (r *resolver) resolve(ctx context.Context) Signal {
	v, _, _ := r.group.Do("auth", func() (any, error) {
		signals := make([]Signal, len(r.probes))
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range r.probes {
			g.Go(func() error {
				signals[i] = p(gctx)
				return nil
			})
		}
		_ = g.Wait()

		var combined Signal
		for _, s := range signals {
			combined.SignedIn = combined.SignedIn || s.SignedIn
			if combined.Name == "" {
				combined.Name = s.Name
			}
		}
		if combined.SignedIn && combined.Name == "" {
			combined.Name = fallbackDisplayName
		}
		return combined, nil
	})
	return v.(Signal)
}
