package nav

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Navigation targets the bar decides on.
const (
	homeURL    = "/"
	mapURL     = "/map"
	profileURL = "/profile"
	signInURL  = "/?signin=1"
)

// Action is the outcome of a profile-tab activation.
type Action int

const (
	ActionNone Action = iota
	// ActionProfile navigated to the profile page.
	ActionProfile
	// ActionRevealModal revealed the host page's auth modal.
	ActionRevealModal
	// ActionOpenModal invoked the host-registered modal opener.
	ActionOpenModal
	// ActionSignInRedirect navigated home with the sign-in flag set.
	ActionSignInRedirect
)

func (a Action) String() string {
	switch a {
	case ActionProfile:
		return "profile"
	case ActionRevealModal:
		return "reveal-modal"
	case ActionOpenModal:
		return "open-modal"
	case ActionSignInRedirect:
		return "signin-redirect"
	default:
		return "none"
	}
}

// Target returns the navigation target for the actions that navigate, and ""
// for the ones that stay on the page.
func (a Action) Target() string {
	switch a {
	case ActionProfile:
		return profileURL
	case ActionSignInRedirect:
		return signInURL
	default:
		return ""
	}
}

// ActivateProfile runs the profile tab's activation chain and reports which
// branch fired. Exactly one does, first match wins: signed in goes straight
// to the profile page; otherwise the host's own modal is revealed when it has
// one; otherwise a registered opener is invoked; otherwise the user lands on
// the home page with the sign-in flag.
func (b *Bar) ActivateProfile(ctx context.Context) Action {
	ctx, span := tracer.Start(ctx, "nav.ActivateProfile")
	defer span.End()

	action := b.resolveProfileAction(ctx)

	if target := action.Target(); target != "" && b.cfg.Navigate != nil {
		b.cfg.Navigate(target)
	}

	span.SetAttributes(attribute.String("action", action.String()))
	actionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action.String())))
	b.logger.Debug("profile tab activated", zap.String("action", action.String()))
	return action
}

func (b *Bar) resolveProfileAction(ctx context.Context) Action {
	if b.Snapshot().SignedIn {
		return ActionProfile
	}
	if b.cfg.RevealModal != nil && b.cfg.RevealModal(ctx) {
		return ActionRevealModal
	}
	if b.cfg.OpenModal != nil {
		b.cfg.OpenModal(ctx)
		return ActionOpenModal
	}
	return ActionSignInRedirect
}
