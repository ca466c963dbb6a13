package home

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HomePage is the landing content. signedIn only tweaks the copy; the real
// account state lives in the bottom bar and the header badge.
func HomePage(signedIn bool, notice string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return homeNode(signedIn, notice).Render(w)
	})
}

func homeNode(signedIn bool, notice string) g.Node {
	return h.Section(
		h.Class("space-y-6"),
		noticeBanner(notice),
		h.Div(
			h.Class("rounded-xl bg-white p-6 shadow-sm"),
			h.H1(h.Class("text-2xl font-semibold"), g.Text("Welcome to Tabrail")),
			h.P(
				h.Class("mt-2 text-gray-600"),
				g.Text("A three-tab bottom navigation bar rendered server-side. Use the tabs below to move between pages; the profile tab adapts to your sign-in state."),
			),
		),
		h.Div(
			h.Class("grid gap-4 sm:grid-cols-2"),
			featureCard("Map", "Open the map page and try the fullscreen toggle; the bar hides while fullscreen is active.", "/map"),
			featureCard("Profile", profileCardCopy(signedIn), "/profile"),
		),
	)
}

func profileCardCopy(signedIn bool) string {
	if signedIn {
		return "You are signed in, so the profile tab jumps straight to your profile."
	}
	return "While signed out the profile tab opens the sign-in modal instead of navigating."
}

func featureCard(title, body, href string) g.Node {
	return h.A(
		h.Href(href),
		h.Class("block rounded-xl bg-white p-5 shadow-sm transition hover:shadow-md"),
		h.H2(h.Class("font-medium"), g.Text(title)),
		h.P(h.Class("mt-1 text-sm text-gray-500"), g.Text(body)),
	)
}

func noticeBanner(notice string) g.Node {
	if notice == "" {
		return nil
	}
	return h.Div(
		h.Class("rounded-lg border border-emerald-200 bg-emerald-50 px-4 py-3 text-sm text-emerald-800"),
		h.Role("status"),
		g.Text(notice),
	)
}
