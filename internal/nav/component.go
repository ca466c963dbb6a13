package nav

import (
	"context"
	"io"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Stable hooks for styling and tests.
const (
	RootID          = "bottom-nav"
	ProfileButtonID = "bottom-nav-profile"
	ProfileLabelID  = "bottom-nav-profile-label"

	// BodyClass marks <body> while the bar is mounted; BodyMapClass is added
	// on the map page only.
	BodyClass    = "has-bottom-nav"
	BodyMapClass = "bottom-nav-map"
)

// Endpoints the rendered markup points at. The HTTP layer mounts its handlers
// on the same paths.
const (
	FragmentPath      = "/nav/bar"
	ProfileActionPath = "/nav/profile"
)

// RefreshTrigger is the client-side event that makes a rendered bar re-fetch
// itself.
const RefreshTrigger = "tabrail:refresh"

const (
	maxLabelRunes  = 8
	ellipsis       = "…"
	signedOutLabel = "Sign In"
)

// Component renders the bar's current state. The result implements
// templ.Component, so layouts and handlers treat the bar like any other page
// fragment.
func (b *Bar) Component() templ.Component {
	st := b.Snapshot()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rendersTotal.Add(ctx, 1)
		return barNode(st).Render(w)
	})
}

// BodyClasses returns the marker classes the host layout places on <body>
// while the bar is mounted.
func (b *Bar) BodyClasses() []string {
	classes := []string{BodyClass}
	if b.Snapshot().CurrentPage == PageMap {
		classes = append(classes, BodyMapClass)
	}
	return classes
}

func barNode(st State) g.Node {
	return h.Nav(
		h.ID(RootID),
		h.Class(rootClass(st.Visible)),
		g.Attr("hx-get", FragmentPath),
		g.Attr("hx-trigger", RefreshTrigger+" from:body"),
		g.Attr("hx-swap", "outerHTML"),
		tabLink(PageHome, "Home", homeURL, homeIcon, st.CurrentPage),
		tabLink(PageMap, "Map", mapURL, mapIcon, st.CurrentPage),
		profileTab(st),
	)
}

func tabLink(page Page, label, href string, icon g.Node, current Page) g.Node {
	return h.A(
		h.Href(href),
		g.Attr("data-page", page.String()),
		h.Class(itemClass(page == current)),
		icon,
		h.Span(g.Text(label)),
	)
}

// profileTab is a button, not a link: activating it runs the sign-in aware
// action chain server-side instead of navigating directly.
func profileTab(st State) g.Node {
	cls := itemClass(st.CurrentPage == PageProfile)
	if st.SignedIn {
		cls = twmerge.Merge(cls, "signed-in text-emerald-600")
	}
	return h.Button(
		h.ID(ProfileButtonID),
		h.Type("button"),
		g.Attr("data-page", PageProfile.String()),
		h.Class(cls),
		g.Attr("hx-post", ProfileActionPath),
		g.Attr("hx-swap", "none"),
		profileIcon,
		h.Span(h.ID(ProfileLabelID), g.Text(labelFor(st))),
	)
}

func rootClass(visible bool) string {
	cls := "bottom-nav fixed inset-x-0 bottom-0 z-40 flex items-stretch border-t border-gray-200 bg-white shadow-lg"
	if !visible {
		cls = twmerge.Merge(cls, "hidden")
	}
	return cls
}

func itemClass(active bool) string {
	cls := "bottom-nav-item flex flex-1 flex-col items-center justify-center gap-0.5 py-2 text-xs font-medium text-gray-500"
	if active {
		cls = twmerge.Merge(cls, "active text-blue-600")
	}
	return cls
}

// labelFor is the profile label: "Sign In" while signed out, otherwise the
// display name truncated to eight runes with an ellipsis.
func labelFor(st State) string {
	if !st.SignedIn {
		return signedOutLabel
	}
	return truncateName(st.DisplayName)
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxLabelRunes {
		return name
	}
	return string(runes[:maxLabelRunes]) + ellipsis
}

func icon(body string) g.Node {
	return g.Raw(`<svg class="h-5 w-5" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.8" aria-hidden="true">` + body + `</svg>`)
}

var (
	homeIcon    = icon(`<path stroke-linecap="round" stroke-linejoin="round" d="M3 10.5 12 3l9 7.5M5 9.75V21h5.25v-5.25h3.5V21H19V9.75"/>`)
	mapIcon     = icon(`<path stroke-linecap="round" stroke-linejoin="round" d="M9 6.75 3.75 4.5v12.75L9 19.5l6-2.25 5.25 2.25V6.75L15 4.5 9 6.75Zm0 0V19.5m6-15v12.75"/>`)
	profileIcon = icon(`<path stroke-linecap="round" stroke-linejoin="round" d="M15.75 7.5a3.75 3.75 0 1 1-7.5 0 3.75 3.75 0 0 1 7.5 0ZM4.5 20.25a7.5 7.5 0 0 1 15 0"/>`)
)
