package pages

import (
	"context"
	"io"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/tabrail/tabrail/internal/app/models"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@1.9.12"

// LayoutPage wraps page content in the full document shell: head assets, the
// demo header, the auth modal and the bottom navigation bar. The body element
// carries the bar's marker classes only while a live bar is attached.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(ctx, data).Render(w)
	})
}

func document(ctx context.Context, data models.LayoutTempl) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    data.Title,
		Language: "en",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("/assets/css/tabrail.css")),
			h.Script(h.Src(htmxScriptURL)),
			h.Script(h.Src("/assets/js/tabrail.js"), h.Defer()),
		},
		Body: []g.Node{
			h.Class(bodyClass(data)),
			pageHeader(data.User),
			h.Main(
				h.ID("main-content"),
				h.Class("mx-auto max-w-3xl px-4 pb-24 pt-6"),
				templNode(ctx, data.Content),
			),
			templNode(ctx, data.Modal),
			barNode(ctx, data),
		},
	})
}

func bodyClass(data models.LayoutTempl) string {
	cls := "min-h-screen bg-gray-50 text-gray-900 antialiased"
	if data.Bar != nil && data.Bar.Alive() {
		for _, marker := range data.Bar.BodyClasses() {
			cls = twmerge.Merge(cls, marker)
		}
	}
	return cls
}

func pageHeader(user *models.User) g.Node {
	return h.Header(
		h.Class("border-b border-gray-200 bg-white"),
		h.Div(
			h.Class("mx-auto flex max-w-3xl items-center justify-between px-4 py-3"),
			h.A(h.Href("/"), h.Class("text-lg font-semibold"), g.Text("Tabrail")),
			accountBadge(user),
		),
	)
}

// accountBadge doubles as the presence indicator element some embedders key
// off; the server-side presence probe reads the host state directly.
func accountBadge(user *models.User) g.Node {
	if user == nil {
		return h.Span(h.Class("text-sm text-gray-500"), g.Text("Signed out"))
	}
	return h.Span(
		h.ID("host-account-indicator"),
		h.Class("text-sm font-medium text-emerald-700"),
		g.Attr("data-present", "true"),
		g.Text(user.Name),
	)
}

func barNode(ctx context.Context, data models.LayoutTempl) g.Node {
	if data.Bar == nil || !data.Bar.Alive() {
		return nil
	}
	return templNode(ctx, data.Bar.Component())
}

// templNode adapts a templ component into the gomponents tree, threading the
// render context through.
func templNode(ctx context.Context, comp templ.Component) g.Node {
	if comp == nil {
		return nil
	}
	return g.NodeFunc(func(w io.Writer) error {
		return comp.Render(ctx, w)
	})
}

// NotFoundPage is the 404 content rendered inside the layout.
func NotFoundPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return h.Section(
			h.Class("py-16 text-center"),
			h.H1(h.Class("text-3xl font-semibold"), g.Text("Page not found")),
			h.P(h.Class("mt-2 text-gray-500"), g.Text("The page you are looking for does not exist.")),
			h.A(h.Href("/"), h.Class("mt-6 inline-block text-blue-600 underline"), g.Text("Back home")),
		).Render(w)
	})
}
