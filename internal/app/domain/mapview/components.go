package mapview

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// MapPage renders the demo map stage. The fullscreen button targets the stage
// element; the client script requests fullscreen on it and reports state
// changes back to the events endpoint, which hides or shows the bottom bar.
func MapPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return mapNode().Render(w)
	})
}

func mapNode() g.Node {
	return h.Section(
		h.Class("space-y-4"),
		h.Div(
			h.Class("flex items-center justify-between"),
			h.H1(h.Class("text-2xl font-semibold"), g.Text("Map")),
			h.Button(
				h.Type("button"),
				h.ID("map-fullscreen-toggle"),
				g.Attr("data-fullscreen-target", "#map-stage"),
				h.Class("rounded-lg border border-gray-300 bg-white px-3 py-1.5 text-sm font-medium hover:bg-gray-100"),
				g.Text("Fullscreen"),
			),
		),
		h.Div(
			h.ID("map-stage"),
			h.Class("map-stage relative grid h-96 place-items-center overflow-hidden rounded-xl bg-slate-800 text-slate-200"),
			h.Div(
				h.Class("text-center"),
				h.P(h.Class("text-lg font-medium"), g.Text("Map stage")),
				h.P(h.Class("mt-1 text-sm text-slate-400"), g.Text("Enter fullscreen to watch the bottom bar hide itself.")),
			),
		),
	)
}
