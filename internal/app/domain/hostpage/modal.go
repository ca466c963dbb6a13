package hostpage

import (
	"context"
	"io"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ModalID is the element the bar's reveal action unhides client-side.
const ModalID = "auth-modal"

// AuthModal is the sign-in dialog. It ships hidden on every page so the
// profile tab's reveal action always has something to show; revealed renders
// it open, which the layout uses for /?signin=1.
func AuthModal(revealed bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return modalNode(revealed).Render(w)
	})
}

func modalNode(revealed bool) g.Node {
	cls := "fixed inset-0 z-50 grid place-items-center bg-black/40 p-4"
	if !revealed {
		cls = twmerge.Merge(cls, "hidden")
	}
	return h.Div(
		h.ID(ModalID),
		h.Class(cls),
		h.Role("dialog"),
		h.Aria("modal", "true"),
		h.Div(
			h.Class("w-full max-w-sm rounded-xl bg-white p-6 shadow-xl"),
			h.Div(
				h.Class("flex items-center justify-between"),
				h.H2(h.Class("text-lg font-semibold"), g.Text("Sign in")),
				h.Button(
					h.Type("button"),
					g.Attr("data-modal-close", "true"),
					h.Aria("label", "Close"),
					h.Class("text-gray-400 hover:text-gray-600"),
					g.Text("×"),
				),
			),
			h.Form(
				h.Class("mt-4 space-y-3"),
				g.Attr("hx-post", "/host/signin"),
				g.Attr("hx-swap", "none"),
				field("name", "Name", "text", "Ada Lovelace", true),
				field("email", "Email", "email", "ada@example.com", false),
				h.Button(
					h.Type("submit"),
					h.Class("w-full rounded-lg bg-blue-600 px-4 py-2 text-sm font-medium text-white hover:bg-blue-700"),
					g.Text("Sign In"),
				),
			),
		),
	)
}

func field(name, label, typ, placeholder string, required bool) g.Node {
	return h.Label(
		h.Class("block text-sm"),
		h.Span(h.Class("text-gray-600"), g.Text(label)),
		h.Input(
			h.Type(typ),
			h.Name(name),
			h.Placeholder(placeholder),
			g.If(required, h.Required()),
			h.Class("mt-1 w-full rounded-lg border border-gray-300 px-3 py-2 text-sm"),
		),
	)
}
