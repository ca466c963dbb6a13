package profile

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/tabrail/tabrail/internal/app/models"
	"github.com/tabrail/tabrail/internal/nav"
)

// ProfileDetails shows the signed-in account. hasToken reflects whether a
// persisted credential backs the session, which is worth surfacing in a demo
// about auth signals.
func ProfileDetails(user *models.User, hasToken bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return detailsNode(user, hasToken).Render(w)
	})
}

func detailsNode(user *models.User, hasToken bool) g.Node {
	return h.Section(
		h.Class("space-y-4"),
		h.H1(h.Class("text-2xl font-semibold"), g.Text("Profile")),
		h.Dl(
			h.Class("divide-y divide-gray-100 rounded-xl bg-white shadow-sm"),
			detailRow("Name", user.Name),
			detailRow("Email", user.Email),
			detailRow("Persisted token", yesNo(hasToken)),
		),
		h.Form(
			h.Method("post"),
			h.Action("/host/signout"),
			g.Attr("hx-post", "/host/signout"),
			g.Attr("hx-swap", "none"),
			h.Button(
				h.Type("submit"),
				h.Class("rounded-lg border border-gray-300 bg-white px-4 py-2 text-sm font-medium hover:bg-gray-100"),
				g.Text("Sign Out"),
			),
		),
	)
}

func detailRow(label, value string) g.Node {
	return h.Div(
		h.Class("flex items-center justify-between px-5 py-3"),
		h.Dt(h.Class("text-sm text-gray-500"), g.Text(label)),
		h.Dd(h.Class("text-sm font-medium"), g.Text(value)),
	)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// SignInPrompt is the signed-out profile content. The button posts to the
// bar's profile action endpoint, so it behaves exactly like tapping the
// profile tab.
func SignInPrompt() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return promptNode().Render(w)
	})
}

func promptNode() g.Node {
	return h.Section(
		h.Class("py-12 text-center"),
		h.H1(h.Class("text-2xl font-semibold"), g.Text("You are signed out")),
		h.P(h.Class("mt-2 text-gray-500"), g.Text("Sign in to see your profile details.")),
		h.Button(
			h.Type("button"),
			g.Attr("hx-post", nav.ProfileActionPath),
			g.Attr("hx-swap", "none"),
			h.Class("mt-6 rounded-lg bg-blue-600 px-4 py-2 text-sm font-medium text-white hover:bg-blue-700"),
			g.Text("Sign In"),
		),
	)
}
