package renderer

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin/render"
)

// HTMLTemplRenderer lets gin's c.HTML accept templ components directly.
// Anything that is not a templ.Component falls through to the renderer gin
// would have used anyway.
type HTMLTemplRenderer struct {
	FallbackHTMLRenderer render.HTMLRender
}

func (r *HTMLTemplRenderer) Instance(name string, data any) render.Render {
	component, ok := data.(templ.Component)
	if !ok {
		if r.FallbackHTMLRenderer != nil {
			return r.FallbackHTMLRenderer.Instance(name, data)
		}
		return &Renderer{Ctx: context.Background(), Status: -1}
	}
	return &Renderer{Ctx: context.Background(), Status: -1, Component: component}
}

// New builds a one-off render for handlers that want to stream a component
// with an explicit status instead of going through c.HTML.
func New(ctx context.Context, status int, component templ.Component) *Renderer {
	return &Renderer{Ctx: ctx, Status: status, Component: component}
}

type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	// Status -1 means gin already wrote the header via c.HTML.
	if t.Status != -1 {
		w.WriteHeader(t.Status)
	}
	if t.Component != nil {
		return t.Component.Render(t.Ctx, w)
	}
	return nil
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
