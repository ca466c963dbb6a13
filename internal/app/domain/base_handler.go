package domain

import (
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/app/domain/pages"
	"github.com/tabrail/tabrail/internal/app/middleware"
	"github.com/tabrail/tabrail/internal/app/models"
	"github.com/tabrail/tabrail/internal/app/observability/metrics"
	"github.com/tabrail/tabrail/internal/nav"
)

type BaseHandler struct {
	Logger *zap.Logger
	Bar    *nav.Bar
	// Modal builds the host's auth modal fragment; revealed controls whether
	// it renders open. Nil means no modal in the layout.
	Modal func(revealed bool) templ.Component
}

func NewBaseHandler(logger *zap.Logger, bar *nav.Bar, modal func(revealed bool) templ.Component) *BaseHandler {
	return &BaseHandler{Logger: logger, Bar: bar, Modal: modal}
}

// activeBar prefers the injected bar and falls back to the process-wide one.
// Returns nil when neither is mounted, which drops the bar (and its body
// marker classes) from the layout.
func (h *BaseHandler) activeBar() *nav.Bar {
	if h.Bar != nil && h.Bar.Alive() {
		return h.Bar
	}
	if bar, ok := nav.Current(); ok {
		return bar
	}
	return nil
}

func (h *BaseHandler) newLayoutData(c *gin.Context, title string, content templ.Component) models.LayoutTempl {
	data := models.LayoutTempl{
		Title:   title,
		Content: content,
		User:    middleware.GetUserFromContext(c),
		Bar:     h.activeBar(),
	}
	if h.Modal != nil {
		data.Modal = h.Modal(c.Query("signin") == "1")
	}
	return data
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component) {
	start := time.Now()
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}
	metrics.Get().TemplateRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("route", c.FullPath())))
}

// RenderPage points the bar at the request path, then renders content bare
// for HTMX fragment requests or wrapped in the full layout otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, title string, content templ.Component) {
	if bar := h.activeBar(); bar != nil {
		bar.SetPath(c.Request.URL.Path)
	}

	isHTMX := c.GetHeader("HX-Request") == "true"
	if isHTMX {
		h.render(c, 200, content)
	} else {
		h.render(c, 200, pages.LayoutPage(h.newLayoutData(c, title, content)))
	}
}

// RenderStatusPage renders a full layout page with a non-200 status, used by
// the 404 handler.
func (h *BaseHandler) RenderStatusPage(c *gin.Context, status int, title string, content templ.Component) {
	h.render(c, status, pages.LayoutPage(h.newLayoutData(c, title, content)))
}
