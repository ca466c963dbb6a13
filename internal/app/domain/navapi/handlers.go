// Package navapi is the HTTP surface of the bottom navigation bar: the
// fragment endpoint HTMX refreshes swap from, the profile-tab action, and the
// event ingress (HTTP POST and WebSocket) that feeds the bus.
package navapi

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/app/renderer"
	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/nav"
)

// Events fired at the client via HX-Trigger. The embedded script listens for
// both and reveals the auth modal.
const (
	RevealModalEvent = "tabrail:reveal-modal"
	OpenModalEvent   = "tabrail:open-modal"
)

type NavHandlers struct {
	logger *zap.Logger
	bar    *nav.Bar
	events *bus.Bus
}

func NewNavHandlers(logger *zap.Logger, bar *nav.Bar, events *bus.Bus) *NavHandlers {
	return &NavHandlers{logger: logger, bar: bar, events: events}
}

func (h *NavHandlers) activeBar() (*nav.Bar, bool) {
	if h.bar != nil && h.bar.Alive() {
		return h.bar, true
	}
	return nav.Current()
}

// Fragment serves the rendered bar. A destroyed bar yields an empty body, so
// the client-side outerHTML swap removes the nav node entirely.
func (h *NavHandlers) Fragment(c *gin.Context) {
	bar, ok := h.activeBar()
	if !ok {
		c.Data(http.StatusOK, "text/html; charset=utf-8", nil)
		return
	}

	// HTMX sends the page URL along; keep the active tab in step with it.
	if current := c.GetHeader("HX-Current-URL"); current != "" {
		if u, err := url.Parse(current); err == nil {
			bar.SetPath(u.Path)
		}
	}

	renderer.New(c, http.StatusOK, bar.Component()).Render(c.Writer)
}

// ProfileAction runs the profile tab's activation chain. Navigating outcomes
// become an HX-Redirect (or a plain 303 for non-HTMX posts); modal outcomes
// become an HX-Trigger the page script reacts to.
func (h *NavHandlers) ProfileAction(c *gin.Context) {
	bar, ok := h.activeBar()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	action := bar.ActivateProfile(c.Request.Context())
	h.logger.Info("Profile tab activated", zap.String("action", action.String()))

	if target := action.Target(); target != "" {
		if c.GetHeader("HX-Request") == "true" {
			c.Header("HX-Redirect", target)
			c.Status(http.StatusNoContent)
		} else {
			c.Redirect(http.StatusSeeOther, target)
		}
		return
	}

	switch action {
	case nav.ActionRevealModal:
		c.Header("HX-Trigger", RevealModalEvent)
	case nav.ActionOpenModal:
		c.Header("HX-Trigger", OpenModalEvent)
	}
	c.Status(http.StatusNoContent)
}

type fullscreenRequest struct {
	Active bool `form:"active" json:"active"`
}

// Fullscreen ingests the host page's fullscreenchange reports and tells every
// rendered bar to refresh.
func (h *NavHandlers) Fullscreen(c *gin.Context) {
	var req fullscreenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid fullscreen payload")
		return
	}

	h.events.PublishFullscreen(bus.FullscreenEvent{Active: req.Active})
	c.Header("HX-Trigger", nav.RefreshTrigger)
	c.Status(http.StatusNoContent)
}

// AuthChanged lets the host page nudge the bar after any sign-in change it
// notices out-of-band.
func (h *NavHandlers) AuthChanged(c *gin.Context) {
	h.events.PublishAuthChanged()
	c.Header("HX-Trigger", nav.RefreshTrigger)
	c.Status(http.StatusNoContent)
}
