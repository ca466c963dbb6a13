package hostpage

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/app/models"
	"github.com/tabrail/tabrail/internal/app/observability/metrics"
	"github.com/tabrail/tabrail/internal/app/renderer"
	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/localstore"
	"github.com/tabrail/tabrail/internal/nav"
)

type HostHandlers struct {
	logger *zap.Logger
	state  *State
	store  *localstore.Store
	events *bus.Bus
}

func NewHostHandlers(logger *zap.Logger, state *State, store *localstore.Store, events *bus.Bus) *HostHandlers {
	return &HostHandlers{logger: logger, state: state, store: store, events: events}
}

// SignIn handles the auth modal form: installs the identity object, persists
// the credential pair, and announces the change so mounted bars refresh.
func (h *HostHandlers) SignIn(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")

	user, err := h.state.SignIn(name, email)
	if err != nil {
		h.recordAuthRequest(c, "signin", "invalid")
		if errors.Is(err, models.ErrValidation) {
			c.String(http.StatusUnprocessableEntity, "name is required")
			return
		}
		h.logger.Error("Sign in failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.store.Set(localstore.KeyAuthToken, uuid.NewString()); err != nil {
		h.logger.Error("Failed to persist auth token", zap.Error(err))
	}
	if err := h.store.Set(localstore.KeyUserName, user.Name); err != nil {
		h.logger.Error("Failed to persist user name", zap.Error(err))
	}

	h.events.PublishAuthChanged()
	h.recordAuthRequest(c, "signin", "ok")

	session := sessions.Default(c)
	session.AddFlash("Signed in as " + user.Name)
	if err := session.Save(); err != nil {
		h.logger.Warn("Failed to save session flash", zap.Error(err))
	}

	h.logger.Info("Host sign in",
		zap.String("user_id", user.ID),
		zap.String("name", user.Name),
	)
	redirect(c, "/")
}

// SignOut clears every auth signal: identity, indicator and the persisted
// credential pair.
func (h *HostHandlers) SignOut(c *gin.Context) {
	h.state.SignOut()

	if err := h.store.Delete(localstore.KeyAuthToken); err != nil {
		h.logger.Error("Failed to delete auth token", zap.Error(err))
	}
	if err := h.store.Delete(localstore.KeyUserName); err != nil {
		h.logger.Error("Failed to delete user name", zap.Error(err))
	}

	h.events.PublishAuthChanged()
	h.recordAuthRequest(c, "signout", "ok")

	redirect(c, "/")
}

// SetSignal flips one auth signal in isolation so the probe chain can be
// exercised from the demo pages and tests. Form values: signal is one of
// account, indicator or token; state is on or off.
func (h *HostHandlers) SetSignal(c *gin.Context) {
	signal := c.PostForm("signal")
	on := c.PostForm("state") == "on"

	switch signal {
	case "account":
		if on {
			h.state.SetUser(&models.User{
				ID:       uuid.NewString(),
				Name:     "Demo Account",
				Email:    "demo@example.com",
				IsActive: true,
			})
		} else {
			h.state.SetUser(nil)
		}
	case "indicator":
		h.state.SetIndicator(on)
	case "token":
		if on {
			if err := h.store.Set(localstore.KeyAuthToken, uuid.NewString()); err != nil {
				h.logger.Error("Failed to set token signal", zap.Error(err))
			}
		} else {
			if err := h.store.Delete(localstore.KeyAuthToken); err != nil {
				h.logger.Error("Failed to clear token signal", zap.Error(err))
			}
		}
	default:
		h.logger.Warn("Unknown sign-in signal", zap.String("signal", signal))
		c.String(http.StatusBadRequest, models.ErrUnknownSignal.Error())
		return
	}

	h.events.PublishAuthChanged()
	c.Header("HX-Trigger", nav.RefreshTrigger)
	c.Status(http.StatusNoContent)
}

// Modal serves the auth modal fragment on its own, revealed, for hosts that
// fetch it lazily instead of embedding it in the layout.
func (h *HostHandlers) Modal(c *gin.Context) {
	renderer.New(c, http.StatusOK, AuthModal(true)).Render(c.Writer)
}

func (h *HostHandlers) recordAuthRequest(c *gin.Context, action, result string) {
	metrics.Get().HostSignInsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(
			attribute.String("action", action),
			attribute.String("result", result),
		))
}

// redirect is HTMX-aware: fragment requests get an HX-Redirect header, plain
// form posts get a standard 303.
func redirect(c *gin.Context, url string) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", url)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}
