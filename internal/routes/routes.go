package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/app/domain"
	"github.com/tabrail/tabrail/internal/app/domain/home"
	"github.com/tabrail/tabrail/internal/app/domain/hostpage"
	"github.com/tabrail/tabrail/internal/app/domain/mapview"
	"github.com/tabrail/tabrail/internal/app/domain/navapi"
	"github.com/tabrail/tabrail/internal/app/domain/pages"
	"github.com/tabrail/tabrail/internal/app/domain/profile"
	"github.com/tabrail/tabrail/internal/app/middleware"
	"github.com/tabrail/tabrail/internal/app/renderer"
	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/localstore"
	"github.com/tabrail/tabrail/internal/nav"
)

type AppHandlers struct {
	Home    *home.HomeHandlers
	Map     *mapview.MapHandlers
	Profile *profile.ProfileHandlers
	Host    *hostpage.HostHandlers
	Nav     *navapi.NavHandlers
	Static  *domain.BaseHandler
}

// Setup installs the templ renderer, wires the dependency graph and mounts
// every route group.
func Setup(r *gin.Engine, store *localstore.Store, events *bus.Bus, log *zap.Logger) {
	// Setup custom templ renderer
	ginHTMLRenderer := r.HTMLRender
	r.HTMLRender = &renderer.HTMLTemplRenderer{FallbackHTMLRenderer: ginHTMLRenderer}

	handlers, hostState, err := setupDependencies(store, events, log)
	if err != nil {
		log.Fatal("Failed to setup dependencies", zap.Error(err))
	}

	r.Use(middleware.AccountMiddleware(hostState))
	setupRouter(r, handlers, log)
}

func setupDependencies(store *localstore.Store, events *bus.Bus, log *zap.Logger) (*AppHandlers, *hostpage.State, error) {
	hostState := hostpage.NewState()

	bar, err := nav.Init(nav.Config{
		Bus:         events,
		Logger:      log,
		Identity:    hostState,
		Presence:    hostState,
		Credentials: store,
		// The layout embeds the auth modal on every page, so revealing it
		// always succeeds and the opener/redirect fallbacks never fire here.
		RevealModal: func(context.Context) bool { return true },
		Navigate: func(url string) {
			log.Debug("Nav requested navigation", zap.String("url", url))
		},
	})
	if err != nil {
		return nil, nil, err
	}

	base := domain.NewBaseHandler(log, bar, hostpage.AuthModal)

	handlers := &AppHandlers{
		Home:    home.NewHomeHandlers(base),
		Map:     mapview.NewMapHandlers(base),
		Profile: profile.NewProfileHandlers(base, store),
		Host:    hostpage.NewHostHandlers(log, hostState, store, events),
		Nav:     navapi.NewNavHandlers(log, bar, events),
		Static:  base,
	}

	return handlers, hostState, nil
}

func setupRouter(r *gin.Engine, h *AppHandlers, log *zap.Logger) {
	public := r.Group("/")
	{
		public.GET("/", h.Home.ShowHomePage)
		public.GET("/map", h.Map.ShowMapPage)
		public.GET("/profile", h.Profile.ShowProfilePage)
	}

	// Bar fragment and actions
	navGroup := r.Group("/nav")
	{
		navGroup.GET("/bar", h.Nav.Fragment)
		navGroup.POST("/profile", h.Nav.ProfileAction)
	}

	// Host page event relays
	eventsGroup := r.Group("/events")
	{
		eventsGroup.POST("/fullscreen", h.Nav.Fullscreen)
		eventsGroup.POST("/auth-changed", h.Nav.AuthChanged)
	}

	// WebSocket endpoint for the long-lived event channel
	r.GET("/ws/events", h.Nav.HandleWebSocket)

	// Demo host sign-in harness
	hostGroup := r.Group("/host")
	{
		hostGroup.POST("/signin", h.Host.SignIn)
		hostGroup.POST("/signout", h.Host.SignOut)
		hostGroup.POST("/signals", h.Host.SetSignal)
		hostGroup.GET("/modal", h.Host.Modal)
	}

	// 404 handler - must be last
	r.NoRoute(func(c *gin.Context) {
		log.Info("404 - Page not found",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("ip", c.ClientIP()),
		)

		h.Static.RenderStatusPage(c, http.StatusNotFound, "Tabrail - Page Not Found", pages.NotFoundPage())
	})
}
