package home

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/app/domain"
	"github.com/tabrail/tabrail/internal/app/middleware"
)

type HomeHandlers struct {
	*domain.BaseHandler
}

func NewHomeHandlers(base *domain.BaseHandler) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base}
}

func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	user := middleware.GetUserFromContext(c)

	// One-shot notice left by the sign-in handlers.
	session := sessions.Default(c)
	var notice string
	if flashes := session.Flashes(); len(flashes) > 0 {
		if msg, ok := flashes[0].(string); ok {
			notice = msg
		}
		if err := session.Save(); err != nil {
			h.Logger.Warn("Failed to clear session flashes", zap.Error(err))
		}
	}

	h.RenderPage(c, "Tabrail - Home", HomePage(user != nil, notice))
}
