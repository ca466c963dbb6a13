package mapview

import (
	"github.com/gin-gonic/gin"

	"github.com/tabrail/tabrail/internal/app/domain"
)

type MapHandlers struct {
	*domain.BaseHandler
}

func NewMapHandlers(base *domain.BaseHandler) *MapHandlers {
	return &MapHandlers{BaseHandler: base}
}

func (h *MapHandlers) ShowMapPage(c *gin.Context) {
	h.RenderPage(c, "Tabrail - Map", MapPage())
}
