package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/tabrail/tabrail/internal/app/domain"
	"github.com/tabrail/tabrail/internal/app/middleware"
	"github.com/tabrail/tabrail/internal/localstore"
)

type ProfileHandlers struct {
	*domain.BaseHandler
	store *localstore.Store
}

func NewProfileHandlers(base *domain.BaseHandler, store *localstore.Store) *ProfileHandlers {
	return &ProfileHandlers{BaseHandler: base, store: store}
}

// ShowProfilePage renders account details for a signed-in user. Anyone can
// reach /profile directly, so the signed-out case gets a sign-in prompt
// instead of a redirect.
func (h *ProfileHandlers) ShowProfilePage(c *gin.Context) {
	user := middleware.GetUserFromContext(c)
	if user == nil {
		h.RenderPage(c, "Tabrail - Profile", SignInPrompt())
		return
	}

	token := h.store.Token(c.Request.Context())
	h.RenderPage(c, "Tabrail - Profile", ProfileDetails(user, token != ""))
}
