package hostpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/localstore"
	"github.com/tabrail/tabrail/internal/pkg/config"
	"github.com/tabrail/tabrail/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(zapcore.InfoLevel, zap.String("service", "hostpage-test")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type hostRig struct {
	router *gin.Engine
	state  *State
	store  *localstore.Store
	events *bus.Bus
}

func newHostRig(t *testing.T) *hostRig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := localstore.New(config.StoreConfig{Path: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)

	state := NewState()
	events := bus.New(zap.NewNop())
	h := NewHostHandlers(zap.NewNop(), state, store, events)

	router := gin.New()
	router.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	router.POST("/host/signin", h.SignIn)
	router.POST("/host/signout", h.SignOut)
	router.POST("/host/signals", h.SetSignal)
	router.GET("/host/modal", h.Modal)

	return &hostRig{router: router, state: state, store: store, events: events}
}

func (r *hostRig) postForm(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, req)
	return w
}

func TestSignInPersistsCredentialsAndRedirects(t *testing.T) {
	rig := newHostRig(t)

	w := rig.postForm("/host/signin", url.Values{
		"name":  {"Ada Lovelace"},
		"email": {"ada@example.com"},
	}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	assert.NotEmpty(t, rig.store.Token(context.Background()), "token should be persisted")
	assert.Equal(t, "Ada Lovelace", rig.store.UserName(context.Background()))

	user := rig.state.CurrentUser(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.True(t, rig.state.Present(context.Background()))
}

func TestSignInAnswersHTMXWithRedirectHeader(t *testing.T) {
	rig := newHostRig(t)

	w := rig.postForm("/host/signin", url.Values{"name": {"Ada"}}, true)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/", w.Header().Get("HX-Redirect"))
}

func TestSignInRejectsMissingName(t *testing.T) {
	rig := newHostRig(t)

	w := rig.postForm("/host/signin", url.Values{"email": {"ada@example.com"}}, false)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
	assert.Empty(t, rig.store.Token(context.Background()))
	assert.Nil(t, rig.state.CurrentUser(context.Background()))
}

func TestSignInPublishesAuthChanged(t *testing.T) {
	rig := newHostRig(t)

	var published int
	cancel := rig.events.SubscribeAuthChanged(func(bus.AuthChangedEvent) { published++ })
	defer cancel()

	w := rig.postForm("/host/signin", url.Values{"name": {"Ada"}}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, published)
}

func TestSignOutClearsEverySignal(t *testing.T) {
	rig := newHostRig(t)
	rig.postForm("/host/signin", url.Values{"name": {"Ada"}}, false)
	require.NotEmpty(t, rig.store.Token(context.Background()))

	w := rig.postForm("/host/signout", nil, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, rig.store.Token(context.Background()))
	assert.Empty(t, rig.store.UserName(context.Background()))
	assert.Nil(t, rig.state.CurrentUser(context.Background()))
	assert.False(t, rig.state.Present(context.Background()))
}

func TestSetSignalFlipsSignalsIndependently(t *testing.T) {
	rig := newHostRig(t)

	t.Run("should install and clear the account signal", func(t *testing.T) {
		w := rig.postForm("/host/signals", url.Values{"signal": {"account"}, "state": {"on"}}, false)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotNil(t, rig.state.Account(context.Background()))

		w = rig.postForm("/host/signals", url.Values{"signal": {"account"}, "state": {"off"}}, false)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Nil(t, rig.state.Account(context.Background()))
	})

	t.Run("should flip the presence indicator", func(t *testing.T) {
		rig.postForm("/host/signals", url.Values{"signal": {"indicator"}, "state": {"on"}}, false)
		assert.True(t, rig.state.Present(context.Background()))

		rig.postForm("/host/signals", url.Values{"signal": {"indicator"}, "state": {"off"}}, false)
		assert.False(t, rig.state.Present(context.Background()))
	})

	t.Run("should write and delete the persisted token", func(t *testing.T) {
		rig.postForm("/host/signals", url.Values{"signal": {"token"}, "state": {"on"}}, false)
		assert.NotEmpty(t, rig.store.Token(context.Background()))

		rig.postForm("/host/signals", url.Values{"signal": {"token"}, "state": {"off"}}, false)
		assert.Empty(t, rig.store.Token(context.Background()))
	})

	t.Run("should tell the nav to refresh", func(t *testing.T) {
		w := rig.postForm("/host/signals", url.Values{"signal": {"indicator"}, "state": {"on"}}, false)
		assert.Equal(t, "tabrail:refresh", w.Header().Get("HX-Trigger"))
	})

	t.Run("should reject unknown signals", func(t *testing.T) {
		w := rig.postForm("/host/signals", url.Values{"signal": {"biometrics"}, "state": {"on"}}, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestModalFragmentIsServedRevealed(t *testing.T) {
	rig := newHostRig(t)

	req := httptest.NewRequest(http.MethodGet, "/host/modal", nil)
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)

	modal := doc.Find("#" + ModalID)
	require.Equal(t, 1, modal.Length())
	class, _ := modal.Attr("class")
	assert.NotContains(t, class, "hidden", "fragment endpoint serves the modal revealed")
	assert.Equal(t, 1, modal.Find(`form[hx-post="/host/signin"]`).Length())
	assert.Equal(t, 1, modal.Find("[data-modal-close]").Length())
}
