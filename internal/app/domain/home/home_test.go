package home

import (
	"net/http"
	"net/http/httptest"
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

	"github.com/tabrail/tabrail/internal/app/domain"
	"github.com/tabrail/tabrail/internal/app/domain/hostpage"
	"github.com/tabrail/tabrail/internal/app/middleware"
	"github.com/tabrail/tabrail/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(zapcore.InfoLevel, zap.String("service", "home-test")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func newHomeRouter(t *testing.T, state *hostpage.State) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.AccountMiddleware(state))

	base := domain.NewBaseHandler(zap.NewNop(), nil, hostpage.AuthModal)
	h := NewHomeHandlers(base)
	r.GET("/", h.ShowHomePage)

	// Test hook that plants the one-shot notice the way the sign-in handler
	// does.
	r.POST("/flash", func(c *gin.Context) {
		session := sessions.Default(c)
		session.AddFlash("Signed in as Ada")
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	return r
}

func TestShowHomePageSignedOut(t *testing.T) {
	r := newHomeRouter(t, hostpage.NewState())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "Welcome to Tabrail")
	assert.Contains(t, body, "While signed out the profile tab opens the sign-in modal")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Contains(t, doc.Find("header").Text(), "Signed out")

	modal := doc.Find("#" + hostpage.ModalID)
	require.Equal(t, 1, modal.Length(), "layout embeds the auth modal")
	class, _ := modal.Attr("class")
	assert.Contains(t, class, "hidden")
}

func TestShowHomePageSignedIn(t *testing.T) {
	state := hostpage.NewState()
	_, err := state.SignIn("Ada", "ada@example.com")
	require.NoError(t, err)

	r := newHomeRouter(t, state)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are signed in")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.Find("#host-account-indicator").Text())
}

func TestShowHomePageRevealsModalWithSignInFlag(t *testing.T) {
	r := newHomeRouter(t, hostpage.NewState())

	req := httptest.NewRequest(http.MethodGet, "/?signin=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	class, _ := doc.Find("#" + hostpage.ModalID).Attr("class")
	assert.NotContains(t, class, "hidden", "?signin=1 renders the modal open")
}

func TestShowHomePageAsFragment(t *testing.T) {
	r := newHomeRouter(t, hostpage.NewState())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<!doctype html>", "fragment requests skip the layout")
	assert.Contains(t, body, "Welcome to Tabrail")
}

func TestShowHomePageDisplaysFlashNotice(t *testing.T) {
	r := newHomeRouter(t, hostpage.NewState())

	flashReq := httptest.NewRequest(http.MethodPost, "/flash", nil)
	flashW := httptest.NewRecorder()
	r.ServeHTTP(flashW, flashReq)
	require.Equal(t, http.StatusNoContent, flashW.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range flashW.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	assert.Equal(t, "Signed in as Ada", doc.Find(`[role="status"]`).Text())
}
