package pages

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/tabrail/tabrail/internal/app/domain/hostpage"
	"github.com/tabrail/tabrail/internal/app/models"
	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/nav"
	"github.com/tabrail/tabrail/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(zapcore.InfoLevel, zap.String("service", "pages-test")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func renderLayout(t *testing.T, data models.LayoutTempl) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, LayoutPage(data).Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func newTestBar(t *testing.T) *nav.Bar {
	t.Helper()
	if bar, ok := nav.Current(); ok {
		bar.Destroy()
	}
	bar, err := nav.Init(nav.Config{
		Bus:        bus.New(zap.NewNop()),
		Logger:     zap.NewNop(),
		PollChecks: 1,
	})
	require.NoError(t, err)
	t.Cleanup(bar.Destroy)
	return bar
}

func simpleContent(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return h.P(g.Text(text)).Render(w)
	})
}

func TestLayoutMarksBodyWhileBarIsMounted(t *testing.T) {
	bar := newTestBar(t)

	doc := renderLayout(t, models.LayoutTempl{
		Title:   "Tabrail - Home",
		Content: simpleContent("hello"),
		Bar:     bar,
	})

	body, _ := doc.Find("body").Attr("class")
	assert.Contains(t, body, nav.BodyClass)
	assert.NotContains(t, body, nav.BodyMapClass)
	assert.Equal(t, 1, doc.Find("#"+nav.RootID).Length(), "bar markup is embedded in the page")
	assert.Equal(t, "Tabrail - Home", doc.Find("title").Text())
}

func TestLayoutAddsMapMarkerOnMapPage(t *testing.T) {
	bar := newTestBar(t)
	bar.SetPath("/map")

	doc := renderLayout(t, models.LayoutTempl{
		Title:   "Tabrail - Map",
		Content: simpleContent("map"),
		Bar:     bar,
	})

	body, _ := doc.Find("body").Attr("class")
	assert.Contains(t, body, nav.BodyClass)
	assert.Contains(t, body, nav.BodyMapClass)

	active, _ := doc.Find("#" + nav.RootID).Find(".active").Attr("data-page")
	assert.Equal(t, "map", active)
}

func TestLayoutDropsBarAfterDestroy(t *testing.T) {
	bar := newTestBar(t)
	bar.Destroy()

	doc := renderLayout(t, models.LayoutTempl{
		Title:   "Tabrail - Home",
		Content: simpleContent("hello"),
		Bar:     bar,
	})

	body, _ := doc.Find("body").Attr("class")
	assert.NotContains(t, body, nav.BodyClass)
	assert.NotContains(t, body, nav.BodyMapClass)
	assert.Zero(t, doc.Find("#"+nav.RootID).Length(), "destroyed bar leaves no markup behind")
}

func TestLayoutWithoutBar(t *testing.T) {
	doc := renderLayout(t, models.LayoutTempl{
		Title:   "Tabrail",
		Content: simpleContent("standalone"),
	})

	body, _ := doc.Find("body").Attr("class")
	assert.NotContains(t, body, nav.BodyClass)
	assert.Zero(t, doc.Find("#"+nav.RootID).Length())
	assert.Equal(t, 1, doc.Find("#main-content").Length())
}

func TestLayoutShowsAccountBadgeWhenSignedIn(t *testing.T) {
	doc := renderLayout(t, models.LayoutTempl{
		Title:   "Tabrail",
		User:    &models.User{ID: "u1", Name: "Ada", IsActive: true},
		Content: simpleContent("hello"),
	})

	badge := doc.Find("#host-account-indicator")
	require.Equal(t, 1, badge.Length())
	assert.Equal(t, "Ada", badge.Text())
	present, _ := badge.Attr("data-present")
	assert.Equal(t, "true", present)
}

func TestLayoutShowsSignedOutBadgeWithoutUser(t *testing.T) {
	doc := renderLayout(t, models.LayoutTempl{
		Title:   "Tabrail",
		Content: simpleContent("hello"),
	})

	assert.Zero(t, doc.Find("#host-account-indicator").Length())
	assert.Contains(t, doc.Find("header").Text(), "Signed out")
}

func TestLayoutEmbedsModal(t *testing.T) {
	t.Run("should keep the modal hidden by default", func(t *testing.T) {
		doc := renderLayout(t, models.LayoutTempl{
			Title:   "Tabrail",
			Content: simpleContent("hello"),
			Modal:   hostpage.AuthModal(false),
		})

		modal := doc.Find("#" + hostpage.ModalID)
		require.Equal(t, 1, modal.Length())
		class, _ := modal.Attr("class")
		assert.Contains(t, class, "hidden")
	})

	t.Run("should reveal the modal when asked", func(t *testing.T) {
		doc := renderLayout(t, models.LayoutTempl{
			Title:   "Tabrail",
			Content: simpleContent("hello"),
			Modal:   hostpage.AuthModal(true),
		})

		class, _ := doc.Find("#" + hostpage.ModalID).Attr("class")
		assert.NotContains(t, class, "hidden")
	})
}

func TestNotFoundPageRenders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NotFoundPage().Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Page not found")
}
