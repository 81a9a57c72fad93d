package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/seed"
	"portfolio-backend/internal/service"
	"portfolio-backend/internal/web"
	"portfolio-backend/pkg/utils"
)

type fixture struct {
	router  *gin.Engine
	pages   *service.PageService
	panels  *service.PanelService
	handler *TemplateHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	content, err := seed.Load("")
	require.NoError(t, err)

	cfg := &config.Config{
		SiteName:   "Portfolio",
		SiteURL:    "http://localhost:8080",
		CatalogURL: "/components",
	}

	templates, err := utils.LoadTemplates(web.Files(), web.TemplatesDir, utils.GetTemplateFuncs(web.AssetVersion(time.Unix(1700000000, 0))))
	require.NoError(t, err)

	pages := service.NewPageService(repository.NewPageRepository(content), nil)
	nav := service.NewNavigationService(pages)
	catalogService := service.NewCatalogService(nil, nil)
	panels := service.NewPanelService(nav, service.PanelServiceConfig{IdleTimeout: time.Minute})

	templateHandler, err := NewTemplateHandler(pages, nav, catalogService, cfg, templates)
	require.NoError(t, err)

	pageHandler := NewPageHandler(pages, nav)
	panelHandler := NewPanelHandler(panels)
	catalogHandler := NewCatalogHandler(catalogService)

	router := gin.New()
	router.GET("/", templateHandler.RenderIndex)
	router.GET("/components", templateHandler.RenderCatalog)
	router.GET("/components/:component/:story", templateHandler.RenderStory)

	v1 := router.Group("/api/v1")
	v1.GET("/pages", pageHandler.GetAll)
	v1.GET("/pages/:slug", pageHandler.GetBySlug)
	v1.GET("/profile", pageHandler.GetProfile)
	v1.GET("/navigation", pageHandler.GetNavigation)
	v1.GET("/catalog", catalogHandler.List)
	v1.GET("/catalog/:component/:story", catalogHandler.GetStory)

	panelRoutes := v1.Group("/panels")
	panelRoutes.POST("", panelHandler.Mount)
	panelRoutes.GET("/:id", panelHandler.Get)
	panelRoutes.DELETE("/:id", panelHandler.Unmount)
	panelRoutes.POST("/:id/pointer-enter", panelHandler.PointerEnter)
	panelRoutes.POST("/:id/pointer-leave", panelHandler.PointerLeave)
	panelRoutes.POST("/:id/pin", panelHandler.TogglePin)
	panelRoutes.POST("/:id/activate", panelHandler.Activate)

	router.NoRoute(templateHandler.RenderPage)

	return &fixture{router: router, pages: pages, panels: panels, handler: templateHandler}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out), recorder.Body.String())
	return out
}

func TestRenderIndex(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "Full-Stack Engineer")
	assert.Contains(t, body, `id="nav-panel"`)
	assert.Contains(t, body, "w-16")
	assert.Contains(t, body, `aria-current="page"`)
	assert.Contains(t, body, `role="meter"`)
	assert.Contains(t, body, "/static/panel.js?v=1700000000")
	assert.NotContains(t, body, `data-target="/portfolio"`)
}

func TestRenderContentPages(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/innovation", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<svg")
	assert.Contains(t, recorder.Body.String(), "Skill Profile")

	recorder = f.do(t, http.MethodGet, "/production", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "hsl(")

	recorder = f.do(t, http.MethodGet, "/portfolio", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `<iframe src="/components"`)
}

func TestRenderMissingPage(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "404 - Page Not Found")
}

func TestRenderCatalog(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/components", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Design System")
	assert.Contains(t, recorder.Body.String(), "29 stories")
	assert.Equal(t, "noindex, nofollow", recorder.Header().Get("X-Robots-Tag"))

	recorder = f.do(t, http.MethodGet, "/components/design-system-button/primary", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<button")
	assert.Contains(t, recorder.Body.String(), `data-story="design-system-button/primary"`)

	recorder = f.do(t, http.MethodGet, "/components/design-system-button/unknown", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestPagesAPI(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/v1/pages", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decode(t, recorder)["pages"], 6)

	recorder = f.do(t, http.MethodGet, "/api/v1/pages/fundamentals", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodGet, "/api/v1/pages/missing", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = f.do(t, http.MethodGet, "/api/v1/navigation", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	items := decode(t, recorder)["items"].([]interface{})
	require.Len(t, items, 5)
	assert.Equal(t, "/", items[0].(map[string]interface{})["target_id"])
}

func TestCatalogAPI(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decode(t, recorder)
	assert.EqualValues(t, 29, payload["total"])
	assert.Len(t, payload["groups"], 5)

	recorder = f.do(t, http.MethodGet, "/api/v1/catalog/design-system-charts/pie", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, decode(t, recorder)["markup"], "<svg")

	recorder = f.do(t, http.MethodGet, "/api/v1/catalog/nope/nope", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestPanelLifecycle(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/v1/panels", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	mounted := decode(t, recorder)
	id := mounted["id"].(string)
	assert.Equal(t, "collapsed", mounted["phase"])
	assert.Len(t, mounted["items"], 5)

	steps := []struct {
		path  string
		phase string
		width string
	}{
		{"/pointer-enter", "expanded_unpinned", "w-64"},
		{"/pin", "pinned_expanded", "w-64"},
		{"/pointer-leave", "pinned_expanded", "w-64"},
		{"/pin", "expanded_unpinned", "w-64"},
		{"/pointer-leave", "collapsed", "w-16"},
	}
	for _, step := range steps {
		recorder = f.do(t, http.MethodPost, "/api/v1/panels/"+id+step.path, nil)
		require.Equal(t, http.StatusOK, recorder.Code, step.path)
		payload := decode(t, recorder)
		assert.Equal(t, step.phase, payload["phase"], step.path)
		assert.Equal(t, step.width, payload["view"].(map[string]interface{})["width_class"], step.path)
	}

	recorder = f.do(t, http.MethodPost, "/api/v1/panels/"+id+"/activate", gin.H{"target_id": "/fundamentals"})
	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decode(t, recorder)
	assert.Equal(t, "/fundamentals", payload["location"])
	assert.Equal(t, "collapsed", payload["phase"])

	recorder = f.do(t, http.MethodPost, "/api/v1/panels/"+id+"/activate", gin.H{"target_id": "/nowhere"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = f.do(t, http.MethodPost, "/api/v1/panels/"+id+"/activate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = f.do(t, http.MethodDelete, "/api/v1/panels/"+id, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodGet, "/api/v1/panels/"+id, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	recorder = f.do(t, http.MethodPost, "/api/v1/panels/"+id+"/pin", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
