package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"portfolio-backend/internal/background"
	"portfolio-backend/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                "0",
		Environment:         "test",
		CORSOrigins:         []string{"http://localhost:8080"},
		RateLimitRequests:   0,
		EnableMetrics:       true,
		SiteName:            "Portfolio",
		SiteURL:             "http://localhost:8080",
		RobotsAPIDirectives: "noindex, nofollow",
		CatalogURL:          "/components",
		PanelIdleTimeout:    time.Minute,
		PanelSweepInterval:  10 * time.Millisecond,
	}
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)

	application, err := New(testConfig(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, application.Shutdown(ctx))
	})
	return application
}

func get(application *Application, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	application.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestRoutes(t *testing.T) {
	application := newTestApp(t)

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/health", http.StatusOK, `"status":"healthy"`},
		{"/", http.StatusOK, `id="nav-panel"`},
		{"/fundamentals", http.StatusOK, "<section"},
		{"/portfolio", http.StatusOK, "<iframe"},
		{"/components", http.StatusOK, "data-story="},
		{"/static/panel.js", http.StatusOK, "data-panel"},
		{"/api/v1/navigation", http.StatusOK, `"items"`},
		{"/api/v1/nowhere", http.StatusNotFound, `"Route not found"`},
		{"/missing-page", http.StatusNotFound, "404 - Page Not Found"},
		{"/metrics", http.StatusOK, "portfolio_http_requests_total"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			recorder := get(application, tc.path)
			assert.Equal(t, tc.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tc.body)
		})
	}
}

func TestSecurityAndRequestHeaders(t *testing.T) {
	application := newTestApp(t)

	recorder := get(application, "/")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	assert.Contains(t, recorder.Header().Get("Content-Security-Policy"), "frame-src")

	recorder = get(application, "/api/v1/pages")
	assert.Equal(t, "noindex, nofollow", recorder.Header().Get("X-Robots-Tag"))
}

func TestPanelSweepJob(t *testing.T) {
	cfg := testConfig()
	cfg.PanelIdleTimeout = time.Nanosecond

	application, err := New(cfg, Options{})
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, application.Shutdown(ctx))
	}()

	recorder := httptest.NewRecorder()
	application.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/panels", nil))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var mounted map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &mounted))
	require.Equal(t, 1, application.Panels().Count())

	require.NoError(t, application.startBackground())

	require.Eventually(t, func() bool {
		return application.Panels().Count() == 0
	}, 2*time.Second, 10*time.Millisecond)

	recorder = get(application, "/api/v1/panels/"+mounted["id"].(string))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	require.Eventually(t, func() bool {
		body := get(application, "/metrics").Body.String()
		return strings.Contains(body, `portfolio_background_task_runs_total{status="success",task="panel-sweep"}`)
	}, 2*time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, application.startBackground(), background.ErrDuplicateTask)
}

func TestReservedPaths(t *testing.T) {
	assert.True(t, isReservedPath("/api"))
	assert.True(t, isReservedPath("/static/site.css"))
	assert.False(t, isReservedPath("/apidocs"))
	assert.False(t, isReservedPath(strings.ToLower("/Fundamentals")))
}
