package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio-backend/internal/background"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/seed"
	"portfolio-backend/internal/service"
	"portfolio-backend/internal/web"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/utils"
)

const panelSweepTask = "panel-sweep"

// Paths owned by the application itself; content pages cannot shadow them.
var reservedPrefixes = []string{"/api", "/static", "/components", "/health", "/metrics", "/favicon.ico"}

type Options struct {
	// Content replaces loading CONTENT_FILE when set.
	Content *models.Content
}

type Application struct {
	cfg     *config.Config
	options Options

	cache     *cache.Cache
	content   *models.Content
	startedAt time.Time

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	templateHandler  *handlers.TemplateHandler
	rateLimitManager *middleware.RateLimitManager
	background       *background.Runner
	router           *gin.Engine
	server           *http.Server
}

type repositoryContainer struct {
	Page repository.PageRepository
}

type serviceContainer struct {
	Page       *service.PageService
	Navigation *service.NavigationService
	Panel      *service.PanelService
	Catalog    *service.CatalogService
}

type handlerContainer struct {
	Page    *handlers.PageHandler
	Panel   *handlers.PanelHandler
	Catalog *handlers.CatalogHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:       cfg,
		options:   opts,
		startedAt: time.Now(),
	}

	if err := app.initContent(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	app.rateLimitManager = middleware.NewRateLimitManager(context.Background())
	app.background = background.NewRunner()

	if err := app.initRouter(); err != nil {
		app.rateLimitManager.Shutdown()
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

// Run starts the background jobs and blocks serving HTTP until the server is
// shut down.
func (a *Application) Run() error {
	if err := a.startBackground(); err != nil {
		return err
	}

	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"pages":       len(a.content.Pages),
	})

	return a.server.ListenAndServe()
}

func (a *Application) startBackground() error {
	a.background.Start(context.Background())

	return a.background.Add(background.Task{
		Name:     panelSweepTask,
		Interval: a.cfg.PanelSweepInterval,
		Timeout:  10 * time.Second,
		Run: func(ctx context.Context) error {
			removed, err := a.services.Panel.Sweep(ctx)
			if removed > 0 {
				logger.Debug("Swept idle panels", map[string]interface{}{"removed": removed})
			}
			return err
		},
	})
}

func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	if a.background != nil {
		if err := a.background.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("background tasks: %w", err))
		}
	}

	if a.rateLimitManager != nil {
		if err := a.rateLimitManager.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("rate limiter: %w", err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	return errors.Join(errs...)
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) Panels() *service.PanelService {
	return a.services.Panel
}

func (a *Application) initContent() error {
	if a.options.Content != nil {
		a.content = a.options.Content
		return nil
	}

	content, err := seed.Load(a.cfg.ContentFile)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	a.content = content
	return nil
}

func (a *Application) initCache() {
	enabled := a.cfg.EnableCache && a.cfg.EnableRedis
	c, err := cache.NewCache(a.cfg.RedisURL, enabled)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without cache", map[string]interface{}{"addr": a.cfg.RedisURL})
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Page: repository.NewPageRepository(a.content),
	}
}

func (a *Application) initServices() {
	page := service.NewPageService(a.repositories.Page, a.cache)
	navigation := service.NewNavigationService(page)

	a.services = serviceContainer{
		Page:       page,
		Navigation: navigation,
		Panel: service.NewPanelService(navigation, service.PanelServiceConfig{
			IdleTimeout:            a.cfg.PanelIdleTimeout,
			ReevaluateHoverOnUnpin: a.cfg.ReevaluateHoverOnUnpin,
		}),
		Catalog: service.NewCatalogService(nil, a.cache),
	}
}

func (a *Application) initHandlers() error {
	a.handlers = handlerContainer{
		Page:    handlers.NewPageHandler(a.services.Page, a.services.Navigation),
		Panel:   handlers.NewPanelHandler(a.services.Panel),
		Catalog: handlers.NewCatalogHandler(a.services.Catalog),
	}

	templates, err := utils.LoadTemplates(web.Files(), web.TemplatesDir, utils.GetTemplateFuncs(web.AssetVersion(a.startedAt)))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	logger.Info("Templates loaded successfully", map[string]interface{}{"templates": len(templates.Templates())})

	templateHandler, err := handlers.NewTemplateHandler(
		a.services.Page,
		a.services.Navigation,
		a.services.Catalog,
		a.cfg,
		templates,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	return nil
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SecurityHeadersMiddleware(a.cfg.CatalogURL))
	router.Use(middleware.RobotsMiddleware(
		middleware.RobotsRule{Prefix: "/", Directives: a.cfg.RobotsSiteDirectives},
		middleware.RobotsRule{Prefix: "/api", Directives: a.cfg.RobotsAPIDirectives},
	))
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimitManager))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"panels": a.services.Panel.Count(),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.StaticFS("/static", http.FS(web.Static()))

	router.GET("/", a.templateHandler.RenderIndex)
	for _, page := range a.services.Page.GetAll() {
		path := utils.NormalizePath(page.Path)
		if path == "/" {
			continue
		}
		if isReservedPath(path) {
			logger.Warn("Content page shadows a reserved route, skipping", map[string]interface{}{"path": path})
			continue
		}
		router.GET(path, a.templateHandler.RenderPage)
	}

	router.GET("/components", a.templateHandler.RenderCatalog)
	router.GET("/components/:component/:story", a.templateHandler.RenderStory)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/pages", a.handlers.Page.GetAll)
		v1.GET("/pages/:slug", a.handlers.Page.GetBySlug)
		v1.GET("/profile", a.handlers.Page.GetProfile)
		v1.GET("/navigation", a.handlers.Page.GetNavigation)

		v1.GET("/catalog", a.handlers.Catalog.List)
		v1.GET("/catalog/:component/:story", a.handlers.Catalog.GetStory)

		panels := v1.Group("/panels")
		{
			panels.POST("", a.handlers.Panel.Mount)
			panels.GET("/:id", a.handlers.Panel.Get)
			panels.DELETE("/:id", a.handlers.Panel.Unmount)
			panels.POST("/:id/pointer-enter", a.handlers.Panel.PointerEnter)
			panels.POST("/:id/pointer-leave", a.handlers.Panel.PointerLeave)
			panels.POST("/:id/pin", a.handlers.Panel.TogglePin)
			panels.POST("/:id/activate", a.handlers.Panel.Activate)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}

		if a.templateHandler.TryRenderPage(c) {
			return
		}

		a.templateHandler.RenderErrorPage(c, http.StatusNotFound, "404 - Page Not Found", "The requested page could not be found")
	})

	a.router = router
	return nil
}

func isReservedPath(path string) bool {
	for _, prefix := range reservedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
