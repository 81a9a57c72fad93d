package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/catalog"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/service"
	"portfolio-backend/pkg/logger"
)

const catalogLayout = "bare.html"

func (h *TemplateHandler) renderCustomPage(c *gin.Context, page *models.Page) {
	if page == nil {
		h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Requested page not found")
		return
	}

	sectionsHTML, err := h.renderSections(page.Sections)
	if err != nil {
		logger.Error(err, "Failed to render page sections", map[string]interface{}{"page": page.Slug})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render page")
		return
	}

	data := gin.H{
		"Page":     page,
		"Sections": sectionsHTML,
		"HasHero":  len(page.Sections) > 0 && page.Sections[0].Kind == models.SectionHero,
	}

	h.renderTemplate(c, "page", page.Title, page.Description, data)
}

func (h *TemplateHandler) renderPortfolio(c *gin.Context, page *models.Page) {
	data := gin.H{
		"Page":       page,
		"CatalogURL": strings.TrimSpace(h.config.CatalogURL),
	}
	h.renderTemplate(c, "portfolio", page.Title, page.Description, data)
}

func (h *TemplateHandler) renderPageByTemplate(c *gin.Context, page *models.Page) {
	if page == nil {
		h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Requested page not found")
		return
	}

	switch strings.TrimSpace(strings.ToLower(page.Template)) {
	case "portfolio":
		h.renderPortfolio(c, page)
	default:
		h.renderCustomPage(c, page)
	}
}

func (h *TemplateHandler) renderPageForPath(c *gin.Context, path string) bool {
	if h.pageService == nil {
		return false
	}

	page, err := h.pageService.GetByPath(path)
	if err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			return false
		}
		logger.Error(err, "Failed to load page", map[string]interface{}{"path": path})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load page")
		return true
	}

	h.renderPageByTemplate(c, page)
	return true
}

// TryRenderPage renders the content page mounted at the request path and
// reports whether one existed.
func (h *TemplateHandler) TryRenderPage(c *gin.Context) bool {
	path := c.Request.URL.Path
	if path == "" {
		path = "/"
	}
	return h.renderPageForPath(c, path)
}

func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	if h.renderPageForPath(c, "/") {
		return
	}

	h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Homepage is not configured")
}

func (h *TemplateHandler) RenderPage(c *gin.Context) {
	if h.TryRenderPage(c) {
		return
	}

	h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Requested page not found")
}

// RenderCatalog shows the first story of the component catalog.
func (h *TemplateHandler) RenderCatalog(c *gin.Context) {
	if h.catalogService == nil {
		h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Component catalog is disabled")
		return
	}

	story, err := h.catalogService.First()
	if err != nil {
		h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "No stories registered")
		return
	}
	h.renderStory(c, story.ComponentSlug(), story.StorySlug())
}

func (h *TemplateHandler) RenderStory(c *gin.Context) {
	if h.catalogService == nil {
		h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "Component catalog is disabled")
		return
	}
	h.renderStory(c, c.Param("component"), c.Param("story"))
}

func (h *TemplateHandler) renderStory(c *gin.Context, componentSlug, storySlug string) {
	view, err := h.catalogService.Render(componentSlug, storySlug)
	if err != nil {
		if errors.Is(err, catalog.ErrStoryNotFound) {
			h.renderError(c, http.StatusNotFound, "404 - Story Not Found", "Requested story not found")
			return
		}
		logger.Error(err, "Failed to render story", map[string]interface{}{"component": componentSlug, "story": storySlug})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render story")
		return
	}

	data := gin.H{
		"Layout":     catalogLayout,
		"Groups":     h.catalogService.Groups(),
		"StoryCount": len(h.catalogService.Stories()),
		"Story":      view,
		"Current":    view.Story.Slug(),
		"Args":       formatStoryArgs(view),
		"NoIndex":    true,
	}

	h.renderTemplate(c, "catalog", view.Story.Component+" / "+view.Story.Name, view.Story.Description, data)
}

func formatStoryArgs(view *service.StoryView) string {
	if view == nil || view.Story.Args == nil {
		return ""
	}
	encoded, err := json.MarshalIndent(view.Story.Args, "", "  ")
	if err != nil {
		return ""
	}
	return string(encoded)
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	data := gin.H{
		"Title":      title,
		"error":      msg,
		"StatusCode": status,
		"Site": gin.H{
			"Name":        h.config.SiteName,
			"Description": h.config.SiteDescription,
			"URL":         h.config.SiteURL,
		},
	}

	errorTmpl := h.templates.Lookup("error.html")
	if errorTmpl == nil {
		logger.Error(nil, "Error template missing", nil)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	output, err := h.executeTemplate(errorTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render error template", nil)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) RenderErrorPage(c *gin.Context, status int, title, msg string) {
	h.renderError(c, status, title, msg)
}
