package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/catalog"
	"portfolio-backend/internal/service"
	"portfolio-backend/pkg/logger"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type storySummary struct {
	Component   string `json:"component"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Args        any    `json:"args,omitempty"`
	URL         string `json:"url"`
}

type groupSummary struct {
	Component string         `json:"component"`
	Slug      string         `json:"slug"`
	Stories   []storySummary `json:"stories"`
}

func summarizeStory(story catalog.Story) storySummary {
	return storySummary{
		Component:   story.Component,
		Name:        story.Name,
		Slug:        story.Slug(),
		Description: story.Description,
		Args:        story.Args,
		URL:         "/components/" + story.Slug(),
	}
}

// List returns the catalog metadata grouped by component.
func (h *CatalogHandler) List(c *gin.Context) {
	groups := h.catalogService.Groups()
	out := make([]groupSummary, 0, len(groups))
	total := 0
	for _, group := range groups {
		summary := groupSummary{Component: group.Component, Slug: group.Slug}
		for _, story := range group.Stories {
			summary.Stories = append(summary.Stories, summarizeStory(story))
		}
		total += len(group.Stories)
		out = append(out, summary)
	}

	c.JSON(http.StatusOK, gin.H{"groups": out, "total": total})
}

// GetStory returns one story with its rendered markup.
func (h *CatalogHandler) GetStory(c *gin.Context) {
	view, err := h.catalogService.Render(c.Param("component"), c.Param("story"))
	if err != nil {
		if errors.Is(err, catalog.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
			return
		}
		logger.Error(err, "Failed to render story", map[string]interface{}{"component": c.Param("component"), "story": c.Param("story")})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"story":  summarizeStory(view.Story),
		"markup": string(view.Markup),
	})
}
