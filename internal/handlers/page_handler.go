package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/service"
	"portfolio-backend/pkg/logger"
)

type PageHandler struct {
	pageService       *service.PageService
	navigationService *service.NavigationService
}

func NewPageHandler(pageService *service.PageService, navigationService *service.NavigationService) *PageHandler {
	return &PageHandler{pageService: pageService, navigationService: navigationService}
}

func (h *PageHandler) GetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": h.pageService.GetAll()})
}

func (h *PageHandler) GetBySlug(c *gin.Context) {
	page, err := h.pageService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		logger.Error(err, "Failed to load page", map[string]interface{}{"slug": c.Param("slug")})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *PageHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profile": h.pageService.Profile()})
}

// GetNavigation lists the navigation items in display order.
func (h *PageHandler) GetNavigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.navigationService.Items()})
}
