package handlers

import (
	"fmt"
	"html/template"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/service"
)

type TemplateHandler struct {
	pageService       *service.PageService
	navigationService *service.NavigationService
	catalogService    *service.CatalogService
	templates         *template.Template
	config            *config.Config
	sectionRenderers  map[models.SectionKind]SectionRenderer
}

func NewTemplateHandler(pageService *service.PageService, navigationService *service.NavigationService, catalogService *service.CatalogService, cfg *config.Config, templates *template.Template) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	handler := &TemplateHandler{
		pageService:       pageService,
		navigationService: navigationService,
		catalogService:    catalogService,
		templates:         templates,
		config:            cfg,
	}

	handler.registerDefaultSectionRenderers()

	return handler, nil
}
