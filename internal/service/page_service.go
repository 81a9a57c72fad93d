package service

import (
	"errors"
	"fmt"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

type PageService struct {
	pageRepo repository.PageRepository
	cache    *cache.Cache
}

func NewPageService(pageRepo repository.PageRepository, cacheService *cache.Cache) *PageService {
	return &PageService{pageRepo: pageRepo, cache: cacheService}
}

func (s *PageService) Profile() models.Profile {
	return s.pageRepo.Profile()
}

func (s *PageService) GetAll() []models.Page {
	return s.pageRepo.GetAll()
}

// GetBySlug reads through the cache when it is enabled. Cache failures are
// logged and never surface to the caller.
func (s *PageService) GetBySlug(slug string) (*models.Page, error) {
	if s.cache.Enabled() {
		var cached models.Page
		err := s.cache.GetCachedPage(slug, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Page cache read failed", map[string]interface{}{"slug": slug, "error": err.Error()})
		}
	}

	page, err := s.pageRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CachePage(page.Slug, page); err != nil {
		logger.Warn("Page cache write failed", map[string]interface{}{"slug": page.Slug, "error": err.Error()})
	}
	return page, nil
}

func (s *PageService) GetByPath(path string) (*models.Page, error) {
	page, err := s.pageRepo.GetByPath(path)
	if err != nil {
		return nil, err
	}
	return s.GetBySlug(page.Slug)
}

func (s *PageService) HasRoute(path string) bool {
	return s.pageRepo.ExistsByPath(path)
}

// Reload swaps the content document and drops cached pages.
func (s *PageService) Reload(content *models.Content) error {
	if content == nil {
		return fmt.Errorf("content is nil")
	}
	s.pageRepo.Replace(content)
	if err := s.cache.InvalidateContent(); err != nil {
		return fmt.Errorf("failed to invalidate content cache: %w", err)
	}
	logger.Info("Content reloaded", map[string]interface{}{"pages": len(content.Pages)})
	return nil
}
