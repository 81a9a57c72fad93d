package service

import (
	"errors"
	"fmt"
	"html/template"

	"portfolio-backend/internal/catalog"
	"portfolio-backend/internal/components"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

// StoryView is a story together with its rendered markup.
type StoryView struct {
	Story  catalog.Story
	Markup template.HTML
}

type CatalogService struct {
	registry *catalog.Registry
	cache    *cache.Cache
}

func NewCatalogService(registry *catalog.Registry, cacheService *cache.Cache) *CatalogService {
	if registry == nil {
		registry = catalog.Defaults()
	}
	return &CatalogService{registry: registry, cache: cacheService}
}

func (s *CatalogService) Groups() []catalog.Group {
	return s.registry.Groups()
}

func (s *CatalogService) Stories() []catalog.Story {
	return s.registry.List()
}

// First returns the story the catalog opens on.
func (s *CatalogService) First() (catalog.Story, error) {
	stories := s.registry.List()
	if len(stories) == 0 {
		return catalog.Story{}, catalog.ErrStoryNotFound
	}
	return stories[0], nil
}

func (s *CatalogService) Story(componentSlug, storySlug string) (catalog.Story, error) {
	return s.registry.Get(componentSlug, storySlug)
}

// Render renders a story, reading through the cache when it is enabled.
func (s *CatalogService) Render(componentSlug, storySlug string) (*StoryView, error) {
	story, err := s.registry.Get(componentSlug, storySlug)
	if err != nil {
		return nil, err
	}
	slug := story.Slug()

	if s.cache.Enabled() {
		markup, err := s.cache.GetCachedStory(slug)
		if err == nil {
			return &StoryView{Story: story, Markup: template.HTML(markup)}, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Story cache read failed", map[string]interface{}{"story": slug, "error": err.Error()})
		}
	}

	node, err := story.Render()
	if err != nil {
		return nil, fmt.Errorf("failed to render story %s: %w", slug, err)
	}
	markup, err := components.Render(node)
	if err != nil {
		return nil, fmt.Errorf("failed to render story %s: %w", slug, err)
	}

	if err := s.cache.CacheStory(slug, markup); err != nil {
		logger.Warn("Story cache write failed", map[string]interface{}{"story": slug, "error": err.Error()})
	}

	return &StoryView{Story: story, Markup: template.HTML(markup)}, nil
}
