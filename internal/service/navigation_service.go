package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"portfolio-backend/internal/models"
	"portfolio-backend/pkg/navigation"
	"portfolio-backend/pkg/utils"
)

var ErrUnknownTarget = errors.New("unknown navigation target")

// NavigationService derives the side navigation from the content pages.
type NavigationService struct {
	pages *PageService
}

func NewNavigationService(pages *PageService) *NavigationService {
	return &NavigationService{pages: pages}
}

// Items lists navigation entries in content order, skipping hidden pages.
func (s *NavigationService) Items() []navigation.Item {
	pages := s.pages.GetAll()
	items := make([]navigation.Item, 0, len(pages))
	for _, page := range pages {
		if page.HideFromNav {
			continue
		}
		items = append(items, ItemFromPage(page))
	}
	return items
}

func ItemFromPage(page models.Page) navigation.Item {
	return navigation.Item{
		Label:       page.Label(),
		TargetID:    utils.NormalizePath(page.Path),
		Icon:        page.Icon,
		Description: page.NavDescription,
	}
}

// NewNavigator returns a navigator that accepts only routes served by the
// site.
func (s *NavigationService) NewNavigator() *RouteNavigator {
	return &RouteNavigator{known: s.pages.HasRoute}
}

// RouteNavigator resolves a target to a site route and remembers the last
// location it navigated to.
type RouteNavigator struct {
	known func(path string) bool

	mu       sync.Mutex
	location string
}

func (n *RouteNavigator) Navigate(targetID string) error {
	target := strings.TrimSpace(targetID)
	if target == "" || !strings.HasPrefix(target, "/") {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, targetID)
	}
	path := utils.NormalizePath(target)
	if n.known != nil && !n.known(path) {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, targetID)
	}

	n.mu.Lock()
	n.location = path
	n.mu.Unlock()
	return nil
}

func (n *RouteNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}
