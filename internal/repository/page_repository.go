package repository

import (
	"errors"
	"sync"

	"portfolio-backend/internal/models"
	"portfolio-backend/pkg/utils"
)

var ErrPageNotFound = errors.New("page not found")

type PageRepository interface {
	Profile() models.Profile
	GetAll() []models.Page
	GetBySlug(slug string) (*models.Page, error)
	GetByPath(path string) (*models.Page, error)
	ExistsByPath(path string) bool
	Replace(content *models.Content)
}

// pageRepository keeps the loaded content document in memory. Readers get
// copies so the stored pages cannot be mutated from outside.
type pageRepository struct {
	mu      sync.RWMutex
	profile models.Profile
	pages   []models.Page
	bySlug  map[string]int
	byPath  map[string]int
}

func NewPageRepository(content *models.Content) PageRepository {
	r := &pageRepository{}
	r.Replace(content)
	return r
}

func (r *pageRepository) Replace(content *models.Content) {
	var (
		profile models.Profile
		pages   []models.Page
	)
	if content != nil {
		profile = content.Profile
		pages = append(pages, content.Pages...)
	}

	bySlug := make(map[string]int, len(pages))
	byPath := make(map[string]int, len(pages))
	for i, page := range pages {
		bySlug[page.Slug] = i
		byPath[utils.NormalizePath(page.Path)] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = profile
	r.pages = pages
	r.bySlug = bySlug
	r.byPath = byPath
}

func (r *pageRepository) Profile() models.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile
}

func (r *pageRepository) GetAll() []models.Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Page(nil), r.pages...)
}

func (r *pageRepository) GetBySlug(slug string) (*models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.bySlug[utils.GenerateSlug(slug)]
	if !ok {
		return nil, ErrPageNotFound
	}
	page := r.pages[i]
	return &page, nil
}

func (r *pageRepository) GetByPath(path string) (*models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byPath[utils.NormalizePath(path)]
	if !ok {
		return nil, ErrPageNotFound
	}
	page := r.pages[i]
	return &page, nil
}

func (r *pageRepository) ExistsByPath(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byPath[utils.NormalizePath(path)]
	return ok
}
