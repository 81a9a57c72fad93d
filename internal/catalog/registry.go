package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	g "maragu.dev/gomponents"

	"portfolio-backend/pkg/utils"
)

var (
	ErrStoryNotFound = errors.New("story not found")
	ErrInvalidStory  = errors.New("invalid story")
)

// RenderFunc produces the markup of a story.
type RenderFunc func() (g.Node, error)

// Story is one example of a component in a given configuration.
type Story struct {
	Component   string
	Name        string
	Description string
	Args        any
	Render      RenderFunc
}

// ComponentSlug is the first path segment of the story URL.
func (s Story) ComponentSlug() string { return utils.GenerateSlug(s.Component) }

func (s Story) StorySlug() string { return utils.GenerateSlug(s.Name) }

// Slug identifies the story, e.g. "design-system-button/primary".
func (s Story) Slug() string { return s.ComponentSlug() + "/" + s.StorySlug() }

// Group collects the stories of one component in registration order.
type Group struct {
	Component string
	Slug      string
	Stories   []Story
}

// Registry stores stories keyed by slug and keeps registration order.
type Registry struct {
	mu      sync.RWMutex
	stories map[string]Story
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{stories: make(map[string]Story)}
}

// Register adds a story. Registering the same slug twice replaces the story
// in place.
func (r *Registry) Register(story Story) error {
	if r == nil {
		return fmt.Errorf("%w: registry is nil", ErrInvalidStory)
	}

	story.Component = strings.TrimSpace(story.Component)
	story.Name = strings.TrimSpace(story.Name)
	if story.ComponentSlug() == "" || story.StorySlug() == "" {
		return fmt.Errorf("%w: component and name are required", ErrInvalidStory)
	}
	if story.Render == nil {
		return fmt.Errorf("%w: render is nil for %s", ErrInvalidStory, story.Slug())
	}

	slug := story.Slug()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stories == nil {
		r.stories = make(map[string]Story)
	}
	if _, exists := r.stories[slug]; !exists {
		r.order = append(r.order, slug)
	}
	r.stories[slug] = story
	return nil
}

// MustRegister registers the story and panics if registration fails.
func (r *Registry) MustRegister(story Story) {
	if err := r.Register(story); err != nil {
		panic(err)
	}
}

// Get looks a story up by its component and story slugs.
func (r *Registry) Get(componentSlug, storySlug string) (Story, error) {
	if r == nil {
		return Story{}, ErrStoryNotFound
	}

	slug := strings.ToLower(strings.TrimSpace(componentSlug)) + "/" + strings.ToLower(strings.TrimSpace(storySlug))

	r.mu.RLock()
	defer r.mu.RUnlock()
	story, ok := r.stories[slug]
	if !ok {
		return Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, slug)
	}
	return story, nil
}

func (r *Registry) List() []Story {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	stories := make([]Story, 0, len(r.order))
	for _, slug := range r.order {
		stories = append(stories, r.stories[slug])
	}
	return stories
}

// Groups returns the stories grouped by component, in the order components
// were first registered.
func (r *Registry) Groups() []Group {
	var groups []Group
	index := map[string]int{}
	for _, story := range r.List() {
		slug := story.ComponentSlug()
		i, ok := index[slug]
		if !ok {
			i = len(groups)
			index[slug] = i
			groups = append(groups, Group{Component: story.Component, Slug: slug})
		}
		groups[i].Stories = append(groups[i].Stories, story)
	}
	return groups
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
