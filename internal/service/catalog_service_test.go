package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"portfolio-backend/internal/catalog"
)

func TestCatalogRenderDefaults(t *testing.T) {
	svc := NewCatalogService(nil, nil)

	first, err := svc.First()
	require.NoError(t, err)
	assert.Equal(t, "introduction/welcome", first.Slug())

	view, err := svc.Render("design-system-button", "primary")
	require.NoError(t, err)
	assert.Contains(t, string(view.Markup), "<button")
	assert.Equal(t, "Primary", view.Story.Name)

	_, err = svc.Render("design-system-button", "missing")
	assert.ErrorIs(t, err, catalog.ErrStoryNotFound)
}

func TestCatalogRenderError(t *testing.T) {
	registry := catalog.NewRegistry()
	registry.MustRegister(catalog.Story{
		Component: "Broken",
		Name:      "Story",
		Render: func() (g.Node, error) {
			return nil, errors.New("boom")
		},
	})
	registry.MustRegister(catalog.Story{
		Component: "Plain",
		Name:      "Text",
		Render: func() (g.Node, error) {
			return html.P(g.Text("hello")), nil
		},
	})
	svc := NewCatalogService(registry, nil)

	_, err := svc.Render("broken", "story")
	assert.ErrorContains(t, err, "boom")

	view, err := svc.Render("plain", "text")
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", string(view.Markup))
	assert.Len(t, svc.Groups(), 2)
}

func TestCatalogFirstOnEmptyRegistry(t *testing.T) {
	svc := NewCatalogService(catalog.NewRegistry(), nil)
	_, err := svc.First()
	assert.ErrorIs(t, err, catalog.ErrStoryNotFound)
}
