package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"portfolio-backend/internal/components"
)

func noop() (g.Node, error) { return g.Text("ok"), nil }

func TestStorySlug(t *testing.T) {
	story := Story{Component: "Design System/Button", Name: "Primary"}
	assert.Equal(t, "design-system-button/primary", story.Slug())

	story = Story{Component: "Design System/Charts", Name: "Stacked Bar"}
	assert.Equal(t, "design-system-charts/stacked-bar", story.Slug())
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Register(Story{Name: "x", Render: noop}), ErrInvalidStory)
	assert.ErrorIs(t, r.Register(Story{Component: "x", Render: noop}), ErrInvalidStory)
	assert.ErrorIs(t, r.Register(Story{Component: "x", Name: "y"}), ErrInvalidStory)

	var nilRegistry *Registry
	assert.ErrorIs(t, nilRegistry.Register(Story{}), ErrInvalidStory)
	assert.Zero(t, nilRegistry.Len())
}

func TestRegisterKeepsOrderAndReplaces(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Story{Component: "A", Name: "One", Render: noop}))
	require.NoError(t, r.Register(Story{Component: "B", Name: "One", Render: noop}))
	require.NoError(t, r.Register(Story{Component: "A", Name: "Two", Render: noop}))
	require.NoError(t, r.Register(Story{Component: "A", Name: "One", Description: "updated", Render: noop}))

	stories := r.List()
	require.Len(t, stories, 3)
	assert.Equal(t, "a/one", stories[0].Slug())
	assert.Equal(t, "updated", stories[0].Description)

	groups := r.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Slug)
	assert.Len(t, groups[0].Stories, 2)
	assert.Equal(t, "b", groups[1].Slug)
}

func TestGet(t *testing.T) {
	r := Defaults()

	story, err := r.Get("design-system-button", "Primary")
	require.NoError(t, err)
	assert.Equal(t, "Primary", story.Name)

	_, err = r.Get("design-system-button", "missing")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestDefaultsRender(t *testing.T) {
	r := Defaults()
	assert.Equal(t, 29, r.Len())

	for _, story := range r.List() {
		node, err := story.Render()
		require.NoError(t, err, story.Slug())

		out, err := components.Render(node)
		require.NoError(t, err, story.Slug())
		assert.NotEmpty(t, out, story.Slug())
	}
}

func TestDefaultGroups(t *testing.T) {
	groups := Defaults().Groups()
	require.Len(t, groups, 5)

	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Slug)
	}
	assert.Equal(t, []string{
		"introduction",
		"design-system-button",
		"design-system-card",
		"design-system-input",
		"design-system-charts",
	}, names)
}
