package navigation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	calls []string
	err   error
}

func (r *recordingNavigator) Navigate(targetID string) error {
	r.calls = append(r.calls, targetID)
	return r.err
}

func testItems() []Item {
	return []Item{
		{Label: "Home", TargetID: "/home", Icon: "home"},
		{Label: "Blog", TargetID: "/blog"},
		{Label: "Components", TargetID: "/components"},
		{Label: "Services", TargetID: "/services"},
	}
}

func newTestPanel(t *testing.T, opts ...Option) (*Panel, *recordingNavigator) {
	t.Helper()
	nav := &recordingNavigator{}
	p, err := NewPanel(testItems(), nav, opts...)
	require.NoError(t, err)
	return p, nav
}

func TestNewPanel_StartsCollapsed(t *testing.T) {
	p, _ := newTestPanel(t)
	assert.Equal(t, State{}, p.State())
	assert.Equal(t, PhaseCollapsed, p.Phase())
	assert.Len(t, p.Items(), 4)
	assert.Equal(t, "Home", p.Items()[0].Label)
}

func TestNewPanel_RejectsMalformedItems(t *testing.T) {
	cases := []struct {
		name  string
		items []Item
	}{
		{name: "empty label", items: []Item{{Label: "", TargetID: "/a"}}},
		{name: "blank label", items: []Item{{Label: "   ", TargetID: "/a"}}},
		{name: "empty target", items: []Item{{Label: "A", TargetID: ""}}},
		{name: "second item bad", items: []Item{{Label: "A", TargetID: "/a"}, {Label: "B"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPanel(tc.items, &recordingNavigator{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidItem)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNewPanel_RequiresNavigator(t *testing.T) {
	_, err := NewPanel(testItems(), nil)
	assert.ErrorIs(t, err, ErrNoNavigator)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewPanel_CopiesItems(t *testing.T) {
	items := testItems()
	p, err := NewPanel(items, &recordingNavigator{})
	require.NoError(t, err)

	items[0].Label = "Changed"
	assert.Equal(t, "Home", p.Items()[0].Label)
}

func TestPointerEventsTrackLastCallWhileUnpinned(t *testing.T) {
	p, _ := newTestPanel(t)

	sequence := []Event{EventPointerEnter, EventPointerEnter, EventPointerLeave, EventPointerEnter, EventPointerLeave, EventPointerLeave}
	for _, e := range sequence {
		require.NoError(t, p.Apply(e))
		assert.Equal(t, e == EventPointerEnter, p.State().Expanded, "after %s", e)
		assert.False(t, p.State().Pinned)
	}
}

func TestTogglePinForcesExpanded(t *testing.T) {
	t.Run("from collapsed", func(t *testing.T) {
		p, _ := newTestPanel(t)
		p.TogglePin()
		assert.Equal(t, State{Expanded: true, Pinned: true}, p.State())
	})

	t.Run("from expanded", func(t *testing.T) {
		p, _ := newTestPanel(t)
		p.OnPointerEnter()
		p.TogglePin()
		assert.Equal(t, State{Expanded: true, Pinned: true}, p.State())
	})
}

func TestPinnedIgnoresPointerEvents(t *testing.T) {
	p, _ := newTestPanel(t)
	p.TogglePin()

	for _, e := range []Event{EventPointerLeave, EventPointerEnter, EventPointerLeave, EventPointerLeave} {
		require.NoError(t, p.Apply(e))
		assert.Equal(t, State{Expanded: true, Pinned: true}, p.State())
	}
}

func TestPinnedCollapsedIsNeverObservable(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	events := []Event{EventPointerEnter, EventPointerLeave, EventTogglePin}

	for run := 0; run < 200; run++ {
		p, _ := newTestPanel(t)
		for step := 0; step < 50; step++ {
			if rng.Intn(10) == 0 {
				require.NoError(t, p.Activate(p.Items()[rng.Intn(len(p.items))]))
			} else {
				require.NoError(t, p.Apply(events[rng.Intn(len(events))]))
			}
			state := p.State()
			require.True(t, state.Valid(), "run %d step %d reached %+v", run, step, state)
		}
	}
}

func TestUnpinLeavesPanelExpandedUntilLeave(t *testing.T) {
	p, _ := newTestPanel(t)

	p.OnPointerEnter()
	assert.Equal(t, State{Expanded: true}, p.State())

	p.TogglePin()
	assert.Equal(t, State{Expanded: true, Pinned: true}, p.State())

	p.OnPointerLeave()
	assert.Equal(t, State{Expanded: true, Pinned: true}, p.State())

	p.TogglePin()
	assert.Equal(t, State{Expanded: true}, p.State())
	assert.Equal(t, PhaseExpandedUnpinned, p.Phase())

	p.OnPointerLeave()
	assert.Equal(t, State{}, p.State())
}

func TestHoverReevaluationOnUnpin(t *testing.T) {
	t.Run("pointer outside collapses", func(t *testing.T) {
		p, _ := newTestPanel(t, WithHoverReevaluation())
		p.OnPointerEnter()
		p.TogglePin()
		p.OnPointerLeave()
		p.TogglePin()
		assert.Equal(t, State{}, p.State())
	})

	t.Run("pointer inside stays expanded", func(t *testing.T) {
		p, _ := newTestPanel(t, WithHoverReevaluation())
		p.TogglePin()
		p.OnPointerEnter()
		p.TogglePin()
		assert.Equal(t, State{Expanded: true}, p.State())
	})
}

func TestActivateDispatchesOnce(t *testing.T) {
	p, nav := newTestPanel(t)
	p.OnPointerEnter()
	before := p.State()

	err := p.Activate(Item{Label: "Blog", TargetID: "/blog"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/blog"}, nav.calls)
	assert.Equal(t, before, p.State())
}

func TestActivatePropagatesNavigatorError(t *testing.T) {
	failure := errors.New("router unavailable")
	nav := &recordingNavigator{err: failure}
	p, err := NewPanel(testItems(), nav)
	require.NoError(t, err)
	p.TogglePin()

	err = p.Activate(p.Items()[1])
	assert.Equal(t, failure, err)
	assert.Equal(t, State{Expanded: true, Pinned: true}, p.State())
}

func TestActivateTarget(t *testing.T) {
	p, nav := newTestPanel(t)

	require.NoError(t, p.ActivateTarget("/components"))
	assert.Equal(t, []string{"/components"}, nav.calls)

	assert.ErrorIs(t, p.ActivateTarget("/missing"), ErrItemNotFound)
	assert.Len(t, nav.calls, 1)
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	p, err := NewPanel(testItems(), NavigatorFunc(func(targetID string) error {
		got = targetID
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, p.ActivateTarget("/services"))
	assert.Equal(t, "/services", got)
}

func TestItemsAlwaysVisibleTooltipOnlyWhenClosed(t *testing.T) {
	p, _ := newTestPanel(t)
	for _, item := range p.Items() {
		assert.True(t, p.IsItemVisible(item))
	}
	assert.True(t, p.ShowsTooltip())

	p.OnPointerEnter()
	assert.False(t, p.ShowsTooltip())
	for _, item := range p.Items() {
		assert.True(t, p.IsItemVisible(item))
	}
}

func TestApplyUnknownEvent(t *testing.T) {
	p, _ := newTestPanel(t)
	assert.ErrorIs(t, p.Apply(Event(99)), ErrUnknownEvent)
	assert.Equal(t, State{}, p.State())
}

func TestSnapshot(t *testing.T) {
	p, _ := newTestPanel(t)
	p.TogglePin()

	snap := p.Snapshot()
	assert.Equal(t, "pinned_expanded", snap.Phase)
	assert.True(t, snap.State.Pinned)
	assert.Equal(t, WidthOpen, snap.View.WidthClass)
	assert.Equal(t, IconUnpin, snap.View.PinIcon)
}
