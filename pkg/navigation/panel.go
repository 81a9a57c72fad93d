package navigation

import "strings"

// Option configures a Panel at construction time.
type Option func(*Panel)

// WithHoverReevaluation makes unpinning re-derive the expanded flag from the
// last known pointer position instead of leaving the panel open until the next
// pointer leave.
func WithHoverReevaluation() Option {
	return func(p *Panel) {
		p.reevaluateHover = true
	}
}

// Panel is the collapsible sidebar. A Panel is owned by a single mount and is
// not safe for concurrent use.
type Panel struct {
	items     []Item
	navigator Navigator
	state     State

	hovered         bool
	reevaluateHover bool
}

// NewPanel mounts a panel in the collapsed state. Malformed items and a missing
// navigator are rejected with an error wrapping ErrConfiguration.
func NewPanel(items []Item, navigator Navigator, opts ...Option) (*Panel, error) {
	if navigator == nil {
		return nil, ErrNoNavigator
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	p := &Panel{
		items:     append([]Item(nil), items...),
		navigator: navigator,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// State returns the current flags.
func (p *Panel) State() State {
	return p.state
}

// Phase returns the current named state.
func (p *Panel) Phase() Phase {
	phase, _ := p.state.Phase()
	return phase
}

// Items returns the items in display order.
func (p *Panel) Items() []Item {
	return append([]Item(nil), p.items...)
}

// Hovered reports whether the pointer was last seen over the panel.
func (p *Panel) Hovered() bool {
	return p.hovered
}

func (p *Panel) OnPointerEnter() {
	p.hovered = true
	p.state = Transition(p.state, EventPointerEnter)
}

func (p *Panel) OnPointerLeave() {
	p.hovered = false
	p.state = Transition(p.state, EventPointerLeave)
}

func (p *Panel) TogglePin() {
	wasPinned := p.state.Pinned
	p.state = Transition(p.state, EventTogglePin)
	if wasPinned && p.reevaluateHover {
		p.state.Expanded = p.hovered
	}
}

// Apply dispatches an event by value.
func (p *Panel) Apply(e Event) error {
	switch e {
	case EventPointerEnter:
		p.OnPointerEnter()
	case EventPointerLeave:
		p.OnPointerLeave()
	case EventTogglePin:
		p.TogglePin()
	default:
		return ErrUnknownEvent
	}
	return nil
}

// Activate hands the item's target to the navigator. Navigator errors are
// returned as is and the panel state is not touched.
func (p *Panel) Activate(item Item) error {
	return p.navigator.Navigate(item.TargetID)
}

// ActivateTarget activates the panel item whose target matches targetID.
func (p *Panel) ActivateTarget(targetID string) error {
	item, ok := p.Item(targetID)
	if !ok {
		return ErrItemNotFound
	}
	return p.Activate(item)
}

// Item looks up an item by target.
func (p *Panel) Item(targetID string) (Item, bool) {
	targetID = strings.TrimSpace(targetID)
	for _, item := range p.items {
		if item.TargetID == targetID {
			return item, true
		}
	}
	return Item{}, false
}

// IsItemVisible always reports true: items stay in the tree and only their
// label presentation depends on the panel being open.
func (p *Panel) IsItemVisible(Item) bool {
	return true
}

// ShowsTooltip reports whether items should render a hover tooltip in place of
// their inline label.
func (p *Panel) ShowsTooltip() bool {
	return !p.state.Open()
}

// View derives the presentation of the current state.
func (p *Panel) View() View {
	return p.state.View()
}

// Snapshot captures the panel for serialisation.
func (p *Panel) Snapshot() Snapshot {
	return Snapshot{
		State: p.state,
		Phase: p.Phase().String(),
		View:  p.state.View(),
	}
}

// Snapshot is the serialisable form of a panel.
type Snapshot struct {
	State State  `json:"state"`
	Phase string `json:"phase"`
	View  View   `json:"view"`
}
