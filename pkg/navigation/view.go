package navigation

const (
	WidthOpen      = "w-64"
	WidthCollapsed = "w-16"

	IconUnpin = "chevron-left"
	IconPin   = "chevron-right"
)

// View is the presentation derived from a State. Every field is a pure
// function of the flags.
type View struct {
	Open                   bool   `json:"open"`
	WidthClass             string `json:"width_class"`
	LabelVisible           bool   `json:"label_visible"`
	ShowTooltip            bool   `json:"show_tooltip"`
	PinVisible             bool   `json:"pin_visible"`
	PinIcon                string `json:"pin_icon"`
	ShowExpansionIndicator bool   `json:"show_expansion_indicator"`
}

func (s State) View() View {
	open := s.Open()

	v := View{
		Open:                   open,
		WidthClass:             WidthCollapsed,
		LabelVisible:           open,
		ShowTooltip:            !open,
		PinVisible:             open,
		PinIcon:                IconPin,
		ShowExpansionIndicator: s.Expanded && !s.Pinned,
	}
	if open {
		v.WidthClass = WidthOpen
	}
	if s.Pinned {
		v.PinIcon = IconUnpin
	}
	return v
}
