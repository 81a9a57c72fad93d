package components

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
	ButtonSuccess   ButtonVariant = "success"
	ButtonGhost     ButtonVariant = "ghost"
)

const buttonBase = "inline-flex items-center justify-center font-medium rounded-lg transition-all duration-200 focus:outline-none focus:ring-2 focus:ring-offset-2"

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-blue-600 text-white hover:bg-blue-700 focus:ring-blue-500 disabled:bg-blue-300",
	ButtonSecondary: "bg-gray-200 text-gray-900 hover:bg-gray-300 focus:ring-gray-500 disabled:bg-gray-100",
	ButtonDanger:    "bg-red-600 text-white hover:bg-red-700 focus:ring-red-500 disabled:bg-red-300",
	ButtonSuccess:   "bg-green-600 text-white hover:bg-green-700 focus:ring-green-500 disabled:bg-green-300",
	ButtonGhost:     "bg-transparent text-gray-700 hover:bg-gray-100 focus:ring-gray-500 disabled:text-gray-400",
}

var buttonSizes = map[Size]string{
	SizeSmall:  "px-3 py-1.5 text-sm gap-1.5",
	SizeMedium: "px-4 py-2 text-base gap-2",
	SizeLarge:  "px-6 py-3 text-lg gap-2.5",
}

var buttonTypes = map[string]bool{"button": true, "submit": true, "reset": true}

// ButtonVariants lists the variants in display order.
func ButtonVariants() []ButtonVariant {
	return []ButtonVariant{ButtonPrimary, ButtonSecondary, ButtonDanger, ButtonSuccess, ButtonGhost}
}

type ButtonProps struct {
	Label     string        `json:"label"`
	Variant   ButtonVariant `json:"variant,omitempty"`
	Size      Size          `json:"size,omitempty"`
	Type      string        `json:"type,omitempty"`
	Disabled  bool          `json:"disabled,omitempty"`
	Loading   bool          `json:"loading,omitempty"`
	FullWidth bool          `json:"full_width,omitempty"`
	LeftIcon  string        `json:"left_icon,omitempty"`
	RightIcon string        `json:"right_icon,omitempty"`
	Class     string        `json:"class,omitempty"`
}

// ButtonStyle resolves the style descriptor for the props.
func ButtonStyle(p ButtonProps) (Style, error) {
	_, variant, err := lookup(buttonVariants, p.Variant, ButtonPrimary, "button variant")
	if err != nil {
		return Style{}, err
	}
	_, size, err := lookup(buttonSizes, p.Size, SizeMedium, "button size")
	if err != nil {
		return Style{}, err
	}

	s := Style{Base: buttonBase, Variant: variant, Size: size, Extra: p.Class}
	if p.FullWidth {
		s.Width = "w-full"
	}
	if p.Disabled || p.Loading {
		s.State = "cursor-not-allowed opacity-60"
	} else {
		s.State = "cursor-pointer"
	}
	return s, nil
}

// Button renders a button element. A loading button is disabled and shows a
// spinner in place of its content.
func Button(p ButtonProps) (g.Node, error) {
	style, err := ButtonStyle(p)
	if err != nil {
		return nil, err
	}

	buttonType := p.Type
	if !buttonTypes[buttonType] {
		buttonType = "button"
	}

	var content g.Node
	if p.Loading {
		content = g.Group{spinner(), html.Span(g.Text("Loading..."))}
	} else {
		content = g.Group{
			icon(p.LeftIcon, "inline-block"),
			g.Text(p.Label),
			icon(p.RightIcon, "inline-block"),
		}
	}

	return html.Button(
		html.Type(buttonType),
		html.Class(style.Classes()),
		g.If(p.Disabled || p.Loading, html.Disabled()),
		g.If(p.Loading, g.Attr("aria-busy", "true")),
		content,
	), nil
}

func spinner() g.Node {
	return g.El("svg",
		g.Attr("class", "animate-spin h-4 w-4"),
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("fill", "none"),
		g.Attr("viewBox", "0 0 24 24"),
		g.El("circle",
			g.Attr("class", "opacity-25"),
			g.Attr("cx", "12"), g.Attr("cy", "12"), g.Attr("r", "10"),
			g.Attr("stroke", "currentColor"), g.Attr("stroke-width", "4"),
		),
		g.El("path",
			g.Attr("class", "opacity-75"),
			g.Attr("fill", "currentColor"),
			g.Attr("d", "M4 12a8 8 0 018-8V0C5.373 0 0 5.373 0 12h4zm2 5.291A7.962 7.962 0 014 12H0c0 3.042 1.135 5.824 3 7.938l3-2.647z"),
		),
	)
}
