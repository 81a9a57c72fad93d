package components

import (
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const inputBase = "w-full rounded-lg border transition-all duration-200 focus:outline-none focus:ring-2 focus:ring-offset-1 disabled:bg-gray-100 disabled:cursor-not-allowed dark:disabled:bg-gray-800"

const (
	inputNormal = "border-gray-300 focus:border-blue-500 focus:ring-blue-500/20 dark:border-gray-600 dark:focus:border-blue-400"
	inputError  = "border-red-500 focus:border-red-500 focus:ring-red-500/20 text-red-900 dark:text-red-400"
	inputColors = "bg-white dark:bg-gray-900 text-gray-900 dark:text-gray-100 placeholder-gray-400 dark:placeholder-gray-500"
)

var inputSizes = map[Size]string{
	SizeSmall:  "px-3 py-1.5 text-sm",
	SizeMedium: "px-4 py-2 text-base",
	SizeLarge:  "px-5 py-3 text-lg",
}

var inputIconSizes = map[Size]string{
	SizeSmall:  "w-4 h-4",
	SizeMedium: "w-5 h-5",
	SizeLarge:  "w-6 h-6",
}

type InputProps struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value,omitempty"`
	HelperText  string `json:"helper_text,omitempty"`
	Error       string `json:"error,omitempty"`
	Size        Size   `json:"size,omitempty"`
	FullWidth   bool   `json:"full_width,omitempty"`
	LeftIcon    string `json:"left_icon,omitempty"`
	RightIcon   string `json:"right_icon,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	Class       string `json:"class,omitempty"`
}

// InputStyle resolves the style of the input element itself.
func InputStyle(p InputProps) (Style, error) {
	_, sizeClasses, err := lookup(inputSizes, p.Size, SizeMedium, "input size")
	if err != nil {
		return Style{}, err
	}

	s := Style{Base: inputBase, Variant: inputNormal, Size: sizeClasses, Extra: inputColors}
	if p.Error != "" {
		s.Variant = inputError
	}
	var padding []string
	if p.LeftIcon != "" {
		padding = append(padding, "pl-10")
	}
	if p.RightIcon != "" {
		padding = append(padding, "pr-10")
	}
	s.Width = strings.Join(padding, " ")
	if p.Disabled {
		s.State = "opacity-60"
	}
	return s, nil
}

func Input(p InputProps) (g.Node, error) {
	style, err := InputStyle(p)
	if err != nil {
		return nil, err
	}
	_, iconSize, _ := lookup(inputIconSizes, p.Size, SizeMedium, "input size")

	id := p.ID
	if id == "" {
		id = p.Name
	}
	inputType := p.Type
	if inputType == "" {
		inputType = "text"
	}

	describedBy := ""
	switch {
	case p.Error != "":
		describedBy = id + "-error"
	case p.HelperText != "":
		describedBy = id + "-helper"
	}

	container := "w-auto"
	if p.FullWidth {
		container = "w-full"
	}

	iconClasses := joinClasses("absolute top-1/2 -translate-y-1/2 text-gray-500 dark:text-gray-400", iconSize)

	return html.Div(html.Class(joinClasses(container, p.Class)),
		g.If(p.Label != "", g.El("label",
			g.If(id != "", g.Attr("for", id)),
			html.Class("block mb-2 text-sm font-medium text-gray-700 dark:text-gray-300"),
			g.Text(p.Label),
			g.If(p.Required, html.Span(html.Class("ml-1 text-red-500"), g.Text("*"))),
		)),
		html.Div(html.Class("relative"),
			icon(p.LeftIcon, joinClasses("left-3", iconClasses)),
			html.Input(
				html.Type(inputType),
				html.Class(style.Classes()),
				g.If(id != "", html.ID(id)),
				g.If(p.Name != "", html.Name(p.Name)),
				g.If(p.Placeholder != "", html.Placeholder(p.Placeholder)),
				g.If(p.Value != "", html.Value(p.Value)),
				g.If(p.Required, html.Required()),
				g.If(p.Disabled, html.Disabled()),
				g.Attr("aria-invalid", boolString(p.Error != "")),
				g.If(describedBy != "", g.Attr("aria-describedby", describedBy)),
			),
			icon(p.RightIcon, joinClasses("right-3", iconClasses)),
		),
		g.If(p.Error != "", html.P(html.ID(id+"-error"), html.Class("mt-1 text-sm text-red-600 dark:text-red-400"), g.Text(p.Error))),
		g.If(p.HelperText != "" && p.Error == "", html.P(html.ID(id+"-helper"), html.Class("mt-1 text-sm text-gray-500 dark:text-gray-400"), g.Text(p.HelperText))),
	), nil
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
