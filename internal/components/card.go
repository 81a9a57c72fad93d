package components

import (
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type Padding string

const (
	PaddingNone   Padding = "none"
	PaddingSmall  Padding = "sm"
	PaddingMedium Padding = "md"
	PaddingLarge  Padding = "lg"
)

type Shadow string

const (
	ShadowNone       Shadow = "none"
	ShadowSmall      Shadow = "sm"
	ShadowMedium     Shadow = "md"
	ShadowLarge      Shadow = "lg"
	ShadowExtraLarge Shadow = "xl"
)

var cardPaddings = map[Padding]string{
	PaddingNone:   "",
	PaddingSmall:  "p-4",
	PaddingMedium: "p-6",
	PaddingLarge:  "p-8",
}

var cardShadows = map[Shadow]string{
	ShadowNone:       "",
	ShadowSmall:      "shadow-sm",
	ShadowMedium:     "shadow-md",
	ShadowLarge:      "shadow-lg",
	ShadowExtraLarge: "shadow-xl",
}

type CardProps struct {
	Title     string  `json:"title,omitempty"`
	Subtitle  string  `json:"subtitle,omitempty"`
	Body      string  `json:"body,omitempty"`
	Footer    string  `json:"footer,omitempty"`
	Image     string  `json:"image,omitempty"`
	ImageAlt  string  `json:"image_alt,omitempty"`
	Padding   Padding `json:"padding,omitempty"`
	Shadow    Shadow  `json:"shadow,omitempty"`
	NoBorder  bool    `json:"no_border,omitempty"`
	Hoverable bool    `json:"hoverable,omitempty"`
	Clickable bool    `json:"clickable,omitempty"`
	Href      string  `json:"href,omitempty"`
	Class     string  `json:"class,omitempty"`

	// Children replaces Body when set.
	Children []g.Node `json:"-"`
}

// CardStyle resolves the container style and the padding classes.
func CardStyle(p CardProps) (Style, string, error) {
	_, padding, err := lookup(cardPaddings, p.Padding, PaddingMedium, "card padding")
	if err != nil {
		return Style{}, "", err
	}
	_, shadow, err := lookup(cardShadows, p.Shadow, ShadowMedium, "card shadow")
	if err != nil {
		return Style{}, "", err
	}

	s := Style{Base: "bg-white dark:bg-gray-800 rounded-lg", Variant: shadow, Extra: p.Class}
	if !p.NoBorder {
		s.Size = "border border-gray-200 dark:border-gray-700"
	}
	var state []string
	if p.Hoverable {
		state = append(state, "hover:shadow-lg transition-shadow duration-300 cursor-pointer")
	}
	if p.clickable() {
		state = append(state, "cursor-pointer")
	}
	s.State = strings.Join(state, " ")
	return s, padding, nil
}

func (p CardProps) clickable() bool {
	return p.Clickable || strings.TrimSpace(p.Href) != ""
}

func Card(p CardProps) (g.Node, error) {
	style, padding, err := CardStyle(p)
	if err != nil {
		return nil, err
	}

	body := p.Children
	if len(body) == 0 && p.Body != "" {
		body = []g.Node{g.Text(p.Body)}
	}

	var header g.Node
	if p.Title != "" || p.Subtitle != "" {
		header = html.Div(html.Class("mb-4"),
			g.If(p.Title != "", html.H3(html.Class("text-xl font-semibold text-gray-900 dark:text-white"), g.Text(p.Title))),
			g.If(p.Subtitle != "", html.P(html.Class("mt-1 text-sm text-gray-500 dark:text-gray-400"), g.Text(p.Subtitle))),
		)
	}

	content := g.Group{
		g.If(p.Image != "", html.Div(html.Class("relative w-full h-48 overflow-hidden rounded-t-lg"),
			html.Img(html.Src(p.Image), html.Alt(p.ImageAlt), html.Class("w-full h-full object-cover")),
		)),
		html.Div(html.Class(padding),
			header,
			html.Div(html.Class("text-gray-700 dark:text-gray-300"), g.Group(body)),
		),
		g.If(p.Footer != "", html.Div(
			html.Class(joinClasses("border-t border-gray-200 dark:border-gray-700", padding, "bg-gray-50 dark:bg-gray-800/50 rounded-b-lg")),
			g.Text(p.Footer),
		)),
	}

	if href := strings.TrimSpace(p.Href); href != "" {
		return html.A(html.Href(href), html.Class(joinClasses("block", style.Classes())), content), nil
	}
	if p.Clickable {
		return html.Div(html.Class(style.Classes()), html.Role("button"), html.TabIndex("0"), content), nil
	}
	return html.Div(html.Class(style.Classes()), content), nil
}
