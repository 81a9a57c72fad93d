package components

import (
	"errors"
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
)

var ErrUnknownVariant = errors.New("unknown variant")

// Size is shared by buttons and inputs.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// Style is a resolved style descriptor. Each field holds the classes
// contributed by one prop; Classes joins them in a stable order.
type Style struct {
	Base    string `json:"base"`
	Variant string `json:"variant"`
	Size    string `json:"size"`
	Width   string `json:"width"`
	State   string `json:"state"`
	Extra   string `json:"extra"`
}

func (s Style) Classes() string {
	return joinClasses(s.Base, s.Variant, s.Size, s.Width, s.State, s.Extra)
}

func joinClasses(parts ...string) string {
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, strings.Fields(part)...)
	}
	return strings.Join(fields, " ")
}

// lookup resolves a name in a closed enumeration, falling back to the default
// when the name is empty.
func lookup[K ~string](table map[K]string, name K, fallback K, kind string) (K, string, error) {
	if strings.TrimSpace(string(name)) == "" {
		name = fallback
	}
	name = K(strings.ToLower(strings.TrimSpace(string(name))))
	classes, ok := table[name]
	if !ok {
		return name, "", fmt.Errorf("%w: %s %q", ErrUnknownVariant, kind, name)
	}
	return name, classes, nil
}

// Render writes a node to a string.
func Render(node g.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	var b strings.Builder
	if err := node.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func icon(glyph string, classes string) g.Node {
	if strings.TrimSpace(glyph) == "" {
		return nil
	}
	return g.El("span", g.Attr("class", classes), g.Attr("aria-hidden", "true"), g.Text(glyph))
}
