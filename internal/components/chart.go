package components

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

var ErrEmptyChart = errors.New("chart has no data")

const (
	chartWidth         = 600.0
	defaultChartHeight = 400
	chartMarginTop     = 20.0
	chartMarginRight   = 20.0
	chartMarginBottom  = 50.0
	chartMarginLeft    = 60.0
	gridLines          = 5
)

// Datum is one category of a cartesian or radar chart.
type Datum struct {
	Label  string             `json:"label" yaml:"label"`
	Values map[string]float64 `json:"values" yaml:"values"`
}

// Series describes one plotted key.
type Series struct {
	Key     string `json:"key" yaml:"key"`
	Name    string `json:"name,omitempty" yaml:"name"`
	Color   string `json:"color,omitempty" yaml:"color"`
	StackID string `json:"stack_id,omitempty" yaml:"stack_id"`
	Dashed  bool   `json:"dashed,omitempty" yaml:"dashed"`
}

func (s Series) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Key
}

// ChartOptions holds the switches shared by every chart kind.
type ChartOptions struct {
	Title      string `json:"title,omitempty" yaml:"title"`
	Height     int    `json:"height,omitempty" yaml:"height"`
	HideGrid   bool   `json:"hide_grid,omitempty" yaml:"hide_grid"`
	HideLegend bool   `json:"hide_legend,omitempty" yaml:"hide_legend"`
	XAxisLabel string `json:"x_axis_label,omitempty" yaml:"x_axis_label"`
	YAxisLabel string `json:"y_axis_label,omitempty" yaml:"y_axis_label"`
	Class      string `json:"class,omitempty" yaml:"class"`
}

func (o ChartOptions) height() float64 {
	if o.Height <= 0 {
		return defaultChartHeight
	}
	return float64(o.Height)
}

// PaletteColor is the fallback colour of the series at index.
func PaletteColor(index int) string {
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", (index*60)%360)
}

// ValueColor maps a value onto a red to green hue relative to max.
func ValueColor(value, max float64) string {
	if max <= 0 {
		return "hsl(0, 70%, 50%)"
	}
	ratio := math.Max(0, math.Min(1, value/max))
	return fmt.Sprintf("hsl(%s, 70%%, 50%%)", formatFloat(ratio*120))
}

func seriesColor(s Series, index int) string {
	if s.Color != "" {
		return s.Color
	}
	return PaletteColor(index)
}

type plotArea struct {
	left, top, width, height float64
}

func newPlotArea(opts ChartOptions) plotArea {
	return plotArea{
		left:   chartMarginLeft,
		top:    chartMarginTop,
		width:  chartWidth - chartMarginLeft - chartMarginRight,
		height: opts.height() - chartMarginTop - chartMarginBottom,
	}
}

func (p plotArea) bottom() float64 { return p.top + p.height }

func (p plotArea) y(value, max float64) float64 {
	if max <= 0 {
		return p.bottom()
	}
	return p.bottom() - value/max*p.height
}

// NiceMax rounds a maximum up to a value that divides evenly into grid lines.
func NiceMax(max float64) float64 {
	if max <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(max)))
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		candidate := step * magnitude
		if candidate >= max {
			return candidate
		}
	}
	return 10 * magnitude
}

// stackedMax returns the largest value reached by any series or stack.
func stackedMax(data []Datum, series []Series) float64 {
	max := 0.0
	for _, d := range data {
		stacks := map[string]float64{}
		for _, s := range series {
			v := d.Values[s.Key]
			if s.StackID != "" {
				stacks[s.StackID] += v
				max = math.Max(max, stacks[s.StackID])
				continue
			}
			max = math.Max(max, v)
		}
	}
	return max
}

func svgRoot(opts ChartOptions, label string, children ...g.Node) g.Node {
	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("viewBox", fmt.Sprintf("0 0 %s %s", formatFloat(chartWidth), formatFloat(opts.height()))),
		g.Attr("role", "img"),
		g.Attr("aria-label", label),
		g.Attr("class", "w-full h-auto"),
		g.Group(children),
	)
}

func chartFrame(opts ChartOptions, kind string, svg g.Node, legend g.Node) g.Node {
	return html.Figure(html.Class(joinClasses("w-full", opts.Class)), g.Attr("data-chart", kind),
		g.If(opts.Title != "", html.FigCaption(html.Class("mb-2 text-sm font-semibold text-gray-900 dark:text-gray-100"), g.Text(opts.Title))),
		svg,
		g.If(!opts.HideLegend, legend),
	)
}

func legend(entries []legendEntry) g.Node {
	if len(entries) == 0 {
		return nil
	}
	return html.Ul(html.Class("mt-3 flex flex-wrap gap-4 text-sm text-gray-700 dark:text-gray-300"),
		g.Map(entries, func(e legendEntry) g.Node {
			return html.Li(html.Class("flex items-center gap-2"),
				html.Span(html.Class("inline-block w-3 h-3 rounded-sm"), g.Attr("style", "background-color: "+e.color)),
				g.Text(e.label),
			)
		}),
	)
}

type legendEntry struct {
	label string
	color string
}

func seriesLegend(series []Series) []legendEntry {
	entries := make([]legendEntry, 0, len(series))
	for i, s := range series {
		entries = append(entries, legendEntry{label: s.label(), color: seriesColor(s, i)})
	}
	return entries
}

func grid(area plotArea, max float64, hide bool) g.Node {
	nodes := g.Group{}
	for i := 0; i <= gridLines; i++ {
		value := max / gridLines * float64(i)
		y := area.y(value, max)
		if !hide {
			nodes = append(nodes, line(area.left, y, area.left+area.width, y, "#e5e7eb", "3 3"))
		}
		nodes = append(nodes, text(area.left-8, y+4, "end", formatFloat(value), "text-xs fill-gray-500"))
	}
	return nodes
}

func axes(area plotArea, opts ChartOptions) g.Node {
	nodes := g.Group{
		line(area.left, area.bottom(), area.left+area.width, area.bottom(), "#9ca3af", ""),
		line(area.left, area.top, area.left, area.bottom(), "#9ca3af", ""),
	}
	if opts.XAxisLabel != "" {
		nodes = append(nodes, text(area.left+area.width/2, area.bottom()+40, "middle", opts.XAxisLabel, "text-sm fill-gray-700"))
	}
	if opts.YAxisLabel != "" {
		x, y := 14.0, area.top+area.height/2
		nodes = append(nodes, g.El("text",
			g.Attr("x", formatFloat(x)), g.Attr("y", formatFloat(y)),
			g.Attr("text-anchor", "middle"),
			g.Attr("transform", fmt.Sprintf("rotate(-90 %s %s)", formatFloat(x), formatFloat(y))),
			g.Attr("class", "text-sm fill-gray-700"),
			g.Text(opts.YAxisLabel),
		))
	}
	return nodes
}

func categoryLabels(area plotArea, data []Datum) g.Node {
	if len(data) == 0 {
		return nil
	}
	step := area.width / float64(len(data))
	nodes := g.Group{}
	for i, d := range data {
		nodes = append(nodes, text(area.left+step*(float64(i)+0.5), area.bottom()+18, "middle", d.Label, "text-xs fill-gray-500"))
	}
	return nodes
}

func line(x1, y1, x2, y2 float64, stroke, dash string) g.Node {
	return g.El("line",
		g.Attr("x1", formatFloat(x1)), g.Attr("y1", formatFloat(y1)),
		g.Attr("x2", formatFloat(x2)), g.Attr("y2", formatFloat(y2)),
		g.Attr("stroke", stroke),
		g.If(dash != "", g.Attr("stroke-dasharray", dash)),
	)
}

func text(x, y float64, anchor, value, class string) g.Node {
	return g.El("text",
		g.Attr("x", formatFloat(x)), g.Attr("y", formatFloat(y)),
		g.Attr("text-anchor", anchor),
		g.Attr("class", class),
		g.Text(value),
	)
}

func points(coords [][2]float64) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, formatFloat(c[0])+","+formatFloat(c[1]))
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
