package components

import (
	"fmt"

	g "maragu.dev/gomponents"
)

type BarChartProps struct {
	ChartOptions
	Data         []Datum  `json:"data" yaml:"data"`
	Bars         []Series `json:"bars" yaml:"bars"`
	BarSize      float64  `json:"bar_size,omitempty" yaml:"bar_size"`
	ColorByValue bool     `json:"color_by_value,omitempty" yaml:"color_by_value"`
}

type LineChartProps struct {
	ChartOptions
	Data       []Datum  `json:"data" yaml:"data"`
	Lines      []Series `json:"lines" yaml:"lines"`
	ShowPoints bool     `json:"show_points,omitempty" yaml:"show_points"`
}

type AreaChartProps struct {
	ChartOptions
	Data  []Datum  `json:"data" yaml:"data"`
	Areas []Series `json:"areas" yaml:"areas"`
}

// BarChart renders grouped bars, stacking series that share a StackID. With
// ColorByValue the first series is coloured along a red to green scale.
func BarChart(p BarChartProps) (g.Node, error) {
	if len(p.Data) == 0 || len(p.Bars) == 0 {
		return nil, ErrEmptyChart
	}

	area := newPlotArea(p.ChartOptions)
	rawMax := stackedMax(p.Data, p.Bars)
	max := NiceMax(rawMax)

	slots := barSlots(p.Bars)
	groupWidth := area.width / float64(len(p.Data))
	barWidth := groupWidth * 0.8 / float64(len(slots.order))
	if p.BarSize > 0 && p.BarSize < barWidth {
		barWidth = p.BarSize
	}
	inner := barWidth * float64(len(slots.order))

	bars := g.Group{}
	for i, d := range p.Data {
		groupLeft := area.left + groupWidth*float64(i) + (groupWidth-inner)/2
		offsets := map[string]float64{}
		for si, s := range p.Bars {
			value := d.Values[s.Key]
			slot := slots.index[si]
			base := 0.0
			if s.StackID != "" {
				base = offsets[s.StackID]
				offsets[s.StackID] = base + value
			}
			top := area.y(base+value, max)
			bottom := area.y(base, max)

			color := seriesColor(s, si)
			if p.ColorByValue && si == 0 {
				color = ValueColor(value, rawMax)
			}

			bars = append(bars, g.El("rect",
				g.Attr("x", formatFloat(groupLeft+barWidth*float64(slot))),
				g.Attr("y", formatFloat(top)),
				g.Attr("width", formatFloat(barWidth)),
				g.Attr("height", formatFloat(bottom-top)),
				g.Attr("fill", color),
				g.El("title", g.Text(fmt.Sprintf("%s %s: %s", d.Label, s.label(), formatFloat(value)))),
			))
		}
	}

	svg := svgRoot(p.ChartOptions, chartLabel("Bar chart", p.Title),
		grid(area, max, p.HideGrid),
		bars,
		axes(area, p.ChartOptions),
		categoryLabels(area, p.Data),
	)
	return chartFrame(p.ChartOptions, "bar", svg, legend(seriesLegend(p.Bars))), nil
}

type slotLayout struct {
	order []string
	index []int
}

// barSlots assigns a horizontal slot to every series; stacked series share
// the slot of their stack.
func barSlots(series []Series) slotLayout {
	layout := slotLayout{index: make([]int, len(series))}
	positions := map[string]int{}
	for i, s := range series {
		key := "series:" + s.Key
		if s.StackID != "" {
			key = "stack:" + s.StackID
		}
		pos, ok := positions[key]
		if !ok {
			pos = len(layout.order)
			positions[key] = pos
			layout.order = append(layout.order, key)
		}
		layout.index[i] = pos
	}
	return layout
}

func LineChart(p LineChartProps) (g.Node, error) {
	if len(p.Data) == 0 || len(p.Lines) == 0 {
		return nil, ErrEmptyChart
	}

	area := newPlotArea(p.ChartOptions)
	max := NiceMax(stackedMax(p.Data, p.Lines))

	paths := g.Group{}
	for si, s := range p.Lines {
		coords := seriesCoords(area, p.Data, s, max, nil)
		color := seriesColor(s, si)
		paths = append(paths, g.El("polyline",
			g.Attr("points", points(coords)),
			g.Attr("fill", "none"),
			g.Attr("stroke", color),
			g.Attr("stroke-width", "2"),
			g.If(s.Dashed, g.Attr("stroke-dasharray", "5 5")),
		))
		if p.ShowPoints {
			for _, c := range coords {
				paths = append(paths, circle(c[0], c[1], 3, color))
			}
		}
	}

	svg := svgRoot(p.ChartOptions, chartLabel("Line chart", p.Title),
		grid(area, max, p.HideGrid),
		paths,
		axes(area, p.ChartOptions),
		categoryLabels(area, p.Data),
	)
	return chartFrame(p.ChartOptions, "line", svg, legend(seriesLegend(p.Lines))), nil
}

// AreaChart renders filled areas. Series sharing a StackID are drawn on top
// of each other.
func AreaChart(p AreaChartProps) (g.Node, error) {
	if len(p.Data) == 0 || len(p.Areas) == 0 {
		return nil, ErrEmptyChart
	}

	area := newPlotArea(p.ChartOptions)
	max := NiceMax(stackedMax(p.Data, p.Areas))

	stacks := map[string][]float64{}
	shapes := g.Group{}
	for si, s := range p.Areas {
		var base []float64
		if s.StackID != "" {
			base = stacks[s.StackID]
			if base == nil {
				base = make([]float64, len(p.Data))
			}
		}

		top := seriesCoords(area, p.Data, s, max, base)
		bottom := make([][2]float64, 0, len(top))
		for i := len(p.Data) - 1; i >= 0; i-- {
			b := 0.0
			if base != nil {
				b = base[i]
			}
			bottom = append(bottom, [2]float64{top[i][0], area.y(b, max)})
		}

		if s.StackID != "" {
			next := make([]float64, len(p.Data))
			for i, d := range p.Data {
				next[i] = base[i] + d.Values[s.Key]
			}
			stacks[s.StackID] = next
		}

		color := seriesColor(s, si)
		shapes = append(shapes,
			g.El("polygon",
				g.Attr("points", points(append(append([][2]float64{}, top...), bottom...))),
				g.Attr("fill", color),
				g.Attr("fill-opacity", "0.3"),
			),
			g.El("polyline",
				g.Attr("points", points(top)),
				g.Attr("fill", "none"),
				g.Attr("stroke", color),
				g.Attr("stroke-width", "2"),
			),
		)
	}

	svg := svgRoot(p.ChartOptions, chartLabel("Area chart", p.Title),
		grid(area, max, p.HideGrid),
		shapes,
		axes(area, p.ChartOptions),
		categoryLabels(area, p.Data),
	)
	return chartFrame(p.ChartOptions, "area", svg, legend(seriesLegend(p.Areas))), nil
}

func seriesCoords(area plotArea, data []Datum, s Series, max float64, base []float64) [][2]float64 {
	step := area.width / float64(len(data))
	coords := make([][2]float64, 0, len(data))
	for i, d := range data {
		value := d.Values[s.Key]
		if base != nil {
			value += base[i]
		}
		coords = append(coords, [2]float64{area.left + step*(float64(i)+0.5), area.y(value, max)})
	}
	return coords
}

func circle(cx, cy, r float64, fill string) g.Node {
	return g.El("circle",
		g.Attr("cx", formatFloat(cx)), g.Attr("cy", formatFloat(cy)),
		g.Attr("r", formatFloat(r)), g.Attr("fill", fill),
	)
}

func chartLabel(kind, title string) string {
	if title == "" {
		return kind
	}
	return kind + ": " + title
}
