package components

import (
	"fmt"
	"math"

	g "maragu.dev/gomponents"
)

type Slice struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color,omitempty" yaml:"color"`
}

type PieChartProps struct {
	ChartOptions
	Slices      []Slice `json:"slices" yaml:"slices"`
	InnerRadius float64 `json:"inner_radius,omitempty" yaml:"inner_radius"`
	ShowLabels  bool    `json:"show_labels,omitempty" yaml:"show_labels"`
}

type RadarChartProps struct {
	ChartOptions
	Data   []Datum  `json:"data" yaml:"data"`
	Series []Series `json:"series" yaml:"series"`
	Max    float64  `json:"max,omitempty" yaml:"max"`
}

// SliceAngle is the sweep of one pie slice in radians.
type SliceAngle struct {
	Start, End float64
	Share      float64
}

// PieAngles splits the circle between slices proportionally. Slices with a
// non-positive value get an empty sweep.
func PieAngles(slices []Slice) ([]SliceAngle, error) {
	total := 0.0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return nil, ErrEmptyChart
	}

	angles := make([]SliceAngle, len(slices))
	start := -math.Pi / 2
	for i, s := range slices {
		share := math.Max(s.Value, 0) / total
		end := start + share*2*math.Pi
		angles[i] = SliceAngle{Start: start, End: end, Share: share}
		start = end
	}
	return angles, nil
}

func PieChart(p PieChartProps) (g.Node, error) {
	angles, err := PieAngles(p.Slices)
	if err != nil {
		return nil, err
	}

	height := p.height()
	cx, cy := chartWidth/2, height/2
	r := math.Min(chartWidth, height)/2 - 20

	shapes := g.Group{}
	entries := make([]legendEntry, 0, len(p.Slices))
	for i, s := range p.Slices {
		color := s.Color
		if color == "" {
			color = PaletteColor(i)
		}
		entries = append(entries, legendEntry{label: s.Name, color: color})

		a := angles[i]
		if a.Share <= 0 {
			continue
		}
		shapes = append(shapes, g.El("path",
			g.Attr("d", arcPath(cx, cy, r, a)),
			g.Attr("fill", color),
			g.Attr("stroke", "#ffffff"),
			g.El("title", g.Text(fmt.Sprintf("%s: %s", s.Name, formatFloat(s.Value)))),
		))
		if p.ShowLabels {
			mid := (a.Start + a.End) / 2
			lx, ly := cx+math.Cos(mid)*r*0.7, cy+math.Sin(mid)*r*0.7
			shapes = append(shapes, text(lx, ly, "middle", fmt.Sprintf("%s%%", formatFloat(a.Share*100)), "text-xs fill-white"))
		}
	}
	if p.InnerRadius > 0 && p.InnerRadius < r {
		shapes = append(shapes, circle(cx, cy, p.InnerRadius, "#ffffff"))
	}

	svg := svgRoot(p.ChartOptions, chartLabel("Pie chart", p.Title), shapes)
	return chartFrame(p.ChartOptions, "pie", svg, legend(entries)), nil
}

func arcPath(cx, cy, r float64, a SliceAngle) string {
	if a.Share >= 1 {
		return fmt.Sprintf("M %s %s m -%s 0 a %s %s 0 1 0 %s 0 a %s %s 0 1 0 -%s 0",
			formatFloat(cx), formatFloat(cy), formatFloat(r),
			formatFloat(r), formatFloat(r), formatFloat(2*r),
			formatFloat(r), formatFloat(r), formatFloat(2*r))
	}
	x1, y1 := cx+math.Cos(a.Start)*r, cy+math.Sin(a.Start)*r
	x2, y2 := cx+math.Cos(a.End)*r, cy+math.Sin(a.End)*r
	large := 0
	if a.End-a.Start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
		formatFloat(cx), formatFloat(cy),
		formatFloat(x1), formatFloat(y1),
		formatFloat(r), formatFloat(r), large,
		formatFloat(x2), formatFloat(y2))
}

// RadarChart draws one polygon per series over axes taken from the data
// labels.
func RadarChart(p RadarChartProps) (g.Node, error) {
	if len(p.Data) < 3 || len(p.Series) == 0 {
		return nil, ErrEmptyChart
	}

	height := p.height()
	cx, cy := chartWidth/2, height/2
	r := math.Min(chartWidth, height)/2 - 40

	max := p.Max
	if max <= 0 {
		max = NiceMax(stackedMax(p.Data, p.Series))
	}

	axis := func(i int, ratio float64) (float64, float64) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(p.Data))
		return cx + math.Cos(angle)*r*ratio, cy + math.Sin(angle)*r*ratio
	}

	shapes := g.Group{}
	if !p.HideGrid {
		for level := 1; level <= 4; level++ {
			ring := make([][2]float64, 0, len(p.Data))
			for i := range p.Data {
				x, y := axis(i, float64(level)/4)
				ring = append(ring, [2]float64{x, y})
			}
			shapes = append(shapes, g.El("polygon",
				g.Attr("points", points(ring)), g.Attr("fill", "none"), g.Attr("stroke", "#e5e7eb"),
			))
		}
	}
	for i, d := range p.Data {
		x, y := axis(i, 1)
		shapes = append(shapes, line(cx, cy, x, y, "#e5e7eb", ""))
		lx, ly := axis(i, 1.12)
		shapes = append(shapes, text(lx, ly+4, "middle", d.Label, "text-xs fill-gray-600"))
	}

	for si, s := range p.Series {
		poly := make([][2]float64, 0, len(p.Data))
		for i, d := range p.Data {
			ratio := math.Max(0, math.Min(1, d.Values[s.Key]/max))
			x, y := axis(i, ratio)
			poly = append(poly, [2]float64{x, y})
		}
		color := seriesColor(s, si)
		shapes = append(shapes, g.El("polygon",
			g.Attr("points", points(poly)),
			g.Attr("fill", color), g.Attr("fill-opacity", "0.3"),
			g.Attr("stroke", color), g.Attr("stroke-width", "2"),
		))
	}

	svg := svgRoot(p.ChartOptions, chartLabel("Radar chart", p.Title), shapes)
	return chartFrame(p.ChartOptions, "radar", svg, legend(seriesLegend(p.Series))), nil
}
