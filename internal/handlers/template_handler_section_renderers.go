package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"portfolio-backend/internal/components"
	"portfolio-backend/internal/models"
)

var errMissingChart = errors.New("chart section has no chart")

func renderHeroSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	actions, err := actionLinks(section.Actions)
	if err != nil {
		return nil, err
	}

	return html.Div(html.Class("py-12 space-y-6"),
		html.H1(html.Class("text-5xl font-bold tracking-tight"), g.Text(section.Title)),
		g.If(section.Subtitle != "", html.P(html.Class("text-xl text-gray-600 dark:text-gray-300"), g.Text(section.Subtitle))),
		rawHTML(section.Body),
		actions,
	), nil
}

func renderSkillsSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	return html.Div(
		sectionHeading(section),
		html.Div(html.Class("grid gap-6 md:grid-cols-2"),
			g.Map(section.Skills, skillBar),
		),
	), nil
}

// skillBar draws a labelled meter. Colours are either a utility class or a
// literal colour value.
func skillBar(skill models.Skill) g.Node {
	level := skill.Level
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	barClass := "skill-bar h-2 rounded-full"
	style := "width: " + strconv.Itoa(level) + "%"
	switch {
	case skill.Color == "":
		barClass += " bg-blue-500"
	case strings.HasPrefix(skill.Color, "#"):
		style += "; background-color: " + skill.Color
	default:
		barClass += " " + skill.Color
	}

	return html.Div(html.Class("space-y-2"),
		html.Div(html.Class("flex justify-between text-sm"),
			html.Span(html.Class("font-medium"), g.Text(skill.Name)),
			html.Span(html.Class("text-gray-500"), g.Text(strconv.Itoa(level)+"%")),
		),
		html.Div(html.Class("h-2 w-full rounded-full bg-gray-200 dark:bg-gray-700"),
			g.Attr("role", "meter"),
			g.Attr("aria-valuemin", "0"),
			g.Attr("aria-valuemax", "100"),
			g.Attr("aria-valuenow", strconv.Itoa(level)),
			g.Attr("aria-label", skill.Name),
			html.Div(html.Class(barClass), g.Attr("style", style)),
		),
	)
}

func renderAchievementsSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	cards := make([]g.Node, 0, len(section.Achievements))
	for _, achievement := range section.Achievements {
		card, err := components.Card(components.CardProps{
			Hoverable: true,
			Children: []g.Node{
				g.If(achievement.Icon != "", html.Div(html.Class("text-3xl mb-3"), g.Attr("aria-hidden", "true"), g.Text(achievement.Icon))),
				html.H3(html.Class("text-lg font-semibold mb-2"), g.Text(achievement.Title)),
				g.If(achievement.Description != "", html.P(html.Class("text-sm text-gray-600 dark:text-gray-300 mb-3"), g.Text(achievement.Description))),
				g.If(achievement.Impact != "", html.P(html.Class("text-sm font-semibold text-green-600 dark:text-green-400 mb-3"), g.Text(achievement.Impact))),
				tagList(achievement.Tech),
			},
		})
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return html.Div(
		sectionHeading(section),
		html.Div(html.Class("grid gap-6 md:grid-cols-2 lg:grid-cols-3"), g.Group(cards)),
	), nil
}

func renderProjectsSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	cards := make([]g.Node, 0, len(section.Cards))
	for _, item := range section.Cards {
		card, err := components.Card(components.CardProps{
			Shadow:    components.ShadowMedium,
			Padding:   components.PaddingLarge,
			Hoverable: item.Href != "",
			Href:      item.Href,
			Children:  projectBody(item),
		})
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return html.Div(
		sectionHeading(section),
		html.Div(html.Class("grid gap-8 lg:grid-cols-2"), g.Group(cards)),
	), nil
}

func projectBody(item models.Card) []g.Node {
	return []g.Node{
		html.Div(html.Class("flex items-start gap-3 mb-3"),
			g.If(item.Icon != "", html.Span(html.Class("text-3xl"), g.Attr("aria-hidden", "true"), g.Text(item.Icon))),
			html.Div(
				html.H3(html.Class("text-xl font-semibold"), g.Text(item.Title)),
				g.If(item.Subtitle != "", html.P(html.Class("text-sm text-gray-500"), g.Text(item.Subtitle))),
			),
			g.If(item.Status != "", html.Span(html.Class("ml-auto rounded bg-green-100 px-2 py-0.5 text-xs text-green-800"), g.Text(item.Status))),
		),
		g.If(item.Description != "", html.P(html.Class("text-gray-600 dark:text-gray-300 mb-4"), g.Text(item.Description))),
		featureList(item.Features),
		metricGrid(item.Metrics),
		tagList(item.Tags),
	}
}

func featureList(features []string) g.Node {
	if len(features) == 0 {
		return nil
	}
	return html.Ul(html.Class("mb-4 space-y-1 text-sm text-gray-700 dark:text-gray-300"),
		g.Map(features, func(feature string) g.Node {
			return html.Li(html.Class("flex gap-2"),
				html.Span(html.Class("text-green-500"), g.Attr("aria-hidden", "true"), g.Text("✓")),
				g.Text(feature),
			)
		}),
	)
}

func metricGrid(metrics []models.Metric) g.Node {
	if len(metrics) == 0 {
		return nil
	}
	return html.Dl(html.Class("mb-4 grid grid-cols-2 gap-3"),
		g.Map(metrics, func(metric models.Metric) g.Node {
			return html.Div(html.Class("rounded bg-gray-50 p-3 dark:bg-gray-700"),
				html.Dt(html.Class("text-xs text-gray-500"), g.Text(metric.Label)),
				html.Dd(html.Class("text-sm font-semibold"), g.Text(metric.Value)),
			)
		}),
	)
}

func renderCardsSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	cards := make([]g.Node, 0, len(section.Cards))
	for _, item := range section.Cards {
		card, err := components.Card(components.CardProps{
			Title:     item.Title,
			Subtitle:  item.Subtitle,
			Padding:   components.PaddingMedium,
			Hoverable: item.Href != "",
			Href:      item.Href,
			Children: []g.Node{
				html.Div(html.Class("space-y-3"),
					g.If(item.Icon != "", html.Div(html.Class("text-2xl"), g.Attr("aria-hidden", "true"), g.Text(item.Icon))),
					g.If(item.Description != "", html.P(html.Class("text-sm text-gray-600 dark:text-gray-300"), g.Text(item.Description))),
					featureList(item.Features),
					metricGrid(item.Metrics),
					tagList(item.Tags),
				),
			},
		})
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return html.Div(
		sectionHeading(section),
		html.Div(html.Class("grid gap-6 md:grid-cols-2 lg:grid-cols-3"), g.Group(cards)),
	), nil
}

func renderChartSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	if section.Chart == nil {
		return nil, errMissingChart
	}
	chart, err := ChartNode(*section.Chart)
	if err != nil {
		return nil, err
	}
	return html.Div(
		sectionHeading(section),
		html.Div(html.Class("rounded-lg border border-gray-200 bg-white p-6 dark:border-gray-700 dark:bg-gray-800"), chart),
	), nil
}

// ChartNode renders a content chart with the matching chart component.
func ChartNode(chart models.Chart) (g.Node, error) {
	switch chart.Type {
	case models.ChartBar:
		return components.BarChart(components.BarChartProps{
			ChartOptions: chart.Options,
			Data:         chart.Data,
			Bars:         chart.Series,
			ColorByValue: chart.ColorByValue,
		})
	case models.ChartLine:
		return components.LineChart(components.LineChartProps{
			ChartOptions: chart.Options,
			Data:         chart.Data,
			Lines:        chart.Series,
			ShowPoints:   true,
		})
	case models.ChartArea:
		return components.AreaChart(components.AreaChartProps{
			ChartOptions: chart.Options,
			Data:         chart.Data,
			Areas:        chart.Series,
		})
	case models.ChartPie:
		return components.PieChart(components.PieChartProps{
			ChartOptions: chart.Options,
			Slices:       chart.Slices,
			ShowLabels:   true,
		})
	case models.ChartRadar:
		return components.RadarChart(components.RadarChartProps{
			ChartOptions: chart.Options,
			Data:         chart.Data,
			Series:       chart.Series,
			Max:          chart.Max,
		})
	default:
		return nil, fmt.Errorf("unknown chart type %q", chart.Type)
	}
}

func renderHTMLSection(h *TemplateHandler, section models.Section) (g.Node, error) {
	actions, err := actionLinks(section.Actions)
	if err != nil {
		return nil, err
	}
	if section.Title == "" && strings.TrimSpace(section.Body) == "" && actions == nil {
		return nil, nil
	}

	return html.Div(html.Class("space-y-6"),
		sectionHeading(section),
		rawHTML(section.Body),
		actions,
	), nil
}
