package catalog

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"portfolio-backend/internal/components"
)

const (
	buttonComponent  = "Design System/Button"
	cardComponent    = "Design System/Card"
	inputComponent   = "Design System/Input"
	chartsComponent  = "Design System/Charts"
	welcomeComponent = "Introduction"
)

var timeSeries = []components.Datum{
	{Label: "Jan", Values: map[string]float64{"sales": 4000, "revenue": 2400, "profit": 2400}},
	{Label: "Feb", Values: map[string]float64{"sales": 3000, "revenue": 1398, "profit": 2210}},
	{Label: "Mar", Values: map[string]float64{"sales": 2000, "revenue": 9800, "profit": 2290}},
	{Label: "Apr", Values: map[string]float64{"sales": 2780, "revenue": 3908, "profit": 2000}},
	{Label: "May", Values: map[string]float64{"sales": 1890, "revenue": 4800, "profit": 2181}},
	{Label: "Jun", Values: map[string]float64{"sales": 2390, "revenue": 3800, "profit": 2500}},
	{Label: "Jul", Values: map[string]float64{"sales": 3490, "revenue": 4300, "profit": 2100}},
}

var categories = []components.Datum{
	{Label: "Electronics", Values: map[string]float64{"q1": 4000, "q2": 3000, "q3": 2000, "q4": 2780}},
	{Label: "Clothing", Values: map[string]float64{"q1": 3000, "q2": 4000, "q3": 3000, "q4": 2000}},
	{Label: "Food", Values: map[string]float64{"q1": 2000, "q2": 3000, "q3": 3500, "q4": 3900}},
	{Label: "Books", Values: map[string]float64{"q1": 2780, "q2": 3908, "q3": 2000, "q4": 2800}},
	{Label: "Sports", Values: map[string]float64{"q1": 1890, "q2": 2800, "q3": 3100, "q4": 3200}},
}

var devices = []components.Slice{
	{Name: "Desktop", Value: 45},
	{Name: "Mobile", Value: 30},
	{Name: "Tablet", Value: 15},
	{Name: "Other", Value: 10},
}

var skills = []components.Datum{
	{Label: "React", Values: map[string]float64{"fullStack": 90, "frontend": 95, "backend": 60}},
	{Label: "Node.js", Values: map[string]float64{"fullStack": 85, "frontend": 50, "backend": 95}},
	{Label: "TypeScript", Values: map[string]float64{"fullStack": 88, "frontend": 85, "backend": 80}},
	{Label: "CSS", Values: map[string]float64{"fullStack": 75, "frontend": 90, "backend": 40}},
	{Label: "Database", Values: map[string]float64{"fullStack": 80, "frontend": 45, "backend": 90}},
	{Label: "DevOps", Values: map[string]float64{"fullStack": 70, "frontend": 40, "backend": 85}},
}

var quarters = []components.Series{
	{Key: "q1", Name: "Q1", Color: "#3B82F6", StackID: "stack"},
	{Key: "q2", Name: "Q2", Color: "#10B981", StackID: "stack"},
	{Key: "q3", Name: "Q3", Color: "#F59E0B", StackID: "stack"},
	{Key: "q4", Name: "Q4", Color: "#EF4444", StackID: "stack"},
}

var finance = []components.Series{
	{Key: "sales", Name: "Sales", Color: "#3B82F6"},
	{Key: "revenue", Name: "Revenue", Color: "#10B981"},
	{Key: "profit", Name: "Profit", Color: "#F59E0B"},
}

// Defaults returns a registry holding the built-in stories.
func Defaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func RegisterDefaults(r *Registry) {
	r.MustRegister(welcomeStory())
	registerButtonStories(r)
	registerCardStories(r)
	registerInputStories(r)
	registerChartStories(r)
}

func button(name, description string, props components.ButtonProps) Story {
	return Story{
		Component:   buttonComponent,
		Name:        name,
		Description: description,
		Args:        props,
		Render:      func() (g.Node, error) { return components.Button(props) },
	}
}

func registerButtonStories(r *Registry) {
	r.MustRegister(button("Primary", "Main call to action.", components.ButtonProps{Label: "Primary Button", Variant: components.ButtonPrimary}))
	r.MustRegister(button("Secondary", "Alternative action.", components.ButtonProps{Label: "Secondary Button", Variant: components.ButtonSecondary}))
	r.MustRegister(button("Danger", "Destructive action.", components.ButtonProps{Label: "Delete", Variant: components.ButtonDanger}))
	r.MustRegister(button("Success", "Confirming action.", components.ButtonProps{Label: "Save Changes", Variant: components.ButtonSuccess}))
	r.MustRegister(button("Ghost", "Low emphasis action.", components.ButtonProps{Label: "Cancel", Variant: components.ButtonGhost}))
	r.MustRegister(button("Small", "Compact size.", components.ButtonProps{Label: "Small", Size: components.SizeSmall}))
	r.MustRegister(button("Large", "Prominent size.", components.ButtonProps{Label: "Large", Size: components.SizeLarge}))
	r.MustRegister(button("Disabled", "Non interactive state.", components.ButtonProps{Label: "Disabled", Disabled: true}))
	r.MustRegister(button("Loading", "Pending state with spinner.", components.ButtonProps{Label: "Submit", Loading: true}))
	r.MustRegister(button("FullWidth", "Stretches to its container.", components.ButtonProps{Label: "Full Width Button", FullWidth: true}))
}

func card(name, description string, props components.CardProps) Story {
	return Story{
		Component:   cardComponent,
		Name:        name,
		Description: description,
		Args:        props,
		Render:      func() (g.Node, error) { return components.Card(props) },
	}
}

func registerCardStories(r *Registry) {
	r.MustRegister(card("Default", "Title, subtitle and body.", components.CardProps{
		Title:    "Card Title",
		Subtitle: "Card subtitle goes here",
		Body:     "This is the card content. It can contain any components or text.",
	}))
	r.MustRegister(card("WithImage", "Leading image.", components.CardProps{
		Title:    "Beautiful Landscape",
		Subtitle: "Photography",
		Image:    "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=300&fit=crop",
		ImageAlt: "Mountain landscape",
		Body:     "Stunning mountain views captured during golden hour.",
	}))
	r.MustRegister(card("WithFooter", "Footer separated by a border.", components.CardProps{
		Title:    "Article Card",
		Subtitle: "Published 2 days ago",
		Body:     "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		Footer:   "5 min read",
	}))
	r.MustRegister(card("Hoverable", "Raises its shadow on hover and acts as a button.", components.CardProps{
		Title:     "Interactive Card",
		Subtitle:  "Click me!",
		Body:      "This card has hover effects and can be clicked.",
		Hoverable: true,
		Clickable: true,
	}))
	r.MustRegister(card("NoBorder", "Shadow only.", components.CardProps{
		Title:    "Borderless Card",
		Body:     "This card has no border, only shadow.",
		NoBorder: true,
		Shadow:   components.ShadowLarge,
	}))
}

func input(name, description string, props components.InputProps) Story {
	return Story{
		Component:   inputComponent,
		Name:        name,
		Description: description,
		Args:        props,
		Render:      func() (g.Node, error) { return components.Input(props) },
	}
}

func registerInputStories(r *Registry) {
	r.MustRegister(input("Default", "Plain text field.", components.InputProps{Name: "basic", Placeholder: "Enter text..."}))
	r.MustRegister(input("WithHelper", "Helper text below the field.", components.InputProps{
		Name:        "password",
		Type:        "password",
		Label:       "Password",
		Placeholder: "Enter password",
		HelperText:  "Password must be at least 8 characters long",
	}))
	r.MustRegister(input("WithError", "Error message replaces the helper text.", components.InputProps{
		Name:       "username",
		Label:      "Username",
		Value:      "johndoe",
		HelperText: "Choose a unique name",
		Error:      "Username is already taken",
	}))
	r.MustRegister(input("Required", "Required marker on the label.", components.InputProps{Name: "fullname", Label: "Full Name", Placeholder: "John Doe", Required: true}))
	r.MustRegister(input("Disabled", "Non editable field.", components.InputProps{Name: "disabled", Label: "Disabled Input", Value: "Cannot edit this", Disabled: true}))
	r.MustRegister(Story{
		Component:   inputComponent,
		Name:        "Sizes",
		Description: "Small, medium and large fields.",
		Render: func() (g.Node, error) {
			nodes := g.Group{}
			for _, size := range []components.Size{components.SizeSmall, components.SizeMedium, components.SizeLarge} {
				node, err := components.Input(components.InputProps{
					Name:        "size-" + string(size),
					Label:       "Size " + string(size),
					Placeholder: "Enter text...",
					Size:        size,
				})
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, node)
			}
			return html.Div(html.Class("space-y-4"), nodes), nil
		},
	})
}

func chart(name, description string, args any, render RenderFunc) Story {
	return Story{Component: chartsComponent, Name: name, Description: description, Args: args, Render: render}
}

func registerChartStories(r *Registry) {
	bar := components.BarChartProps{
		ChartOptions: components.ChartOptions{Title: "Quarterly Sales by Category", XAxisLabel: "Category", YAxisLabel: "Sales"},
		Data:         categories,
		Bars:         []components.Series{{Key: "q1", Name: "Q1", Color: "#3B82F6"}, {Key: "q2", Name: "Q2", Color: "#10B981"}},
	}
	stacked := components.BarChartProps{
		ChartOptions: components.ChartOptions{Title: "Stacked Quarterly Sales"},
		Data:         categories,
		Bars:         quarters,
	}
	byValue := components.BarChartProps{
		ChartOptions: components.ChartOptions{Title: "Monthly Sales"},
		Data:         timeSeries,
		Bars:         []components.Series{{Key: "sales", Name: "Sales"}},
		ColorByValue: true,
	}
	line := components.LineChartProps{
		ChartOptions: components.ChartOptions{Title: "Revenue Trend", XAxisLabel: "Month", YAxisLabel: "Amount"},
		Data:         timeSeries,
		Lines: []components.Series{
			{Key: "sales", Name: "Sales (Actual)", Color: "#3B82F6"},
			{Key: "revenue", Name: "Revenue (Projected)", Color: "#10B981", Dashed: true},
		},
		ShowPoints: true,
	}
	area := components.AreaChartProps{
		ChartOptions: components.ChartOptions{Title: "Cumulative Performance"},
		Data:         timeSeries,
		Areas:        stackSeries(finance, "stack"),
	}
	pie := components.PieChartProps{
		ChartOptions: components.ChartOptions{Title: "Traffic by Device"},
		Slices:       devices,
		InnerRadius:  60,
		ShowLabels:   true,
	}
	radar := components.RadarChartProps{
		ChartOptions: components.ChartOptions{Title: "Skill Profile"},
		Data:         skills,
		Series: []components.Series{
			{Key: "fullStack", Name: "Full Stack", Color: "#3B82F6"},
			{Key: "frontend", Name: "Frontend", Color: "#10B981"},
			{Key: "backend", Name: "Backend", Color: "#F59E0B"},
		},
		Max: 100,
	}

	r.MustRegister(chart("Bar", "Grouped bars per category.", bar, func() (g.Node, error) { return components.BarChart(bar) }))
	r.MustRegister(chart("Stacked Bar", "Quarters stacked per category.", stacked, func() (g.Node, error) { return components.BarChart(stacked) }))
	r.MustRegister(chart("Color By Value", "Bars coloured from red to green by value.", byValue, func() (g.Node, error) { return components.BarChart(byValue) }))
	r.MustRegister(chart("Line", "Actual against projected values.", line, func() (g.Node, error) { return components.LineChart(line) }))
	r.MustRegister(chart("Area", "Stacked areas.", area, func() (g.Node, error) { return components.AreaChart(area) }))
	r.MustRegister(chart("Pie", "Donut with percentage labels.", pie, func() (g.Node, error) { return components.PieChart(pie) }))
	r.MustRegister(chart("Radar", "Several profiles over shared axes.", radar, func() (g.Node, error) { return components.RadarChart(radar) }))
}

func stackSeries(series []components.Series, stackID string) []components.Series {
	out := make([]components.Series, len(series))
	for i, s := range series {
		s.StackID = stackID
		out[i] = s
	}
	return out
}

var welcomeHighlights = []string{
	"Fully typed props with closed variant sets",
	"Accessible markup with ARIA attributes",
	"Customizable through variants and sizes",
	"Rendered on the server, no client framework",
}

func welcomeStory() Story {
	return Story{
		Component:   welcomeComponent,
		Name:        "Welcome",
		Description: "Overview of the design system.",
		Render: func() (g.Node, error) {
			return html.Div(html.Class("max-w-3xl space-y-6"),
				html.H1(html.Class("text-4xl font-bold text-gray-900 dark:text-white"), g.Text("Design System")),
				html.P(html.Class("text-lg text-gray-600 dark:text-gray-300"),
					g.Text("A collection of reusable components for the portfolio: buttons, cards, inputs and charts."),
				),
				html.Ul(html.Class("list-disc pl-6 space-y-1 text-gray-700 dark:text-gray-300"),
					g.Map(welcomeHighlights, func(item string) g.Node { return html.Li(g.Text(item)) }),
				),
			), nil
		},
	}
}
