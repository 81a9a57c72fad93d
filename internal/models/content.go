package models

import (
	"portfolio-backend/internal/components"
)

// SectionKind selects the renderer of a page section.
type SectionKind string

const (
	SectionHero         SectionKind = "hero"
	SectionSkills       SectionKind = "skills"
	SectionAchievements SectionKind = "achievements"
	SectionProjects     SectionKind = "projects"
	SectionCards        SectionKind = "cards"
	SectionChart        SectionKind = "chart"
	SectionHTML         SectionKind = "html"
)

// SectionKinds lists every kind the site knows how to render.
func SectionKinds() []SectionKind {
	return []SectionKind{SectionHero, SectionSkills, SectionAchievements, SectionProjects, SectionCards, SectionChart, SectionHTML}
}

func (k SectionKind) Valid() bool {
	for _, known := range SectionKinds() {
		if k == known {
			return true
		}
	}
	return false
}

type Content struct {
	Profile Profile `json:"profile" yaml:"profile"`
	Pages   []Page  `json:"pages" yaml:"pages" validate:"required,min=1,dive"`
}

type Profile struct {
	Name     string `json:"name" yaml:"name" validate:"required,notblank,no_html"`
	Headline string `json:"headline" yaml:"headline" validate:"required,notblank,no_html"`
	Tagline  string `json:"tagline,omitempty" yaml:"tagline" validate:"no_html"`
	Summary  string `json:"summary,omitempty" yaml:"summary"`
	Email    string `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	Footer   string `json:"footer,omitempty" yaml:"footer" validate:"no_html"`
	Links    []Link `json:"links,omitempty" yaml:"links" validate:"dive"`
}

type Link struct {
	Label    string `json:"label" yaml:"label" validate:"required,notblank,no_html"`
	URL      string `json:"url" yaml:"url" validate:"required"`
	Icon     string `json:"icon,omitempty" yaml:"icon"`
	External bool   `json:"external,omitempty" yaml:"external"`
}

type Page struct {
	Slug           string    `json:"slug" yaml:"slug" validate:"required,slug"`
	Path           string    `json:"path" yaml:"path" validate:"required,route"`
	Title          string    `json:"title" yaml:"title" validate:"required,notblank,no_html"`
	Description    string    `json:"description,omitempty" yaml:"description" validate:"no_html"`
	Icon           string    `json:"icon,omitempty" yaml:"icon"`
	NavLabel       string    `json:"nav_label,omitempty" yaml:"nav_label" validate:"no_html"`
	NavDescription string    `json:"nav_description,omitempty" yaml:"nav_description" validate:"no_html"`
	HideFromNav    bool      `json:"hide_from_nav,omitempty" yaml:"hide_from_nav"`
	Template       string    `json:"template,omitempty" yaml:"template" validate:"omitempty,oneof=page portfolio"`
	Sections       []Section `json:"sections,omitempty" yaml:"sections" validate:"dive"`
}

// Label is the text shown in navigation.
func (p Page) Label() string {
	if p.NavLabel != "" {
		return p.NavLabel
	}
	return p.Title
}

type Section struct {
	ID           string        `json:"id,omitempty" yaml:"id" validate:"omitempty,slug"`
	Kind         SectionKind   `json:"kind" yaml:"kind" validate:"required"`
	Title        string        `json:"title,omitempty" yaml:"title" validate:"no_html"`
	Subtitle     string        `json:"subtitle,omitempty" yaml:"subtitle" validate:"no_html"`
	Body         string        `json:"body,omitempty" yaml:"body"`
	Actions      []Link        `json:"actions,omitempty" yaml:"actions" validate:"dive"`
	Skills       []Skill       `json:"skills,omitempty" yaml:"skills" validate:"dive"`
	Achievements []Achievement `json:"achievements,omitempty" yaml:"achievements" validate:"dive"`
	Cards        []Card        `json:"cards,omitempty" yaml:"cards" validate:"dive"`
	Chart        *Chart        `json:"chart,omitempty" yaml:"chart"`
}

type Skill struct {
	Name  string `json:"name" yaml:"name" validate:"required,notblank,no_html"`
	Level int    `json:"level" yaml:"level" validate:"min=0,max=100"`
	Color string `json:"color,omitempty" yaml:"color" validate:"omitempty,color"`
}

type Achievement struct {
	Title       string   `json:"title" yaml:"title" validate:"required,notblank,no_html"`
	Description string   `json:"description" yaml:"description" validate:"no_html"`
	Impact      string   `json:"impact,omitempty" yaml:"impact" validate:"no_html"`
	Tech        []string `json:"tech,omitempty" yaml:"tech"`
	Icon        string   `json:"icon,omitempty" yaml:"icon"`
}

// Card is a generic project or feature tile.
type Card struct {
	Title       string   `json:"title" yaml:"title" validate:"required,notblank,no_html"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle" validate:"no_html"`
	Description string   `json:"description,omitempty" yaml:"description" validate:"no_html"`
	Icon        string   `json:"icon,omitempty" yaml:"icon"`
	Status      string   `json:"status,omitempty" yaml:"status" validate:"no_html"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Features    []string `json:"features,omitempty" yaml:"features"`
	Metrics     []Metric `json:"metrics,omitempty" yaml:"metrics" validate:"dive"`
	Href        string   `json:"href,omitempty" yaml:"href" validate:"omitempty,route"`
}

type Metric struct {
	Label string `json:"label" yaml:"label" validate:"required,no_html"`
	Value string `json:"value" yaml:"value" validate:"required"`
}

// ChartType names one of the chart renderers.
type ChartType string

const (
	ChartBar   ChartType = "bar"
	ChartLine  ChartType = "line"
	ChartArea  ChartType = "area"
	ChartPie   ChartType = "pie"
	ChartRadar ChartType = "radar"
)

type Chart struct {
	Type         ChartType               `json:"type" yaml:"type" validate:"required,oneof=bar line area pie radar"`
	Options      components.ChartOptions `json:"options" yaml:"options"`
	Data         []components.Datum      `json:"data,omitempty" yaml:"data"`
	Series       []components.Series     `json:"series,omitempty" yaml:"series"`
	Slices       []components.Slice      `json:"slices,omitempty" yaml:"slices"`
	ColorByValue bool                    `json:"color_by_value,omitempty" yaml:"color_by_value"`
	Max          float64                 `json:"max,omitempty" yaml:"max"`
}
