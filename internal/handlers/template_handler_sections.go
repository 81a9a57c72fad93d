package handlers

import (
	"fmt"
	"html/template"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"portfolio-backend/internal/components"
	"portfolio-backend/internal/models"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validator"
)

// SectionRenderer turns one content section into markup.
type SectionRenderer func(h *TemplateHandler, section models.Section) (g.Node, error)

// RegisterSectionRenderer installs or replaces the renderer of a section kind.
func (h *TemplateHandler) RegisterSectionRenderer(kind models.SectionKind, renderer SectionRenderer) {
	if kind == "" || renderer == nil {
		return
	}

	if h.sectionRenderers == nil {
		h.sectionRenderers = make(map[models.SectionKind]SectionRenderer)
	}

	h.sectionRenderers[kind] = renderer
}

func (h *TemplateHandler) registerDefaultSectionRenderers() {
	h.RegisterSectionRenderer(models.SectionHero, renderHeroSection)
	h.RegisterSectionRenderer(models.SectionSkills, renderSkillsSection)
	h.RegisterSectionRenderer(models.SectionAchievements, renderAchievementsSection)
	h.RegisterSectionRenderer(models.SectionProjects, renderProjectsSection)
	h.RegisterSectionRenderer(models.SectionCards, renderCardsSection)
	h.RegisterSectionRenderer(models.SectionChart, renderChartSection)
	h.RegisterSectionRenderer(models.SectionHTML, renderHTMLSection)
}

// renderSections renders sections in order. Sections of an unknown kind are
// skipped with a warning; a failing renderer fails the whole page.
func (h *TemplateHandler) renderSections(sections []models.Section) (template.HTML, error) {
	nodes := make([]g.Node, 0, len(sections))

	for i, section := range sections {
		renderer, ok := h.sectionRenderers[section.Kind]
		if !ok {
			logger.Warn("Skipping section with unknown kind", map[string]interface{}{"kind": section.Kind, "index": i})
			continue
		}

		node, err := renderer(h, section)
		if err != nil {
			return "", fmt.Errorf("section %d (%s): %w", i, section.Kind, err)
		}
		if node == nil {
			continue
		}

		nodes = append(nodes, html.Section(
			g.If(section.ID != "", html.ID(section.ID)),
			html.Class("page-section page-section--"+string(section.Kind)+" scroll-mt-8"),
			node,
		))
	}

	markup, err := components.Render(g.Group(nodes))
	if err != nil {
		return "", err
	}
	return template.HTML(markup), nil
}

func sectionHeading(section models.Section) g.Node {
	if strings.TrimSpace(section.Title) == "" {
		return nil
	}
	return html.Div(html.Class("mb-8 space-y-2"),
		html.H2(html.Class("text-3xl font-bold"), g.Text(section.Title)),
		g.If(section.Subtitle != "", html.P(html.Class("text-gray-600 dark:text-gray-300"), g.Text(section.Subtitle))),
	)
}

// actionLinks renders links styled as buttons; the first is primary.
func actionLinks(actions []models.Link) (g.Node, error) {
	if len(actions) == 0 {
		return nil, nil
	}

	links := make([]g.Node, 0, len(actions))
	for i, action := range actions {
		variant := components.ButtonSecondary
		if i == 0 {
			variant = components.ButtonPrimary
		}
		style, err := components.ButtonStyle(components.ButtonProps{Variant: variant, Size: components.SizeLarge})
		if err != nil {
			return nil, err
		}
		links = append(links, html.A(
			html.Href(action.URL),
			html.Class(style.Classes()+" inline-flex items-center gap-2"),
			g.If(action.External, g.Group([]g.Node{html.Target("_blank"), html.Rel("noopener noreferrer")})),
			g.If(action.Icon != "", html.Span(g.Attr("aria-hidden", "true"), g.Text(action.Icon))),
			g.Text(action.Label),
		))
	}
	return html.Div(html.Class("flex flex-wrap gap-4"), g.Group(links)), nil
}

func tagList(tags []string) g.Node {
	if len(tags) == 0 {
		return nil
	}
	return html.Div(html.Class("flex flex-wrap gap-2"),
		g.Map(tags, func(tag string) g.Node {
			return html.Span(html.Class("rounded-full bg-gray-100 px-3 py-1 text-xs text-gray-700 dark:bg-gray-700 dark:text-gray-200"), g.Text(tag))
		}),
	)
}

func rawHTML(body string) g.Node {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	return html.Div(html.Class("prose dark:prose-invert max-w-none"), g.Raw(validator.SanitizeHTML(body)))
}
