package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio-backend/internal/models"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/utils"
	"portfolio-backend/pkg/validator"
)

//go:embed data/portfolio.yaml
var defaultContent []byte

var ErrInvalidContent = errors.New("invalid content")

// DefaultContent returns the raw embedded content document.
func DefaultContent() []byte {
	return bytes.Clone(defaultContent)
}

// Load reads the content document at path, or the embedded one when path is
// empty.
func Load(path string) (*models.Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		content, err := Parse(defaultContent)
		if err != nil {
			return nil, fmt.Errorf("embedded content: %w", err)
		}
		logger.Debug("Loaded embedded content", map[string]interface{}{"pages": len(content.Pages)})
		return content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	content, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("Loaded content file", map[string]interface{}{"file": path, "pages": len(content.Pages)})
	return content, nil
}

// Parse decodes, normalises and validates a content document. Unknown keys
// are rejected.
func Parse(data []byte) (*models.Content, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var content models.Content
	if err := decoder.Decode(&content); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrInvalidContent)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	normalize(&content)

	if err := validator.Validate(content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := checkConsistency(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

func normalize(content *models.Content) {
	content.Profile.Name = validator.NormalizeSpaces(content.Profile.Name)
	content.Profile.Headline = validator.NormalizeSpaces(content.Profile.Headline)
	content.Profile.Summary = strings.TrimSpace(content.Profile.Summary)

	for i := range content.Pages {
		page := &content.Pages[i]
		page.Title = validator.NormalizeSpaces(page.Title)
		if strings.TrimSpace(page.Slug) == "" {
			page.Slug = page.Title
		}
		page.Slug = utils.GenerateSlug(page.Slug)
		if strings.TrimSpace(page.Path) == "" {
			page.Path = "/" + page.Slug
		}
		page.Path = utils.NormalizePath(page.Path)
		if page.Template == "" {
			page.Template = "page"
		}

		for j := range page.Sections {
			section := &page.Sections[j]
			section.Kind = models.SectionKind(strings.ToLower(strings.TrimSpace(string(section.Kind))))
			if section.ID != "" {
				section.ID = utils.GenerateSlug(section.ID)
			}
			section.Body = validator.SanitizeHTML(section.Body)
		}
	}
}

func checkConsistency(content *models.Content) error {
	slugs := make(map[string]bool, len(content.Pages))
	paths := make(map[string]bool, len(content.Pages))

	for _, page := range content.Pages {
		if slugs[page.Slug] {
			return fmt.Errorf("%w: duplicate page slug %q", ErrInvalidContent, page.Slug)
		}
		slugs[page.Slug] = true

		if !strings.HasPrefix(page.Path, "/") {
			return fmt.Errorf("%w: page %q path must be site-relative", ErrInvalidContent, page.Slug)
		}
		if paths[page.Path] {
			return fmt.Errorf("%w: duplicate page path %q", ErrInvalidContent, page.Path)
		}
		paths[page.Path] = true

		for i, section := range page.Sections {
			if !section.Kind.Valid() {
				return fmt.Errorf("%w: page %q section %d has unknown kind %q", ErrInvalidContent, page.Slug, i, section.Kind)
			}
			if section.Kind == models.SectionChart && section.Chart == nil {
				return fmt.Errorf("%w: page %q section %d is a chart without chart data", ErrInvalidContent, page.Slug, i)
			}
		}
	}
	return nil
}
