// Package web embeds the HTML templates and static assets served by the site.
package web

import (
	"embed"
	"errors"
	"io/fs"
	"strings"
	"time"

	"portfolio-backend/pkg/utils"
)

// TemplatesDir is the directory of Files holding the page templates.
const TemplatesDir = "templates"

//go:embed templates/*.html static
var files embed.FS

var ErrAssetNotFound = errors.New("asset not found")

// Files exposes the embedded tree.
func Files() fs.FS {
	return files
}

// Static returns the static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// AssetVersion versions /static URLs with the given build time. Embedded files
// carry no modification time, so every asset of a running binary shares it.
func AssetVersion(builtAt time.Time) utils.AssetModTimeFunc {
	return func(path string) (time.Time, error) {
		name := strings.TrimPrefix(path, "/static/")
		if name == path {
			return time.Time{}, ErrAssetNotFound
		}
		if _, err := fs.Stat(Static(), name); err != nil {
			return time.Time{}, ErrAssetNotFound
		}
		return builtAt, nil
	}
}
