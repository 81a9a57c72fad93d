package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/navigation"
	"portfolio-backend/pkg/utils"
)

const defaultLayout = "base.html"

// navItemView is a navigation item as drawn by the layout.
type navItemView struct {
	navigation.Item
	Active bool
}

// navPanelView is the server rendered panel. Pages are always served with the
// panel collapsed; the browser mounts its own panel and takes over from there.
type navPanelView struct {
	Items []navItemView
	State navigation.State
	View  navigation.View
}

func (h *TemplateHandler) basePageData(title, description string, extra gin.H) gin.H {
	siteName := h.config.SiteName
	fullTitle := title
	if siteName != "" && title != siteName {
		fullTitle = fmt.Sprintf("%s - %s", title, siteName)
	}
	if description == "" {
		description = h.config.SiteDescription
	}

	data := gin.H{
		"Title":       fullTitle,
		"Description": description,
		"Site": gin.H{
			"Name":        siteName,
			"Description": h.config.SiteDescription,
			"URL":         h.config.SiteURL,
		},
	}
	if h.pageService != nil {
		data["Profile"] = h.pageService.Profile()
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	data := h.basePageData(title, description, extra)
	if templateName == "" {
		templateName = "page"
	}

	layout := defaultLayout
	if value, ok := data["Layout"].(string); ok && value != "" {
		layout = value
	}

	h.renderWithLayout(c, layout, templateName+".html", data)
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, layout, content string, data gin.H) {
	h.applySEOMetadata(c, data)
	h.setNavigationState(c, data)

	if noIndex, ok := data["NoIndex"].(bool); ok && noIndex {
		c.Header("X-Robots-Tag", "noindex, nofollow")
	}

	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		logger.Error(nil, "Content template not found", map[string]interface{}{"template": content})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"template": content})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render content")
		return
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup(layout)
	if layoutTmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": layout})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"template": layout})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render layout")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) applySEOMetadata(c *gin.Context, data gin.H) {
	siteURL := h.normalizeBaseURL(h.config.SiteURL, c.Request)
	if site, ok := data["Site"].(gin.H); ok {
		site["URL"] = siteURL
	}

	canonical := strings.TrimSpace(getString(data, "Canonical"))
	if canonical == "" {
		canonical = h.buildCanonicalURL(siteURL, c.Request.URL)
	}
	data["Canonical"] = canonical

	if strings.TrimSpace(getString(data, "OGURL")) == "" {
		data["OGURL"] = canonical
	}
	if strings.TrimSpace(getString(data, "OGType")) == "" {
		data["OGType"] = "website"
	}
}

func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	cleanedPath := utils.NormalizePath(c.Request.URL.Path)
	data["ActivePath"] = cleanedPath

	if _, exists := data["Nav"]; exists || h.navigationService == nil {
		return
	}

	state := navigation.State{}
	items := h.navigationService.Items()
	nav := navPanelView{
		Items: make([]navItemView, 0, len(items)),
		State: state,
		View:  state.View(),
	}
	for _, item := range items {
		nav.Items = append(nav.Items, navItemView{Item: item, Active: isActivePath(item.TargetID, cleanedPath)})
	}
	data["Nav"] = nav
}

// isActivePath reports whether the current path is the target or one of its
// descendants. The root is only active on itself.
func isActivePath(target, current string) bool {
	if target == current {
		return true
	}
	if target == "/" {
		return false
	}
	return strings.HasPrefix(current, target+"/")
}

func (h *TemplateHandler) normalizeBaseURL(baseURL string, r *http.Request) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if r == nil {
		return baseURL
	}

	if baseURL == "" {
		host := requestHost(r)
		if host == "" {
			return ""
		}
		return requestScheme(r) + "://" + host
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" || !strings.EqualFold(parsed.Host, requestHost(r)) {
		return baseURL
	}

	if scheme := requestScheme(r); parsed.Scheme != scheme {
		parsed.Scheme = scheme
		return parsed.String()
	}

	return baseURL
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return ""
	}

	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		if value := strings.ToLower(strings.TrimSpace(parts[0])); value != "" {
			return value
		}
	}

	if r.TLS != nil {
		return "https"
	}

	if r.URL != nil && r.URL.Scheme != "" {
		return strings.ToLower(r.URL.Scheme)
	}

	return "http"
}

func requestHost(r *http.Request) string {
	if r == nil {
		return ""
	}

	if forwardedHost := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); forwardedHost != "" {
		parts := strings.Split(forwardedHost, ",")
		if host := strings.TrimSpace(parts[0]); host != "" {
			return host
		}
	}

	if r.Host != "" {
		return r.Host
	}

	if r.URL != nil {
		return r.URL.Host
	}

	return ""
}

// buildCanonicalURL drops fragments and tracking parameters from the request
// URL and resolves it against base.
func (h *TemplateHandler) buildCanonicalURL(base string, requestURL *url.URL) string {
	if requestURL == nil {
		return strings.TrimSuffix(base, "/")
	}

	cleaned := *requestURL
	cleaned.Fragment = ""

	if query := cleaned.Query(); len(query) > 0 {
		for key := range query {
			lower := strings.ToLower(key)
			if strings.HasPrefix(lower, "utm_") || lower == "fbclid" || lower == "gclid" {
				query.Del(key)
			}
		}
		cleaned.RawQuery = query.Encode()
	}

	if cleaned.IsAbs() {
		return cleaned.String()
	}

	canonical := utils.NormalizePath(cleaned.Path)
	if cleaned.RawQuery != "" {
		canonical = canonical + "?" + cleaned.RawQuery
	}

	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return canonical
	}

	return base + canonical
}

func getString(data gin.H, key string) string {
	if value, ok := data[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
