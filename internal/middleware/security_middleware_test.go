package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildContentSecurityPolicyAddsMediaSrc(t *testing.T) {
	policy := buildContentSecurityPolicy(nil, nil)
	directives := parseContentSecurityPolicy(policy)

	mediaSrc, ok := directives["media-src"]
	if !ok {
		t.Fatalf("expected media-src directive to be present in policy: %s", policy)
	}

	for _, required := range []string{"'self'", "data:", "blob:"} {
		if _, allowed := mediaSrc[required]; !allowed {
			t.Fatalf("expected media-src to allow %s, policy: %s", required, policy)
		}
	}
}

func TestBuildContentSecurityPolicyFrameSources(t *testing.T) {
	policy := buildContentSecurityPolicy(
		[]string{TailwindSource},
		[]string{"/components", "https://catalog.example.com/stories?path=x", "https://catalog.example.com/other"},
	)
	directives := parseContentSecurityPolicy(policy)

	frameSrc := directives["frame-src"]
	if len(frameSrc) != 2 {
		t.Fatalf("expected self and one catalog origin in frame-src, policy: %s", policy)
	}
	if _, ok := frameSrc["https://catalog.example.com"]; !ok {
		t.Fatalf("expected catalog origin in frame-src, policy: %s", policy)
	}
	if _, ok := directives["script-src"]["https://cdn.tailwindcss.com"]; !ok {
		t.Fatalf("expected tailwind origin in script-src, policy: %s", policy)
	}
	if _, ok := directives["frame-ancestors"]["'self'"]; !ok {
		t.Fatalf("expected same-origin framing to be allowed, policy: %s", policy)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := recorder.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("expected SAMEORIGIN framing, got %q", got)
	}
	if recorder.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("expected no HSTS header on plain HTTP")
	}
	if !strings.Contains(recorder.Header().Get("Content-Security-Policy"), "object-src 'none'") {
		t.Fatalf("expected object-src none in policy")
	}
}

func parseContentSecurityPolicy(policy string) map[string]map[string]struct{} {
	result := make(map[string]map[string]struct{})

	for _, directive := range strings.Split(policy, ";") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.Fields(directive)
		if len(parts) == 0 {
			continue
		}

		name := parts[0]
		values := make(map[string]struct{}, len(parts)-1)
		for _, value := range parts[1:] {
			values[value] = struct{}{}
		}

		result[name] = values
	}

	return result
}
