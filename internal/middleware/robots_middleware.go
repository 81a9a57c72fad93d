package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RobotsRule tags every response under Prefix with an X-Robots-Tag built from
// Directives, a comma separated list such as "noindex, nofollow".
type RobotsRule struct {
	Prefix     string
	Directives string
}

type robotsRule struct {
	prefix string
	value  string
}

// RobotsMiddleware applies the rule with the longest matching prefix. Prefixes
// match whole path segments, so "/api" covers "/api/v1" but not "/apidocs".
// Rules with no usable directives are dropped.
func RobotsMiddleware(rules ...RobotsRule) gin.HandlerFunc {
	compiled := make([]robotsRule, 0, len(rules))
	for _, rule := range rules {
		value := normalizeDirectives(rule.Directives)
		if value == "" {
			continue
		}
		prefix := "/" + strings.Trim(strings.TrimSpace(rule.Prefix), "/")
		compiled = append(compiled, robotsRule{prefix: prefix, value: value})
	}

	return func(c *gin.Context) {
		if value := matchRobotsRule(compiled, c.Request.URL.Path); value != "" {
			c.Header("X-Robots-Tag", value)
		}
		c.Next()
	}
}

func matchRobotsRule(rules []robotsRule, path string) string {
	best := -1
	value := ""
	for _, rule := range rules {
		if !pathUnder(path, rule.prefix) || len(rule.prefix) <= best {
			continue
		}
		best = len(rule.prefix)
		value = rule.value
	}
	return value
}

func pathUnder(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// normalizeDirectives lowercases, trims and dedupes a directive list.
func normalizeDirectives(raw string) string {
	seen := make(map[string]struct{})
	cleaned := make([]string, 0, 2)
	for _, directive := range strings.Split(raw, ",") {
		directive = strings.ToLower(strings.TrimSpace(directive))
		if directive == "" {
			continue
		}
		if _, ok := seen[directive]; ok {
			continue
		}
		seen[directive] = struct{}{}
		cleaned = append(cleaned, directive)
	}
	return strings.Join(cleaned, ", ")
}
