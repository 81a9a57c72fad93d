package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/config"
)

const panelEventsPrefix = "/api/v1/panels/"

var panelEventSuffixes = []string{"/pointer-enter", "/pointer-leave", "/pin"}

// RateLimitMiddleware limits the request rate per client IP. Static assets
// and the health probe are never limited. Panel pointer and pin events draw
// from their own, larger bucket so hovering cannot starve page requests or be
// starved by them.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		key, budget := c.ClientIP(), cfg.RateLimitRequests
		if isPanelEvent(c.Request) {
			key, budget = key+"|panel-events", cfg.PanelEventRateLimit
		}

		limiter := manager.GetVisitor(
			key,
			budget,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)

		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if strings.HasPrefix(path, "/static/") {
		return true
	}

	switch path {
	case "/favicon.ico", "/health":
		return true
	}

	return false
}

func isPanelEvent(r *http.Request) bool {
	if r == nil || r.URL == nil || r.Method != http.MethodPost {
		return false
	}

	rest, ok := strings.CutPrefix(r.URL.Path, panelEventsPrefix)
	if !ok {
		return false
	}
	for _, suffix := range panelEventSuffixes {
		id, found := strings.CutSuffix(rest, suffix)
		if found && id != "" && !strings.Contains(id, "/") {
			return true
		}
	}
	return false
}
