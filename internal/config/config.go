package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Redis
	EnableRedis bool
	RedisURL    string

	// Server
	Port            string
	Environment     string
	ShutdownTimeout time.Duration

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// PanelEventRateLimit is the separate per-window budget for panel pointer
	// and pin events. Zero leaves them unlimited.
	PanelEventRateLimit int

	// Features
	EnableCache   bool
	EnableMetrics bool

	// Site Meta
	SiteName        string
	SiteDescription string
	SiteURL         string

	// Robots
	RobotsSiteDirectives string
	RobotsAPIDirectives  string

	// Content
	ContentFile string
	CatalogURL  string

	// Navigation panels
	PanelIdleTimeout       time.Duration
	PanelSweepInterval     time.Duration
	ReevaluateHoverOnUnpin bool
}

func New() *Config {
	c := &Config{
		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", false),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// Server
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		PanelEventRateLimit: getEnvAsInt("PANEL_EVENT_RATE_LIMIT", 1200),

		// Features
		EnableCache:   getEnvAsBool("ENABLE_CACHE", true),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName:        getEnv("SITE_NAME", "Portfolio"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Engineering portfolio with a live design system catalog."),
		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),

		// Robots
		RobotsAPIDirectives: getEnv("ROBOTS_API_DIRECTIVES", "noindex, nofollow"),

		// Content
		ContentFile: getEnv("CONTENT_FILE", ""),

		// Navigation panels
		PanelIdleTimeout:       getEnvAsDuration("PANEL_IDLE_TIMEOUT", 30*time.Minute),
		PanelSweepInterval:     getEnvAsDuration("PANEL_SWEEP_INTERVAL", time.Minute),
		ReevaluateHoverOnUnpin: getEnvAsBool("NAV_REEVALUATE_HOVER_ON_UNPIN", false),
	}

	// The catalog is served by this process in development; elsewhere it has
	// to be configured explicitly.
	defaultCatalog := ""
	if c.IsDevelopment() {
		defaultCatalog = "/components"
	}
	c.CatalogURL = getEnv("CATALOG_URL", defaultCatalog)

	// Only production pages are meant to be indexed.
	defaultSiteRobots := ""
	if !c.IsProduction() {
		defaultSiteRobots = "noindex"
	}
	c.RobotsSiteDirectives = getEnv("ROBOTS_SITE_DIRECTIVES", defaultSiteRobots)

	// ENABLE_REDIS follows REDIS_URL when only the URL is provided.
	if _, explicit := os.LookupEnv("ENABLE_REDIS"); !explicit {
		if _, hasURL := os.LookupEnv("REDIS_URL"); hasURL {
			c.EnableRedis = true
		}
	}

	return c
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Port) == "" {
		problems = append(problems, "PORT is empty")
	}
	if c.RateLimitWindow < 0 || c.RateLimitRequests < 0 || c.PanelEventRateLimit < 0 {
		problems = append(problems, "rate limit values must not be negative")
	}
	if c.PanelIdleTimeout <= 0 {
		problems = append(problems, "PANEL_IDLE_TIMEOUT must be positive")
	}
	if c.PanelSweepInterval <= 0 {
		problems = append(problems, "PANEL_SWEEP_INTERVAL must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
