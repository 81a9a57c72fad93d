package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestCatalogURLDefaultsInDevelopment(t *testing.T) {
	unsetEnv(t, "CATALOG_URL")
	t.Setenv("ENVIRONMENT", "development")

	cfg := New()
	if cfg.CatalogURL != "/components" {
		t.Fatalf("expected development catalog URL, got %q", cfg.CatalogURL)
	}
}

func TestCatalogURLEmptyInProduction(t *testing.T) {
	unsetEnv(t, "CATALOG_URL")
	t.Setenv("ENVIRONMENT", "production")

	cfg := New()
	if cfg.CatalogURL != "" {
		t.Fatalf("expected no catalog URL in production, got %q", cfg.CatalogURL)
	}
}

func TestRedisAutoEnablesWithURL(t *testing.T) {
	unsetEnv(t, "ENABLE_REDIS")
	t.Setenv("REDIS_URL", "redis:6379")

	cfg := New()
	if !cfg.EnableRedis {
		t.Fatalf("expected redis to auto-enable when REDIS_URL is provided")
	}
}

func TestRedisRespectsExplicitDisable(t *testing.T) {
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("ENABLE_REDIS", "false")

	cfg := New()
	if cfg.EnableRedis {
		t.Fatalf("expected redis to remain disabled when flag explicitly set")
	}
}

func TestPanelSettings(t *testing.T) {
	t.Setenv("PANEL_IDLE_TIMEOUT", "90s")
	t.Setenv("PANEL_SWEEP_INTERVAL", "not-a-duration")
	t.Setenv("NAV_REEVALUATE_HOVER_ON_UNPIN", "true")

	cfg := New()
	if cfg.PanelIdleTimeout != 90*time.Second {
		t.Fatalf("unexpected idle timeout %s", cfg.PanelIdleTimeout)
	}
	if cfg.PanelSweepInterval != time.Minute {
		t.Fatalf("invalid duration should fall back to default, got %s", cfg.PanelSweepInterval)
	}
	if !cfg.ReevaluateHoverOnUnpin {
		t.Fatalf("expected hover reevaluation to be enabled")
	}
}

func TestCORSOriginsTrimmed(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := New()
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %#v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}

	cfg.PanelIdleTimeout = 0
	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestRobotsDefaults(t *testing.T) {
	unsetEnv(t, "ROBOTS_SITE_DIRECTIVES")
	unsetEnv(t, "ROBOTS_API_DIRECTIVES")

	t.Setenv("ENVIRONMENT", "development")
	cfg := New()
	if cfg.RobotsSiteDirectives != "noindex" {
		t.Fatalf("expected non-production site to be noindex, got %q", cfg.RobotsSiteDirectives)
	}
	if cfg.RobotsAPIDirectives != "noindex, nofollow" {
		t.Fatalf("unexpected API directives %q", cfg.RobotsAPIDirectives)
	}

	t.Setenv("ENVIRONMENT", "production")
	if cfg := New(); cfg.RobotsSiteDirectives != "" {
		t.Fatalf("expected production site to be indexable, got %q", cfg.RobotsSiteDirectives)
	}
}
