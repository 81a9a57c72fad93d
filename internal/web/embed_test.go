package web

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

func TestStaticAssetsEmbedded(t *testing.T) {
	for _, name := range []string{"panel.js", "site.css"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}

func TestAssetVersion(t *testing.T) {
	builtAt := time.Unix(1700000000, 0)
	version := AssetVersion(builtAt)

	got, err := version("/static/panel.js")
	if err != nil || !got.Equal(builtAt) {
		t.Fatalf("expected build time for panel.js, got %v, %v", got, err)
	}
	if _, err := version("/static/missing.js"); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound for missing asset, got %v", err)
	}
	if _, err := version("/elsewhere/panel.js"); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound outside /static, got %v", err)
	}
}

// The panel script must not drop pointer events raised before its panel is
// mounted, and must pick up a pointer already resting on the panel.
func TestPanelScriptQueuesEventsBehindMount(t *testing.T) {
	data, err := fs.ReadFile(Static(), "panel.js")
	if err != nil {
		t.Fatalf("read panel.js: %v", err)
	}
	script := string(data)

	mountAt := strings.Index(script, "var queue = mount()")
	sendAt := strings.Index(script, "function send(")
	if mountAt < 0 || sendAt < 0 || mountAt > sendAt {
		t.Fatalf("expected the event queue to start from the mount promise")
	}
	if strings.Contains(script, "Promise.resolve()") {
		t.Fatalf("event queue must not start before the panel is mounted")
	}
	if !strings.Contains(script, `panel.matches(":hover")`) {
		t.Fatalf("expected an initial hover check after mounting")
	}
}
