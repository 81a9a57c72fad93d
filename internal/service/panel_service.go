package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/navigation"
)

var ErrPanelNotFound = errors.New("panel not found")

var (
	panelMetricsOnce sync.Once
	panelsMounted    prometheus.Gauge
	panelEvents      *prometheus.CounterVec
)

func initPanelMetrics() {
	panelMetricsOnce.Do(func() {
		panelsMounted = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Name:      "panels_mounted",
			Help:      "Navigation panels currently mounted",
		})
		panelEvents = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "panel_events_total",
			Help:      "Navigation panel events applied, by event",
		}, []string{"event"})
	})
}

type PanelServiceConfig struct {
	IdleTimeout            time.Duration
	ReevaluateHoverOnUnpin bool
}

// PanelSnapshot is a mounted panel as returned to clients.
type PanelSnapshot struct {
	ID    string            `json:"id"`
	Items []navigation.Item `json:"items,omitempty"`
	navigation.Snapshot
}

type mountedPanel struct {
	mu        sync.Mutex
	panel     *navigation.Panel
	navigator *RouteNavigator
	lastSeen  time.Time
	// removed is set under mu once the panel has left the registry.
	removed bool
}

// PanelService owns the panels mounted by browsers. Every panel is guarded by
// its own lock so events for one panel never wait on another.
type PanelService struct {
	nav    *NavigationService
	config PanelServiceConfig
	now    func() time.Time

	mu     sync.RWMutex
	panels map[string]*mountedPanel
}

func NewPanelService(nav *NavigationService, cfg PanelServiceConfig) *PanelService {
	initPanelMetrics()
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	return &PanelService{
		nav:    nav,
		config: cfg,
		now:    time.Now,
		panels: make(map[string]*mountedPanel),
	}
}

// Mount creates a collapsed panel over the current navigation items.
func (s *PanelService) Mount(ctx context.Context) (PanelSnapshot, error) {
	var opts []navigation.Option
	if s.config.ReevaluateHoverOnUnpin {
		opts = append(opts, navigation.WithHoverReevaluation())
	}

	navigator := s.nav.NewNavigator()
	panel, err := navigation.NewPanel(s.nav.Items(), navigator, opts...)
	if err != nil {
		return PanelSnapshot{}, err
	}

	id := uuid.NewString()
	entry := &mountedPanel{panel: panel, navigator: navigator, lastSeen: s.now()}

	s.mu.Lock()
	s.panels[id] = entry
	count := len(s.panels)
	s.mu.Unlock()
	panelsMounted.Set(float64(count))

	logger.FromContext(ctx).WithField("panel_id", id).Debug("Panel mounted")

	return PanelSnapshot{ID: id, Items: panel.Items(), Snapshot: panel.Snapshot()}, nil
}

func (s *PanelService) lookup(id string) (*mountedPanel, error) {
	s.mu.RLock()
	entry, ok := s.panels[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrPanelNotFound
	}
	return entry, nil
}

// acquire returns the panel locked. A caller that looked the panel up before an
// Unmount or Sweep removed it gets ErrPanelNotFound once it holds the lock.
func (s *PanelService) acquire(id string) (*mountedPanel, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := lockMounted(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func lockMounted(entry *mountedPanel) error {
	entry.mu.Lock()
	if entry.removed {
		entry.mu.Unlock()
		return ErrPanelNotFound
	}
	return nil
}

func (s *PanelService) Get(id string) (PanelSnapshot, error) {
	entry, err := s.acquire(id)
	if err != nil {
		return PanelSnapshot{}, err
	}
	defer entry.mu.Unlock()
	entry.lastSeen = s.now()
	return PanelSnapshot{ID: id, Items: entry.panel.Items(), Snapshot: entry.panel.Snapshot()}, nil
}

// Apply feeds one interaction event to the panel.
func (s *PanelService) Apply(id string, event navigation.Event) (PanelSnapshot, error) {
	entry, err := s.acquire(id)
	if err != nil {
		return PanelSnapshot{}, err
	}
	defer entry.mu.Unlock()
	if err := entry.panel.Apply(event); err != nil {
		return PanelSnapshot{}, err
	}
	entry.lastSeen = s.now()
	panelEvents.WithLabelValues(event.String()).Inc()
	return PanelSnapshot{ID: id, Snapshot: entry.panel.Snapshot()}, nil
}

// Activate navigates to the item with the given target. The returned location
// is the route the browser should load.
func (s *PanelService) Activate(id, targetID string) (string, PanelSnapshot, error) {
	entry, err := s.acquire(id)
	if err != nil {
		return "", PanelSnapshot{}, err
	}
	defer entry.mu.Unlock()
	entry.lastSeen = s.now()

	err = entry.panel.ActivateTarget(targetID)
	if errors.Is(err, navigation.ErrItemNotFound) {
		// Targets outside the panel still go through route validation.
		err = entry.navigator.Navigate(targetID)
	}
	if err != nil {
		return "", PanelSnapshot{}, err
	}
	panelEvents.WithLabelValues("activate").Inc()
	return entry.navigator.Location(), PanelSnapshot{ID: id, Snapshot: entry.panel.Snapshot()}, nil
}

func (s *PanelService) Unmount(id string) error {
	s.mu.Lock()
	entry, ok := s.panels[id]
	if ok {
		delete(s.panels, id)
		entry.mu.Lock()
		entry.removed = true
		entry.mu.Unlock()
	}
	count := len(s.panels)
	s.mu.Unlock()

	if !ok {
		return ErrPanelNotFound
	}
	panelsMounted.Set(float64(count))
	return nil
}

// Sweep unmounts panels idle for longer than the configured timeout and
// returns how many were removed.
func (s *PanelService) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.config.IdleTimeout)

	s.mu.Lock()
	removed := 0
	for id, entry := range s.panels {
		if err := ctx.Err(); err != nil {
			s.mu.Unlock()
			return removed, err
		}
		entry.mu.Lock()
		if entry.lastSeen.Before(cutoff) {
			entry.removed = true
			delete(s.panels, id)
			removed++
		}
		entry.mu.Unlock()
	}
	count := len(s.panels)
	s.mu.Unlock()

	panelsMounted.Set(float64(count))
	if removed > 0 {
		logger.FromContext(ctx).WithField("removed", removed).Info("Idle panels unmounted")
	}
	return removed, nil
}

func (s *PanelService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.panels)
}
