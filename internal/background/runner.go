// Package background runs the periodic maintenance tasks of the server.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"portfolio-backend/pkg/logger"
)

var (
	ErrNotStarted      = errors.New("background runner not started")
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrDuplicateTask   = errors.New("task already registered")
	ErrInvalidTask     = errors.New("task needs a name and a run function")
)

// Task is run once per Interval. Each task owns a single goroutine, so a slow
// run delays the next tick instead of overlapping with it.
type Task struct {
	Name     string
	Interval time.Duration
	// Timeout bounds a single run; zero leaves it to the runner context.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type Runner struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	tasks   map[string]struct{}
	wg      sync.WaitGroup
}

var (
	metricsOnce     sync.Once
	taskRunsTotal   *prometheus.CounterVec
	taskDuration    *prometheus.HistogramVec
	taskLastSuccess *prometheus.GaugeVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		taskRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "background",
			Name:      "task_runs_total",
			Help:      "Periodic task runs by outcome",
		}, []string{"task", "status"})

		taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "background",
			Name:      "task_duration_seconds",
			Help:      "Duration of periodic task runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"task"})

		taskLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "background",
			Name:      "task_last_success_timestamp",
			Help:      "Unix time of the last successful run",
		}, []string{"task"})
	})
}

func NewRunner() *Runner {
	initMetrics()
	return &Runner{tasks: make(map[string]struct{})}
}

// Start arms the runner. Tasks added afterwards begin ticking immediately.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.started = true
}

// Add registers task and starts its ticker. Names are unique per runner.
func (r *Runner) Add(task Task) error {
	if task.Name == "" || task.Run == nil {
		return ErrInvalidTask
	}
	if task.Interval <= 0 {
		return ErrInvalidInterval
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotStarted
	}
	if r.ctx.Err() != nil {
		return context.Canceled
	}
	if _, exists := r.tasks[task.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, task.Name)
	}
	r.tasks[task.Name] = struct{}{}

	r.wg.Add(1)
	go r.loop(r.ctx, task)
	return nil
}

func (r *Runner) loop(ctx context.Context, task Task) {
	defer r.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx, task)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, task Task) {
	start := time.Now()
	status := "success"

	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			status = "panic"
			logger.Error(fmt.Errorf("panic: %v", rec), "Background task panicked", map[string]interface{}{"task": task.Name})
		}

		taskDuration.WithLabelValues(task.Name).Observe(time.Since(start).Seconds())
		taskRunsTotal.WithLabelValues(task.Name, status).Inc()
		if status == "success" {
			taskLastSuccess.WithLabelValues(task.Name).SetToCurrentTime()
		}
	}()

	if err := task.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			status = "canceled"
			return
		}
		status = "failure"
		logger.Error(err, "Background task failed", map[string]interface{}{"task": task.Name})
	}
}

// Tasks returns the number of registered tasks.
func (r *Runner) Tasks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Shutdown stops every ticker and waits for in-flight runs or ctx, whichever
// ends first.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	r.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
