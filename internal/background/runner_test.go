package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startRunner(t *testing.T) *Runner {
	t.Helper()
	r := NewRunner()
	r.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Shutdown(ctx); err != nil {
			t.Errorf("shutdown failed: %v", err)
		}
	})
	return r
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func noop(context.Context) error { return nil }

func TestAddBeforeStart(t *testing.T) {
	r := NewRunner()
	err := r.Add(Task{Name: "x", Interval: time.Second, Run: noop})
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown of idle runner failed: %v", err)
	}
}

func TestAddValidation(t *testing.T) {
	r := startRunner(t)

	cases := []struct {
		name string
		task Task
		want error
	}{
		{"missing name", Task{Interval: time.Second, Run: noop}, ErrInvalidTask},
		{"missing run", Task{Name: "x", Interval: time.Second}, ErrInvalidTask},
		{"zero interval", Task{Name: "x", Run: noop}, ErrInvalidInterval},
	}
	for _, tc := range cases {
		if err := r.Add(tc.task); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if err := r.Add(Task{Name: "sweep", Interval: time.Hour, Run: noop}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := r.Add(Task{Name: "sweep", Interval: time.Hour, Run: noop}); !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
	if got := r.Tasks(); got != 1 {
		t.Fatalf("expected 1 task, got %d", got)
	}
}

func TestTaskRunsRepeatedly(t *testing.T) {
	r := startRunner(t)

	var runs int32
	if err := r.Add(Task{Name: "tick", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&runs) >= 3 })
	if got := testutil.ToFloat64(taskRunsTotal.WithLabelValues("tick", "success")); got < 3 {
		t.Fatalf("expected at least 3 successful runs recorded, got %v", got)
	}
}

func TestRunsNeverOverlap(t *testing.T) {
	r := startRunner(t)

	var inFlight, maxInFlight, runs int32
	if err := r.Add(Task{Name: "slow", Interval: time.Millisecond, Run: func(context.Context) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		atomic.AddInt32(&runs, 1)
		return nil
	}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&runs) >= 3 })
	if got := atomic.LoadInt32(&maxInFlight); got != 1 {
		t.Fatalf("expected at most one run in flight, got %d", got)
	}
}

func TestFailuresAndPanicsKeepTicking(t *testing.T) {
	r := startRunner(t)

	var runs int32
	if err := r.Add(Task{Name: "flaky", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
		switch atomic.AddInt32(&runs, 1) {
		case 1:
			return errors.New("boom")
		case 2:
			panic("oops")
		}
		return nil
	}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&runs) >= 3 })
	if got := testutil.ToFloat64(taskRunsTotal.WithLabelValues("flaky", "failure")); got != 1 {
		t.Fatalf("expected one failure recorded, got %v", got)
	}
	if got := testutil.ToFloat64(taskRunsTotal.WithLabelValues("flaky", "panic")); got != 1 {
		t.Fatalf("expected one panic recorded, got %v", got)
	}
}

func TestTimeoutBoundsRun(t *testing.T) {
	r := startRunner(t)

	deadlines := make(chan bool, 1)
	if err := r.Add(Task{Name: "bounded", Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond, Run: func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		select {
		case deadlines <- ok:
		default:
		}
		return nil
	}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	select {
	case ok := <-deadlines:
		if !ok {
			t.Fatalf("expected run context to carry a deadline")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("task never ran")
	}
}

func TestShutdownCancelsRunningTask(t *testing.T) {
	r := NewRunner()
	r.Start(context.Background())

	started := make(chan struct{})
	var once int32
	if err := r.Add(Task{Name: "blocking", Interval: time.Millisecond, Run: func(ctx context.Context) error {
		if atomic.CompareAndSwapInt32(&once, 0, 1) {
			close(started)
		}
		<-ctx.Done()
		return ctx.Err()
	}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if err := r.Add(Task{Name: "late", Interval: time.Second, Run: noop}); err == nil {
		t.Fatalf("expected add after shutdown to fail")
	}
}
