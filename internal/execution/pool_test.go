package execution

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"bpr/internal/domain"
	"bpr/internal/tags"
)

// stubAdapter is an instrumented Adapter for dispatcher tests. It records
// the maximum number of concurrently in-flight Run calls and how often each
// unit was run.
type stubAdapter struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       map[string]int

	delay   time.Duration
	failOn  map[string]bool
	panicOn map[string]bool
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{
		calls:   make(map[string]int),
		failOn:  make(map[string]bool),
		panicOn: make(map[string]bool),
	}
}

func (s *stubAdapter) Run(ctx context.Context, unit domain.Unit, filter tags.Filter, worker int) domain.Outcome {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.calls[unit.Path]++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panicOn[unit.Path] {
		panic("stub adapter crash for " + unit.Path)
	}

	status := domain.StatusPassed
	exitCode := 0
	if s.failOn[unit.Path] {
		status = domain.StatusFailed
		exitCode = 1
	}
	return domain.Outcome{
		Unit:     unit,
		Status:   status,
		ExitCode: exitCode,
		Output:   "stub output for " + unit.Name,
	}
}

func makeUnits(paths ...string) []domain.Unit {
	units := make([]domain.Unit, len(paths))
	for i, p := range paths {
		units[i] = domain.Unit{Path: p, Name: p, Index: i}
	}
	return units
}

func TestWorkerPool_EveryUnitRunsExactlyOnce(t *testing.T) {
	units := makeUnits("a.feature", "b.feature", "c.feature", "d.feature", "e.feature")
	stub := newStubAdapter()
	pool := NewWorkerPool(3, stub, nil)

	outcomes, _, err := pool.Execute(context.Background(), units, tags.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcomes) != len(units) {
		t.Fatalf("expected %d outcomes, got %d", len(units), len(outcomes))
	}
	for _, unit := range units {
		if stub.calls[unit.Path] != 1 {
			t.Errorf("unit %s ran %d times, want 1", unit.Path, stub.calls[unit.Path])
		}
	}
}

func TestWorkerPool_ConcurrencyBound(t *testing.T) {
	units := makeUnits(
		"a.feature", "b.feature", "c.feature", "d.feature",
		"e.feature", "f.feature", "g.feature", "h.feature",
	)
	stub := newStubAdapter()
	stub.delay = 20 * time.Millisecond
	pool := NewWorkerPool(3, stub, nil)

	_, _, err := pool.Execute(context.Background(), units, tags.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.maxInFlight > 3 {
		t.Errorf("max in-flight calls = %d, want <= 3", stub.maxInFlight)
	}
	if stub.maxInFlight < 2 {
		t.Errorf("max in-flight calls = %d, expected the pool to actually run in parallel", stub.maxInFlight)
	}
}

func TestWorkerPool_CrashContainment(t *testing.T) {
	units := makeUnits("a.feature", "b.feature", "c.feature", "d.feature", "e.feature")
	stub := newStubAdapter()
	stub.panicOn["c.feature"] = true
	pool := NewWorkerPool(2, stub, nil)

	outcomes, _, err := pool.Execute(context.Background(), units, tags.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcomes) != len(units) {
		t.Fatalf("expected %d outcomes despite the crash, got %d", len(units), len(outcomes))
	}

	errored := 0
	for _, o := range outcomes {
		if o.Status == domain.StatusErrored {
			errored++
			if o.Unit.Path != "c.feature" {
				t.Errorf("unexpected errored unit %s", o.Unit.Path)
			}
			if o.ExitCode != -1 {
				t.Errorf("errored outcome exit code = %d, want -1", o.ExitCode)
			}
		}
	}
	if errored != 1 {
		t.Errorf("expected exactly 1 errored outcome, got %d", errored)
	}
}

func TestWorkerPool_FailureDoesNotCancelRemaining(t *testing.T) {
	units := makeUnits("a.feature", "b.feature", "c.feature", "d.feature")
	stub := newStubAdapter()
	stub.failOn["a.feature"] = true
	pool := NewWorkerPool(1, stub, nil)

	outcomes, _, err := pool.Execute(context.Background(), units, tags.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sequential pool, first unit fails: every later unit must still run.
	if len(outcomes) != len(units) {
		t.Fatalf("expected %d outcomes, got %d", len(units), len(outcomes))
	}
	for _, unit := range units {
		if stub.calls[unit.Path] != 1 {
			t.Errorf("unit %s ran %d times, want 1", unit.Path, stub.calls[unit.Path])
		}
	}
}

func TestWorkerPool_WorkerCountDoesNotChangeOutcomes(t *testing.T) {
	units := makeUnits("a.feature", "b.feature", "c.feature")

	run := func(workers int) []domain.Outcome {
		stub := newStubAdapter()
		stub.failOn["b.feature"] = true
		pool := NewWorkerPool(workers, stub, nil)
		outcomes, _, err := pool.Execute(context.Background(), units, tags.Filter{})
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		sort.Slice(outcomes, func(i, j int) bool {
			return outcomes[i].Unit.Index < outcomes[j].Unit.Index
		})
		return outcomes
	}

	sequential := run(1)
	parallel := run(3)

	if len(sequential) != len(parallel) {
		t.Fatalf("outcome count differs: %d vs %d", len(sequential), len(parallel))
	}
	for i := range sequential {
		if sequential[i].Unit.Path != parallel[i].Unit.Path ||
			sequential[i].Status != parallel[i].Status {
			t.Errorf("outcome %d differs: %s/%s vs %s/%s", i,
				sequential[i].Unit.Path, sequential[i].Status,
				parallel[i].Unit.Path, parallel[i].Status)
		}
	}
}

func TestWorkerPool_EmptyUnitList(t *testing.T) {
	stub := newStubAdapter()
	pool := NewWorkerPool(3, stub, nil)

	outcomes, duration, err := pool.Execute(context.Background(), nil, tags.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 0 || duration != 0 {
		t.Errorf("expected no work, got %d outcomes in %s", len(outcomes), duration)
	}
}

func TestNewWorkerPool_ClampsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0, newStubAdapter(), nil)
	if pool.Workers() != 1 {
		t.Errorf("workers = %d, want 1", pool.Workers())
	}
}
