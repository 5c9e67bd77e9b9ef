package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bpr/internal/domain"
	"bpr/internal/parser"
	"bpr/internal/tags"
	"bpr/internal/ui"
)

// WorkerPool distributes units across a fixed number of concurrent lanes.
// A buffered channel preloaded in discovery order is the shared pending
// queue; channel receive gives the atomic dequeue, so exactly one lane
// ever receives a given unit. Scheduling is fail-open: no outcome cancels
// the remaining units.
type WorkerPool struct {
	workers  int
	adapter  Adapter
	parser   *parser.BehaveParser
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool with the given lane count
func NewWorkerPool(workers int, adapter Adapter, behaveParser *parser.BehaveParser) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		adapter: adapter,
		parser:  behaveParser,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Workers returns the configured lane count.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Execute runs every unit exactly once and returns outcomes in completion
// order, which is not the input order. It returns only after each unit has
// produced an outcome and every lane has exited. With one worker this
// degrades to plain sequential execution.
func (wp *WorkerPool) Execute(ctx context.Context, units []domain.Unit, filter tags.Filter) ([]domain.Outcome, time.Duration, error) {
	if len(units) == 0 {
		return nil, 0, nil
	}

	queue := make(chan domain.Unit, len(units))
	results := make(chan domain.Outcome, len(units))
	for _, unit := range units {
		queue <- unit
	}
	close(queue)

	var mu sync.Mutex
	var completedUnits int
	var passedScenarios, failedScenarios int
	startTime := time.Now()

	var g errgroup.Group
	for i := 1; i <= wp.workers; i++ {
		workerID := i
		g.Go(func() error {
			for unit := range queue {
				outcome := wp.runOne(ctx, unit, filter, workerID)
				results <- outcome

				mu.Lock()
				completedUnits++
				if wp.parser != nil {
					p, f, _ := wp.parser.ParseScenarioCounts(outcome)
					passedScenarios += p
					failedScenarios += f
				} else {
					if outcome.Passed() {
						passedScenarios++
					} else {
						failedScenarios++
					}
				}
				if wp.progress != nil {
					wp.progress.Update(completedUnits, passedScenarios, failedScenarios)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	go func() {
		// Lanes never return errors; panics are converted in runOne
		_ = g.Wait()
		close(results)
	}()

	var outcomes []domain.Outcome
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return outcomes, time.Since(startTime), nil
}

// runOne invokes the adapter for a single unit. A panic inside the adapter
// is caught here, at the lane boundary, and synthesized into an errored
// outcome so one broken unit can never kill the pool or abandon the rest
// of the queue.
func (wp *WorkerPool) runOne(ctx context.Context, unit domain.Unit, filter tags.Filter, workerID int) (outcome domain.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Outcome{
				Unit:     unit,
				Status:   domain.StatusErrored,
				ExitCode: -1,
				Output:   fmt.Sprintf("worker %d: panic while running %s: %v\n", workerID, unit.Name, r),
				Duration: time.Since(start),
			}
		}
	}()
	return wp.adapter.Run(ctx, unit, filter, workerID)
}
