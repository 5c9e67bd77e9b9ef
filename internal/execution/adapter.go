package execution

import (
	"context"

	"bpr/internal/domain"
	"bpr/internal/tags"
)

// Adapter is the boundary to the test engine. Run executes one unit with
// the given tag filter and reports its Outcome. It blocks the calling lane
// until the engine finishes.
//
// Run must not return errors for ordinary test failures: a failing scenario
// inside the unit is StatusFailed, and only infrastructure problems (spawn
// failure, crash, timeout) are StatusErrored. Nothing escapes as a Go error;
// the dispatcher additionally converts panics at the lane boundary.
type Adapter interface {
	Run(ctx context.Context, unit domain.Unit, filter tags.Filter, worker int) domain.Outcome
}
