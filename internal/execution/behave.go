package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"bpr/internal/config"
	"bpr/internal/domain"
	"bpr/internal/tags"
)

// BehaveAdapter runs one feature file through the behave executable
type BehaveAdapter struct {
	config *config.Config
}

// NewBehaveAdapter creates a new BehaveAdapter
func NewBehaveAdapter(cfg *config.Config) *BehaveAdapter {
	return &BehaveAdapter{config: cfg}
}

// Run executes behave for a single feature file. The tag filter is passed
// through verbatim; behave owns tag semantics. When a per-unit timeout is
// configured, expiry kills the subprocess and yields an errored outcome.
func (a *BehaveAdapter) Run(ctx context.Context, unit domain.Unit, filter tags.Filter, worker int) domain.Outcome {
	runCtx := ctx
	if a.config.UnitTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, a.config.UnitTimeout)
		defer cancel()
	}

	args := []string{"-k", "--no-color"}
	args = append(args, filter.CommandArgs()...)
	args = append(args, unit.Path)

	cmd := exec.CommandContext(runCtx, a.config.BehaveBin, args...)
	cmd.Dir = a.config.ProjectPath

	// Expose the lane number so step implementations can pick
	// per-worker resources (databases, ports, fixture dirs).
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("BEHAVE_WORKER=%d", worker))

	start := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	outcome := domain.Outcome{
		Unit:     unit,
		Output:   string(output),
		Duration: duration,
	}

	switch {
	case err == nil:
		outcome.Status = domain.StatusPassed

	case runCtx.Err() == context.DeadlineExceeded:
		outcome.Status = domain.StatusErrored
		outcome.ExitCode = -1
		outcome.Output += fmt.Sprintf("\nunit timed out after %s\n", a.config.UnitTimeout)

	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			// behave exits 1 for failing scenarios, anything else is a crash
			if outcome.ExitCode == 1 {
				outcome.Status = domain.StatusFailed
			} else {
				outcome.Status = domain.StatusErrored
			}
		} else {
			// The process never ran (missing binary, bad permissions)
			outcome.Status = domain.StatusErrored
			outcome.ExitCode = -1
			outcome.Output += "\n" + err.Error() + "\n"
		}
	}

	return outcome
}
