package domain

import "time"

// Status classifies the result of running one unit.
type Status string

const (
	// StatusPassed means every scenario in the unit passed.
	StatusPassed Status = "passed"
	// StatusFailed means behave ran the unit and one or more scenarios failed.
	StatusFailed Status = "failed"
	// StatusErrored means the unit could not be executed properly
	// (spawn failure, crash, timeout). Not a normal test failure.
	StatusErrored Status = "errored"
)

// Outcome represents the result of executing one unit
type Outcome struct {
	Unit     Unit          // The unit that was executed
	Status   Status        // passed, failed or errored
	ExitCode int           // Exit code of the behave process (-1 if it never ran)
	Output   string        // Combined stdout/stderr from behave
	Duration time.Duration // Time taken to execute
}

// Passed reports whether the unit completed without failures or errors.
func (o Outcome) Passed() bool {
	return o.Status == StatusPassed
}
