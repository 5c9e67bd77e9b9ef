package domain

import "time"

// ReportMeta contains metadata about a run
type ReportMeta struct {
	RunID            string  `json:"run_id"`
	TotalUnits       int     `json:"total_units"`
	PassedUnits      int     `json:"passed_units"`
	FailedUnits      int     `json:"failed_units"`
	ErroredUnits     int     `json:"errored_units"`
	PassedScenarios  int     `json:"passed_scenarios"`
	FailedScenarios  int     `json:"failed_scenarios"`
	SkippedScenarios int     `json:"skipped_scenarios"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Workers          int     `json:"workers"`
	Timestamp        string  `json:"timestamp"`
}

// UnitResult is the persisted form of one Outcome.
type UnitResult struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Status   Status  `json:"status"`
	ExitCode int     `json:"exit_code"`
	Seconds  float64 `json:"seconds"`
	Output   string  `json:"output,omitempty"` // Kept only for non-passing units
}

// Report is the aggregate result of one run, in discovery order.
type Report struct {
	Meta     ReportMeta        `json:"meta"`
	Units    []UnitResult      `json:"units"`
	Failures []ScenarioFailure `json:"failures"`
}

// Status derives the overall run status. Errored dominates failed so the
// summary surfaces infrastructure problems over plain assertion failures.
func (r *Report) Status() Status {
	if r.Meta.ErroredUnits > 0 {
		return StatusErrored
	}
	if r.Meta.FailedUnits > 0 {
		return StatusFailed
	}
	return StatusPassed
}

// ExitCode maps the overall status to the process exit code.
func (r *Report) ExitCode() int {
	if r.Status() == StatusPassed {
		return 0
	}
	return 1
}

// NewMeta builds run metadata from counts already tallied by the aggregator.
func NewMeta(runID string, workers int, duration time.Duration) ReportMeta {
	return ReportMeta{
		RunID:           runID,
		Workers:         workers,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}
