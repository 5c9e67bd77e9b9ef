package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"bpr/internal/domain"
	"bpr/internal/parser"
)

// Aggregator merges completion-order outcomes into a deterministic report
type Aggregator struct {
	parser *parser.BehaveParser
}

// NewAggregator creates a new Aggregator
func NewAggregator(behaveParser *parser.BehaveParser) *Aggregator {
	return &Aggregator{parser: behaveParser}
}

// Aggregate combines the outcomes of one run into a Report. Outcomes may
// arrive in any order; they are sorted back into discovery order so the
// report is identical regardless of scheduling timing. Every discovered
// unit must be present exactly once — a missing or duplicate outcome is an
// internal invariant violation, not a test failure.
func (a *Aggregator) Aggregate(units []domain.Unit, outcomes []domain.Outcome, workers int, duration time.Duration) (*domain.Report, error) {
	if len(outcomes) != len(units) {
		return nil, fmt.Errorf("aggregate: %d units but %d outcomes", len(units), len(outcomes))
	}

	seen := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		if seen[o.Unit.Path] {
			return nil, fmt.Errorf("aggregate: duplicate outcome for %s", o.Unit.Path)
		}
		seen[o.Unit.Path] = true
	}
	for _, u := range units {
		if !seen[u.Path] {
			return nil, fmt.Errorf("aggregate: no outcome for %s", u.Path)
		}
	}

	ordered := make([]domain.Outcome, len(outcomes))
	copy(ordered, outcomes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Unit.Index < ordered[j].Unit.Index
	})

	rep := &domain.Report{
		Meta: domain.NewMeta(uuid.NewString(), workers, duration),
	}
	rep.Meta.TotalUnits = len(ordered)

	for _, o := range ordered {
		result := domain.UnitResult{
			Path:     o.Unit.Path,
			Name:     o.Unit.Name,
			Status:   o.Status,
			ExitCode: o.ExitCode,
			Seconds:  o.Duration.Seconds(),
		}

		p, f, s := a.parser.ParseScenarioCounts(o)
		rep.Meta.PassedScenarios += p
		rep.Meta.FailedScenarios += f
		rep.Meta.SkippedScenarios += s

		switch o.Status {
		case domain.StatusPassed:
			rep.Meta.PassedUnits++
		case domain.StatusFailed:
			rep.Meta.FailedUnits++
			result.Output = o.Output
			rep.Failures = append(rep.Failures, a.parser.ParseFailures(o)...)
		case domain.StatusErrored:
			rep.Meta.ErroredUnits++
			result.Output = o.Output
			rep.Failures = append(rep.Failures, a.parser.ParseFailures(o)...)
		}

		rep.Units = append(rep.Units, result)
	}

	return rep, nil
}
