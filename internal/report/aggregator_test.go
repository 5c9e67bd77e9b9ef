package report

import (
	"testing"
	"time"

	"bpr/internal/domain"
	"bpr/internal/parser"
)

func testUnits() []domain.Unit {
	return []domain.Unit{
		{Path: "/f/a.feature", Name: "a", Index: 0},
		{Path: "/f/b.feature", Name: "b", Index: 1},
		{Path: "/f/c.feature", Name: "c", Index: 2},
	}
}

func outcomeFor(units []domain.Unit, i int, status domain.Status) domain.Outcome {
	exitCode := 0
	if status != domain.StatusPassed {
		exitCode = 1
	}
	return domain.Outcome{
		Unit:     units[i],
		Status:   status,
		ExitCode: exitCode,
		Output:   "raw behave output",
		Duration: time.Second,
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	agg := NewAggregator(parser.NewBehaveParser())
	units := testUnits()

	t.Run("restores discovery order from completion order", func(t *testing.T) {
		// Outcomes arrive reversed, as if c finished first
		outcomes := []domain.Outcome{
			outcomeFor(units, 2, domain.StatusPassed),
			outcomeFor(units, 1, domain.StatusFailed),
			outcomeFor(units, 0, domain.StatusPassed),
		}

		rep, err := agg.Aggregate(units, outcomes, 3, 2*time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i, unit := range units {
			if rep.Units[i].Path != unit.Path {
				t.Errorf("position %d = %s, want %s", i, rep.Units[i].Path, unit.Path)
			}
		}
	})

	t.Run("identical report regardless of arrival order", func(t *testing.T) {
		forward := []domain.Outcome{
			outcomeFor(units, 0, domain.StatusPassed),
			outcomeFor(units, 1, domain.StatusFailed),
			outcomeFor(units, 2, domain.StatusPassed),
		}
		backward := []domain.Outcome{forward[2], forward[1], forward[0]}

		repA, err := agg.Aggregate(units, forward, 3, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		repB, err := agg.Aggregate(units, backward, 3, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := range repA.Units {
			if repA.Units[i].Path != repB.Units[i].Path || repA.Units[i].Status != repB.Units[i].Status {
				t.Errorf("unit %d differs between arrival orders", i)
			}
		}
	})

	t.Run("tallies statuses and keeps output only for non-passing units", func(t *testing.T) {
		outcomes := []domain.Outcome{
			outcomeFor(units, 0, domain.StatusPassed),
			outcomeFor(units, 1, domain.StatusFailed),
			outcomeFor(units, 2, domain.StatusErrored),
		}

		rep, err := agg.Aggregate(units, outcomes, 2, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		meta := rep.Meta
		if meta.TotalUnits != 3 || meta.PassedUnits != 1 || meta.FailedUnits != 1 || meta.ErroredUnits != 1 {
			t.Errorf("meta counts = %+v", meta)
		}
		if meta.Workers != 2 {
			t.Errorf("workers = %d", meta.Workers)
		}
		if meta.RunID == "" {
			t.Error("run id should be set")
		}
		if rep.Units[0].Output != "" {
			t.Error("passing unit should not keep output")
		}
		if rep.Units[1].Output == "" || rep.Units[2].Output == "" {
			t.Error("non-passing units should keep output")
		}
		if len(rep.Failures) != 2 {
			t.Errorf("expected 2 synthesized failures, got %d", len(rep.Failures))
		}
	})

	t.Run("missing outcome is an error", func(t *testing.T) {
		outcomes := []domain.Outcome{
			outcomeFor(units, 0, domain.StatusPassed),
			outcomeFor(units, 1, domain.StatusPassed),
		}
		if _, err := agg.Aggregate(units, outcomes, 1, time.Second); err == nil {
			t.Fatal("expected an error for a missing outcome")
		}
	})

	t.Run("duplicate outcome is an error", func(t *testing.T) {
		outcomes := []domain.Outcome{
			outcomeFor(units, 0, domain.StatusPassed),
			outcomeFor(units, 0, domain.StatusFailed),
			outcomeFor(units, 2, domain.StatusPassed),
		}
		if _, err := agg.Aggregate(units, outcomes, 1, time.Second); err == nil {
			t.Fatal("expected an error for a duplicate outcome")
		}
	})
}

func TestReport_StatusAndExitCode(t *testing.T) {
	tests := []struct {
		name       string
		meta       domain.ReportMeta
		wantStatus domain.Status
		wantExit   int
	}{
		{
			name:       "all passed",
			meta:       domain.ReportMeta{TotalUnits: 2, PassedUnits: 2},
			wantStatus: domain.StatusPassed,
			wantExit:   0,
		},
		{
			name:       "one failed",
			meta:       domain.ReportMeta{TotalUnits: 2, PassedUnits: 1, FailedUnits: 1},
			wantStatus: domain.StatusFailed,
			wantExit:   1,
		},
		{
			name:       "errored dominates failed",
			meta:       domain.ReportMeta{TotalUnits: 3, PassedUnits: 1, FailedUnits: 1, ErroredUnits: 1},
			wantStatus: domain.StatusErrored,
			wantExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &domain.Report{Meta: tt.meta}
			if got := rep.Status(); got != tt.wantStatus {
				t.Errorf("Status() = %s, want %s", got, tt.wantStatus)
			}
			if got := rep.ExitCode(); got != tt.wantExit {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantExit)
			}
		})
	}
}
