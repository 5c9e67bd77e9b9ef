package ui

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"bpr/internal/domain"
)

// Formatter formats and displays run output
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintSummary displays the aggregate report statistics
func (f *Formatter) PrintSummary(report *domain.Report) {
	meta := report.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Feature Run Statistics                    ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Feature Files", color.New(color.FgWhite), "%d", meta.TotalUnits)
	f.row("Passed Files", color.New(color.FgGreen), "%d", meta.PassedUnits)
	f.row("Failed Files", color.New(color.FgRed), "%d", meta.FailedUnits)
	f.row("Errored Files", color.New(color.FgRed), "%d", meta.ErroredUnits)
	f.row("Passed Scenarios", color.New(color.FgGreen), "%d", meta.PassedScenarios)
	f.row("Failed Scenarios", color.New(color.FgRed), "%d", meta.FailedScenarios)
	f.row("Skipped Scenarios", color.New(color.FgYellow), "%d", meta.SkippedScenarios)
	f.row("Duration", color.New(color.FgWhite), "%.2fs", meta.DurationSeconds)
	f.row("Workers", color.New(color.FgWhite), "%d", meta.Workers)
	f.lastRow("Timestamp", meta.Timestamp)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	switch report.Status() {
	case domain.StatusPassed:
		color.Green("✓ All features passed!")
	case domain.StatusFailed:
		color.Red("✗ %d feature file(s) failed with %d failing scenario(s)",
			meta.FailedUnits, meta.FailedScenarios)
	case domain.StatusErrored:
		color.Red("✗ %d feature file(s) could not be executed (%d failed normally)",
			meta.ErroredUnits, meta.FailedUnits)
	}
}

func (f *Formatter) row(label string, valueColor *color.Color, format string, value any) {
	fmt.Printf("│ %-31s │ ", label)
	valueColor.Printf("%-27s │\n", fmt.Sprintf(format, value))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
}

func (f *Formatter) lastRow(label, value string) {
	fmt.Printf("│ %-31s │ ", label)
	color.White("%-27s │\n", value)
}

// PrintUnitList prints discovered units without executing them
func (f *Formatter) PrintUnitList(units []domain.Unit) {
	color.Cyan("Discovered %d feature file(s):\n", len(units))
	for _, unit := range units {
		fmt.Printf("  %3d. %s\n", unit.Index+1, unit.Path)
	}
}

// ReplayFailedOutputs prints the captured behave output of every
// non-passing unit, in discovery order, the way the original serial run
// would have shown it.
func (f *Formatter) ReplayFailedOutputs(report *domain.Report) {
	for _, unit := range report.Units {
		if unit.Status == domain.StatusPassed {
			continue
		}
		fmt.Println()
		color.Red("── %s (%s) ──", filepath.Base(unit.Path), unit.Status)
		fmt.Println(unit.Output)
	}
}
