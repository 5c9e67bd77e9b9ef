package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// InteractiveOutput reports whether stderr is a terminal; the progress bar
// is only rendered interactively so piped output stays parseable.
func InteractiveOutput() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

// ProgressBar creates and manages the run progress bar
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar sized for the unit count
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(
			color.CyanString("Running features: ")+
				color.GreenString("[passed: 0")+
				" | "+
				color.RedString("failed: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update advances the bar to completed units and refreshes the live
// scenario pass/fail counts in the description.
func (p *ProgressBar) Update(completed, passedScenarios, failedScenarios int) {
	p.bar.Set(completed)
	p.bar.Describe(
		color.CyanString("Running features: ") +
			color.GreenString("[passed: %d", passedScenarios) +
			" | " +
			color.RedString("failed: %d]", failedScenarios),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
