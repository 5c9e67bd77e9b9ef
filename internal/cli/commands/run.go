package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bpr/internal/config"
	"bpr/internal/discovery"
	"bpr/internal/execution"
	"bpr/internal/parser"
	"bpr/internal/report"
	"bpr/internal/storage"
	"bpr/internal/tags"
	"bpr/internal/ui"
)

// ErrRunFailed marks a run in which one or more units failed or errored.
// The summary has already been printed when it is returned; it exists only
// to drive the process exit code.
var ErrRunFailed = errors.New("one or more feature files did not pass")

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	adapter    execution.Adapter
	parser     *parser.BehaveParser
	aggregator *report.Aggregator
	storage    storage.Storage
	formatter  *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	adapter execution.Adapter,
	behaveParser *parser.BehaveParser,
	aggregator *report.Aggregator,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		adapter:    adapter,
		parser:     behaveParser,
		aggregator: aggregator,
		storage:    st,
		formatter:  formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	filter, err := tags.Parse(rc.config.Flags.Tags)
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(rc.config.IgnoreDirs)
	units, err := scanner.Discover(args)
	if err != nil {
		return err
	}

	pool := execution.NewWorkerPool(rc.config.Workers, rc.adapter, rc.parser)
	if ui.InteractiveOutput() {
		pool.SetProgress(ui.NewProgressBar(len(units)))
	}

	outcomes, duration, err := pool.Execute(cmd.Context(), units, filter)
	if err != nil {
		return err
	}

	rep, err := rc.aggregator.Aggregate(units, outcomes, pool.Workers(), duration)
	if err != nil {
		return err
	}

	if err := rc.storage.Save(rep); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	rc.formatter.ReplayFailedOutputs(rep)
	rc.formatter.PrintSummary(rep)

	if rep.ExitCode() != 0 {
		return ErrRunFailed
	}
	return nil
}
