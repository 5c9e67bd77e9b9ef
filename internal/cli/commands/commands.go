package commands

import (
	"github.com/spf13/cobra"

	"bpr/internal/cli"
	"bpr/internal/config"
	"bpr/internal/execution"
	"bpr/internal/parser"
	"bpr/internal/report"
	"bpr/internal/storage"
	"bpr/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	behaveParser := parser.NewBehaveParser()
	adapter := execution.NewBehaveAdapter(cfg)
	aggregator := report.NewAggregator(behaveParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	viewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, adapter, behaveParser, aggregator, jsonStorage, formatter),
		List:     NewListCommand(cfg, formatter),
		Failures: NewFailuresCommand(jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Resolve the full configuration once flags are parsed; an invalid
	// value aborts here, before discovery or dispatch.
	resolve := func(cmd *cobra.Command, args []string) error {
		resolved, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *resolved
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [--tags=<expr>]... <path>...",
		Short:   "Run behave feature files in parallel",
		Long:    "Discover feature files from the given paths and execute each across a bounded pool of behave worker processes",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Run.Execute,
		PreRunE: resolve,
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of parallel workers (default BEHAVE_MAX_WORKERS or 3)")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-feature wall-clock timeout, e.g. 5m (0 disables)")
	runCmd.Flags().StringVar(&flags.BehaveBin, "behave-bin", "", "Path to the behave executable")
	runCmd.Flags().StringArrayVar(&flags.Tags, "tags", nil, "Tag expression passed through to behave (repeatable, same as behave --tags)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list <path>...",
		Short:   "List discovered feature files",
		Long:    "Resolve the given paths into the ordered unit list without executing anything",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.List.Execute,
		PreRunE: resolve,
	}
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View failing scenarios interactively",
		Long:    "Display the failing scenarios from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: resolve,
	}
	rootCmd.AddCommand(failuresCmd)
}
