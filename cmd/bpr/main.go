package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bpr/internal/cli"
	"bpr/internal/cli/commands"
	"bpr/internal/config"
)

var version = "dev"

// Exit codes: 0 all features passed, 1 one or more features failed or
// errored, 2 invalid arguments, configuration or discovery failure.
const (
	exitOK       = 0
	exitRunFail  = 1
	exitBadSetup = 2
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bpr",
		Short:         "Parallel behave feature runner",
		Long:          `Run behave feature files in parallel across a bounded pool of worker processes and merge the results into a single report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, commands.ErrRunFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps the error taxonomy onto the process exit status. Unit
// failures surface as ErrRunFailed after the summary is printed; anything
// else that escapes a command (flag parsing, ConfigError, DiscoveryError)
// stopped the run before it produced a complete result.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, commands.ErrRunFailed):
		return exitRunFail
	default:
		return exitBadSetup
	}
}
