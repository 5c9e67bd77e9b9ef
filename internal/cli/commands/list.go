package commands

import (
	"github.com/spf13/cobra"

	"bpr/internal/config"
	"bpr/internal/discovery"
	"bpr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{config: cfg, formatter: formatter}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner(lc.config.IgnoreDirs)
	units, err := scanner.Discover(args)
	if err != nil {
		return err
	}

	lc.formatter.PrintUnitList(units)
	return nil
}
