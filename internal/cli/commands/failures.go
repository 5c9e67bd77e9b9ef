package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bpr/internal/storage"
	"bpr/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(st storage.Storage, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{storage: st, viewer: viewer}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := fc.storage.Load()
	if err != nil {
		return fmt.Errorf("no saved run found, run `bpr run` first: %w", err)
	}
	return fc.viewer.View(report)
}
