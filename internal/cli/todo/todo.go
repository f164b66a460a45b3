// Package todo holds all cli commands related to todos
//
// e.g., countwave todo ...
package todo

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// TodoCmd returns the todo parent command
func TodoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todos of a workspace",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// requireInt registers a required int flag
func requireInt(cmd *cobra.Command, name, usage string) {
	cmd.Flags().Int(name, 0, usage+" (required)")
	if err := cmd.MarkFlagRequired(name); err != nil {
		slog.Error("error marking flag as required", "flag", name, "error", err)
	}
}
