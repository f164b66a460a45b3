// Package subtask holds all cli commands related to subtasks
//
// e.g., countwave subtask ...
package subtask

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// SubtaskCmd returns the subtask parent command
func SubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtask",
		Aliases: []string{"sub"},
		Short:   "Manage the subtasks of a todo",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func requireInt(cmd *cobra.Command, name, usage string) {
	cmd.Flags().Int(name, 0, usage+" (required)")
	if err := cmd.MarkFlagRequired(name); err != nil {
		slog.Error("error marking flag as required", "flag", name, "error", err)
	}
}
