package workspace

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
)

// DeleteCmd returns the workspace delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a workspace",
		Long:  "Delete a workspace with all its todos and subtasks (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Workspace ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	// Ask for confirmation unless force, quiet or json mode
	if !force && run.Out.Human() {
		ws, err := run.CLI.App.WorkspaceService.GetWorkspace(run.Ctx, workspaceID)
		if err != nil || ws.OwnerID != run.User.ID {
			return run.Out.Fail(cli.ExitNotFound, "WORKSPACE_NOT_FOUND", fmt.Sprintf("workspace %d not found", workspaceID))
		}
		if !cli.Confirm(cmd, fmt.Sprintf("Delete workspace #%d: '%s' and everything in it?", ws.ID, ws.Name)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	res := run.CLI.App.Actions.DeleteWorkspace(run.Ctx, actions.DeleteWorkspaceInput{ID: workspaceID})
	if !res.OK() {
		return run.Out.FailResult(res)
	}

	if run.Out.Quiet {
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":      true,
			"workspace_id": workspaceID,
		})
	}

	fmt.Println(styles.DeleteStyle.Render(fmt.Sprintf("✓ Workspace %d deleted", workspaceID)))
	return nil
}
