package subtask

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
)

// DeleteCmd returns the subtask delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a subtask",
		RunE:  runDelete,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	requireInt(cmd, "id", "Subtask ID")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	subtaskID, _ := cmd.Flags().GetInt("id")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.DeleteSubTodo(run.Ctx, actions.DeleteSubTodoInput{ID: subtaskID, WorkspaceID: workspaceID})
	if !res.OK() {
		return run.Out.FailResult(res)
	}

	if run.Out.Quiet {
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":    true,
			"subtask_id": subtaskID,
		})
	}

	fmt.Println(styles.DeleteStyle.Render(fmt.Sprintf("✓ Subtask %d deleted", subtaskID)))
	return nil
}
