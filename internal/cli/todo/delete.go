package todo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
)

// DeleteCmd returns the todo delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a todo",
		Long:  "Delete a todo and its subtasks (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	requireInt(cmd, "id", "Todo ID")
	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	todoID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	if !force && run.Out.Human() {
		existing, err := run.CLI.App.TodoService.GetTodo(run.Ctx, todoID)
		if err != nil || existing.WorkspaceID != workspaceID {
			return run.Out.Fail(cli.ExitNotFound, "TODO_NOT_FOUND", fmt.Sprintf("todo %d not found in workspace %d", todoID, workspaceID))
		}
		if !cli.Confirm(cmd, fmt.Sprintf("Delete todo #%d: '%s'?", existing.ID, existing.Task)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	res := run.CLI.App.Actions.DeleteTodo(run.Ctx, actions.DeleteTodoInput{ID: todoID, WorkspaceID: workspaceID})
	if !res.OK() {
		return run.Out.FailResult(res)
	}

	if run.Out.Quiet {
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":      true,
			"todo_id":      todoID,
			"workspace_id": res.Data.WorkspaceID,
		})
	}

	fmt.Println(styles.DeleteStyle.Render(fmt.Sprintf("✓ Todo %d deleted", todoID)))
	return nil
}
