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

// UpdateCmd returns the todo update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit a todo",
		Long: `Edit the task name, description or completion of a todo. Flags that
are not given keep their current value.

Examples:
  countwave todo update --workspace=1 --id=4 --task="Homework Draft"
  countwave todo update --workspace=1 --id=4 --done
  countwave todo update --workspace=1 --id=4 --done=false --description=""
`,
		RunE: runUpdate,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	requireInt(cmd, "id", "Todo ID")
	cmd.Flags().String("task", "", "New task name")
	cmd.Flags().String("description", "", "New markdown description")
	cmd.Flags().Bool("done", false, "Mark the todo completed (--done=false to reopen)")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	todoID, _ := cmd.Flags().GetInt("id")

	flags := cmd.Flags()
	if !flags.Changed("task") && !flags.Changed("description") && !flags.Changed("done") {
		return cli.Formatter(cmd).FailWithSuggestion(cli.ExitUsage, "USAGE_ERROR",
			"nothing to update", "pass --task, --description or --done")
	}

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	// updateTodo replaces task and description together
	existing, err := run.CLI.App.TodoService.GetTodo(run.Ctx, todoID)
	if err != nil || existing.WorkspaceID != workspaceID {
		return run.Out.Fail(cli.ExitNotFound, "TODO_NOT_FOUND", fmt.Sprintf("todo %d not found in workspace %d", todoID, workspaceID))
	}

	fields := actions.TodoFields{
		ID:          todoID,
		WorkspaceID: workspaceID,
		Task:        existing.Task,
		Description: existing.Description,
	}
	if flags.Changed("task") {
		fields.Task, _ = flags.GetString("task")
	}
	if flags.Changed("description") {
		fields.Description, _ = flags.GetString("description")
	}
	if flags.Changed("done") {
		done, _ := flags.GetBool("done")
		fields.IsCompleted = &done
	}

	res := run.CLI.App.Actions.UpdateTodo(run.Ctx, actions.UpdateTodoInput{Todo: fields})
	if !res.OK() {
		return run.Out.FailResult(res)
	}
	todo := res.Data

	if run.Out.Quiet {
		fmt.Printf("%d\n", todo.ID)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"todo":    todo,
		})
	}

	fmt.Println(styles.EditStyle.Render(fmt.Sprintf("✓ Todo %d updated", todo.ID)))
	fmt.Println("  " + styles.RenderTodoLine(todo))
	return nil
}
