package todo

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

// CreateCmd returns the todo create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a todo to the end of a workspace",
		Long: `Add a todo to the end of a workspace.

Examples:
  countwave todo create --workspace=1 --task="Reading"

  # With a markdown description
  countwave todo create --workspace=1 --task="Homework" \
    --description="Chapters **3** and 4"

  TODO_ID=$(countwave todo create --workspace=1 --task="Reading" --quiet)
`,
		RunE: runCreate,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	cmd.Flags().String("task", "", "Task name, at most 60 characters (required)")
	if err := cmd.MarkFlagRequired("task"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Markdown description, at most 200 characters")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	task, _ := cmd.Flags().GetString("task")
	description, _ := cmd.Flags().GetString("description")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.CreateTodo(run.Ctx, actions.CreateTodoInput{
		WorkspaceID: workspaceID,
		Task:        task,
		Description: description,
	})
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

	fmt.Println(styles.CreateStyle.Render(fmt.Sprintf("✓ Todo '%s' created (ID: %d)", todo.Task, todo.ID)))
	if todo.Description != "" {
		fmt.Println("  " + styles.RenderField("Description", todo.Description))
	}
	return nil
}
