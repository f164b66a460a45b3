package subtask

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
	"github.com/thenoetrevino/countwave/internal/models"
)

// CreateCmd returns the subtask create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a subtask to a todo",
		Long: `Append a subtask to the end of a todo's subtask list.

Examples:
  countwave subtask create --workspace=1 --todo=4 --name="Outline"

  # Without --name the subtask starts as "Untitled Subtask"
  countwave subtask create --workspace=1 --todo=4
  SUB_ID=$(countwave subtask create --workspace=1 --todo=4 --name="Outline" --quiet)
`,
		RunE: runCreate,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	requireInt(cmd, "todo", "Todo ID")
	cmd.Flags().String("name", "", "Subtask name (default \""+models.DefaultSubtaskName+"\")")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	todoID, _ := cmd.Flags().GetInt("todo")
	name, _ := cmd.Flags().GetString("name")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.CreateSubTodo(run.Ctx, actions.CreateSubTodoInput{
		WorkspaceID: workspaceID,
		TodoID:      todoID,
		Name:        name,
	})
	if !res.OK() {
		return run.Out.FailResult(res)
	}
	sub := res.Data

	if run.Out.Quiet {
		fmt.Printf("%d\n", sub.ID)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"subtask": sub,
		})
	}

	fmt.Println(styles.CreateStyle.Render(fmt.Sprintf("✓ Subtask '%s' added to todo %d (ID: %d)", sub.Name, sub.TodoID, sub.ID)))
	return nil
}
