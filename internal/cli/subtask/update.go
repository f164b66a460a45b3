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

// UpdateCmd returns the subtask update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename a subtask or toggle its completion",
		Long: `Update a subtask. Only the flags given are changed.

Examples:
  countwave subtask update --workspace=1 --id=9 --name="Outline v2"
  countwave subtask update --workspace=1 --id=9 --done
`,
		RunE: runUpdate,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	requireInt(cmd, "id", "Subtask ID")
	cmd.Flags().String("name", "", "New subtask name")
	cmd.Flags().Bool("done", false, "Mark the subtask completed (--done=false to reopen)")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	subtaskID, _ := cmd.Flags().GetInt("id")

	in := actions.UpdateSubTodoInput{ID: subtaskID, WorkspaceID: workspaceID}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		in.Name = &name
	}
	if cmd.Flags().Changed("done") {
		done, _ := cmd.Flags().GetBool("done")
		in.IsCompleted = &done
	}
	if in.Name == nil && in.IsCompleted == nil {
		return cli.Formatter(cmd).FailWithSuggestion(cli.ExitUsage, "USAGE_ERROR",
			"nothing to update", "pass --name or --done")
	}

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.UpdateSubTodo(run.Ctx, in)
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

	fmt.Println(styles.EditStyle.Render(fmt.Sprintf("✓ Subtask %d updated", sub.ID)))
	fmt.Println(styles.RenderSubtaskLine(sub, true))
	return nil
}
