package todo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
)

// ListCmd returns the todo list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the todos of a workspace in order",
		RunE:  runList,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	ws, err := run.CLI.App.WorkspaceService.GetWorkspaceTree(run.Ctx, workspaceID)
	if err != nil || ws.OwnerID != run.User.ID {
		return run.Out.Fail(cli.ExitNotFound, "WORKSPACE_NOT_FOUND", fmt.Sprintf("workspace %d not found", workspaceID))
	}

	if run.Out.Quiet {
		cli.PrintIDs(ws.Todos)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"todos":   ws.Todos,
		})
	}

	if len(ws.Todos) == 0 {
		fmt.Println(styles.SubtitleStyle.Render(fmt.Sprintf("No todos in '%s'", ws.Name)))
		return nil
	}

	fmt.Printf("%s (%d/%d done)\n\n", styles.TitleStyle.Render(ws.Name), ws.CompletedCount(), ws.TodoCount())
	for _, t := range ws.Todos {
		fmt.Println("  " + styles.RenderTodoLine(t))
		for i, s := range t.Subtasks {
			fmt.Println(styles.RenderSubtaskLine(s, i == len(t.Subtasks)-1))
		}
	}
	return nil
}
