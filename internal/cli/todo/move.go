package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
	"github.com/thenoetrevino/countwave/internal/models"
)

// MoveCmd returns the todo move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "move <up|down>",
		Short:     "Move a todo one place up or down",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{models.DirectionUp.String(), models.DirectionDown.String()},
		Long: `Swap a todo with its neighbour.

Examples:
  countwave todo move up --workspace=1 --id=4
  countwave todo move down --workspace=1 --id=4 --quiet
`,
		RunE: runMove,
	}

	requireInt(cmd, "workspace", "Workspace ID")
	requireInt(cmd, "id", "Todo ID")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("workspace")
	todoID, _ := cmd.Flags().GetInt("id")

	direction := strings.ToLower(args[0])
	if direction != models.DirectionUp.String() && direction != models.DirectionDown.String() {
		return cli.Formatter(cmd).Fail(cli.ExitUsage, "USAGE_ERROR",
			fmt.Sprintf("invalid direction %q (must be: up, down)", args[0]))
	}

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.ReorderTodo(run.Ctx, actions.ReorderTodoInput{
		ID:          todoID,
		WorkspaceID: workspaceID,
		Direction:   direction,
	})
	if !res.OK() {
		return run.Out.FailResult(res)
	}

	if run.Out.Quiet {
		cli.PrintIDs(res.Data)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"todos":   res.Data,
		})
	}

	fmt.Println(styles.EditStyle.Render(fmt.Sprintf("✓ Todo %d moved %s", todoID, direction)))
	for _, t := range res.Data {
		fmt.Println("  " + styles.RenderTodoLine(t))
	}
	return nil
}
