package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
	"github.com/thenoetrevino/countwave/internal/models"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
)

// ShowCmd returns the workspace show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [workspace-id]",
		Short: "Display a workspace as a checklist tree",
		Long: `Display the todos of a workspace in order, with their subtasks
indented underneath.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cmd.Flags().Int("id", 0, "Workspace ID (can also be provided as positional argument)")
	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("id")
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return cli.Formatter(cmd).Fail(cli.ExitUsage, "USAGE_ERROR", fmt.Sprintf("invalid workspace ID %q", args[0]))
		}
		workspaceID = id
	}
	if workspaceID <= 0 {
		return cli.Formatter(cmd).Fail(cli.ExitUsage, "USAGE_ERROR", "workspace ID is required")
	}

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	ws, err := run.CLI.App.WorkspaceService.GetWorkspaceTree(run.Ctx, workspaceID)
	if err == nil && ws.OwnerID != run.User.ID {
		err = workspaceservice.ErrWorkspaceNotFound
	}
	if err != nil {
		if errors.Is(err, workspaceservice.ErrWorkspaceNotFound) {
			return run.Out.Fail(cli.ExitNotFound, "WORKSPACE_NOT_FOUND", fmt.Sprintf("workspace %d not found", workspaceID))
		}
		return run.Out.Fail(cli.ExitError, "WORKSPACE_FETCH_ERROR", err.Error())
	}

	if run.Out.Quiet {
		cli.PrintIDs(ws.Todos)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"workspace": ws,
		})
	}

	fmt.Println(RenderTree(ws))
	return nil
}

// RenderTree renders a workspace heading followed by its todos and subtasks
func RenderTree(ws *models.Workspace) string {
	out := styles.RenderWorkspaceLine(ws) + "\n"
	if len(ws.Todos) == 0 {
		return out + "  " + styles.SubtitleStyle.Render("No todos yet")
	}
	for _, t := range ws.Todos {
		out += "  " + styles.RenderTodoLine(t) + "\n"
		for i, s := range t.Subtasks {
			out += styles.RenderSubtaskLine(s, i == len(t.Subtasks)-1) + "\n"
		}
	}
	return out
}
