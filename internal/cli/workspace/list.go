package workspace

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
	"github.com/thenoetrevino/countwave/internal/models"
)

// ListCmd returns the workspace list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Long:  "List the workspaces of --owner. Hidden workspaces are only shown with --all.",
		RunE:  runList,
	}

	cmd.Flags().Bool("all", false, "Include workspaces hidden from the sidebar")
	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	workspaces, err := run.CLI.App.WorkspaceService.ListWorkspaces(run.Ctx, run.User.ID)
	if err != nil {
		return run.Out.Fail(cli.ExitError, "WORKSPACE_FETCH_ERROR", err.Error())
	}

	if !all {
		visible := make([]*models.Workspace, 0, len(workspaces))
		for _, ws := range workspaces {
			if ws.IsVisible {
				visible = append(visible, ws)
			}
		}
		workspaces = visible
	}

	// Output in appropriate format
	if run.Out.Quiet {
		cli.PrintIDs(workspaces)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":    true,
			"workspaces": workspaces,
		})
	}

	// Human-readable output
	if len(workspaces) == 0 {
		fmt.Println(styles.SubtitleStyle.Render("No workspaces found"))
		return nil
	}

	fmt.Printf("Found %d workspaces:\n\n", len(workspaces))
	for _, ws := range workspaces {
		fmt.Println("  " + styles.RenderWorkspaceLine(ws))
	}

	return nil
}
