package workspace

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

// UpdateCmd returns the workspace update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename a workspace or change its sidebar visibility",
		Long: `Update a workspace. Only the flags given are changed.

Examples:
  countwave workspace update --id=1 --name="Semester 2"
  countwave workspace update --id=1 --hidden
  countwave workspace update --id=1 --hidden=false
`,
		RunE: runUpdate,
	}

	cmd.Flags().Int("id", 0, "Workspace ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}

	cmd.Flags().String("name", "", "New workspace name")
	cmd.Flags().Bool("hidden", false, "Hide the workspace from the sidebar")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("id")

	in := actions.UpdateWorkspaceInput{ID: workspaceID}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		in.Name = &name
	}
	if cmd.Flags().Changed("hidden") {
		hidden, _ := cmd.Flags().GetBool("hidden")
		visible := !hidden
		in.IsVisible = &visible
	}
	if in.Name == nil && in.IsVisible == nil {
		return cli.Formatter(cmd).FailWithSuggestion(cli.ExitUsage, "USAGE_ERROR",
			"nothing to update", "pass --name or --hidden")
	}

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.UpdateWorkspace(run.Ctx, in)
	if !res.OK() {
		return run.Out.FailResult(res)
	}
	ws := res.Data

	if run.Out.Quiet {
		fmt.Printf("%d\n", ws.ID)
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"workspace": ws,
		})
	}

	fmt.Println(styles.EditStyle.Render(fmt.Sprintf("✓ Workspace %d updated", ws.ID)))
	fmt.Println("  " + styles.RenderWorkspaceLine(ws))
	return nil
}
