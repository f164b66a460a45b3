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
	"github.com/thenoetrevino/countwave/internal/models"
)

// ShareCmd returns the workspace share subcommand
func ShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Publish or unpublish a workspace preview",
		Long: `Make a workspace viewable read-only at its preview link, or take it down
with --off. The link stays the same across toggles.

Examples:
  countwave workspace share --id=1
  URL=$(countwave workspace share --id=1 --quiet)
  countwave workspace share --id=1 --off
`,
		RunE: runShare,
	}

	cmd.Flags().Int("id", 0, "Workspace ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("off", false, "Stop sharing the workspace")

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShare(cmd *cobra.Command, args []string) error {
	workspaceID, _ := cmd.Flags().GetInt("id")
	off, _ := cmd.Flags().GetBool("off")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.ShareWorkspace(run.Ctx, actions.ShareWorkspaceInput{ID: workspaceID, IsPublic: !off})
	if !res.OK() {
		return run.Out.FailResult(res)
	}
	ws := res.Data
	url := PreviewURL(run.CLI.Config.PublicBaseURL(), ws)

	if run.Out.Quiet {
		if ws.IsPublic {
			fmt.Println(url)
		}
		return nil
	}

	if run.Out.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"workspace": ws,
			"url":       url,
		})
	}

	if !ws.IsPublic {
		fmt.Println(styles.EditStyle.Render(fmt.Sprintf("✓ Workspace '%s' is no longer shared", ws.Name)))
		return nil
	}
	fmt.Println(styles.EditStyle.Render(fmt.Sprintf("✓ Workspace '%s' is shared", ws.Name)))
	fmt.Println("  " + styles.RenderField("Preview", url))
	return nil
}

// PreviewURL is the public link of a shared workspace, or "" when it has none
func PreviewURL(baseURL string, ws *models.Workspace) string {
	if ws.PublicID == "" {
		return ""
	}
	return baseURL + "/preview/" + ws.PublicID
}
