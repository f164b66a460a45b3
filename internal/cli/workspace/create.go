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

// CreateCmd returns the workspace create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new workspace",
		Long: `Create a new workspace owned by --owner.

Examples:
  # Simple workspace (human-readable output)
  countwave workspace create --name="School" --owner=user_1

  # JSON output for agents
  countwave workspace create --name="School" --json

  # Quiet mode for bash capture
  WS_ID=$(countwave workspace create --name="School" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Workspace name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}

	cli.AddOwnerFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	run, err := cli.Start(cmd, true)
	if err != nil {
		return err
	}
	defer run.Close()

	res := run.CLI.App.Actions.CreateWorkspace(run.Ctx, actions.CreateWorkspaceInput{Name: name})
	if !res.OK() {
		return run.Out.FailResult(res)
	}
	ws := res.Data

	// Output based on mode (JSON/Quiet/Human)
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

	// Human-readable output
	fmt.Println(styles.CreateStyle.Render(fmt.Sprintf("✓ Workspace '%s' created (ID: %d)", ws.Name, ws.ID)))
	return nil
}
