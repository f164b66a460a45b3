// Package preview renders a shared workspace in the terminal
//
// e.g., countwave preview <public-id>
package preview

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/models"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
)

// PreviewCmd returns the preview command
func PreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <public-id>",
		Short: "Show a shared workspace",
		Long: `Render the read-only preview of a shared workspace: its todos in order,
their markdown descriptions and their subtasks. Needs no owner.

Examples:
  countwave preview 6f1c0b7e-3b8a-4c55-9d0e-2a4f1f0c9e11
  countwave preview 6f1c0b7e-... --markdown > school.md
`,
		Args: cobra.ExactArgs(1),
		RunE: runPreview,
	}

	cmd.Flags().Int("width", 80, "Word wrap width")
	cmd.Flags().String("style", "auto", "Glamour style: auto, dark, light, notty")
	cmd.Flags().Bool("markdown", false, "Print the markdown source instead of rendering it")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	style, _ := cmd.Flags().GetString("style")
	raw, _ := cmd.Flags().GetBool("markdown")

	run, err := cli.Start(cmd, false)
	if err != nil {
		return err
	}
	defer run.Close()

	ws, err := run.CLI.App.WorkspaceService.GetPreview(run.Ctx, args[0])
	if err != nil {
		if errors.Is(err, workspaceservice.ErrWorkspaceNotFound) || errors.Is(err, workspaceservice.ErrEmptyPublicID) {
			return run.Out.Fail(cli.ExitNotFound, "PREVIEW_NOT_FOUND", "this page does not exist or is no longer shared")
		}
		return run.Out.Fail(cli.ExitError, "PREVIEW_FETCH_ERROR", err.Error())
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

	doc := Markdown(ws)
	if raw {
		fmt.Print(doc)
		return nil
	}

	rendered, err := Render(doc, style, width)
	if err != nil {
		return run.Out.Fail(cli.ExitError, "RENDER_ERROR", err.Error())
	}
	fmt.Println(rendered)
	return nil
}

// Markdown lays a workspace tree out as a markdown task list
func Markdown(ws *models.Workspace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ws.Name)
	if len(ws.Todos) == 0 {
		b.WriteString("_No todos yet._\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d of %d done\n\n", ws.CompletedCount(), ws.TodoCount())
	for _, t := range ws.Todos {
		fmt.Fprintf(&b, "- %s %s\n", checkbox(t.IsCompleted), t.Task)
		if desc := strings.TrimSpace(t.Description); desc != "" {
			for _, line := range strings.Split(desc, "\n") {
				fmt.Fprintf(&b, "\n  %s\n", line)
			}
			b.WriteString("\n")
		}
		for _, s := range t.Subtasks {
			fmt.Fprintf(&b, "  - %s %s\n", checkbox(s.IsCompleted), s.Name)
		}
	}
	return b.String()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

type rendererKey struct {
	style string
	width int
}

// Cache Glamour renderers by style and width to avoid expensive re-creation
var rendererCache sync.Map // map[rendererKey]*glamour.TermRenderer

func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: style, width: width}
	if cached, ok := rendererCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}

	rendererCache.Store(key, renderer)
	return renderer, nil
}

// Render renders markdown for the terminal
func Render(doc, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
