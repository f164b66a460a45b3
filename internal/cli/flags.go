package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/auth"
	"github.com/thenoetrevino/countwave/internal/models"
)

// EnvOwner names the acting user when --owner is not given
const EnvOwner = "COUNTWAVE_OWNER"

var errNoOwner = errors.New("no owner given")

// AddOutputFlags registers the agent-friendly flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// AddOwnerFlag registers --owner for commands that act as a user
func AddOwnerFlag(cmd *cobra.Command) {
	cmd.Flags().String("owner", "", "User ID to act as (default $"+EnvOwner+", then auth.dev_user.id)")
}

// Formatter builds the OutputFormatter from --json and --quiet
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Run is one command invocation: its context, the CLI and the output mode.
// User is set when the command acts as a user.
type Run struct {
	Ctx  context.Context
	CLI  *CLI
	Out  *OutputFormatter
	User *models.User
}

// Start prepares a command run. With withOwner the acting user is resolved
// and attached to Ctx so the action layer can authorize it.
func Start(cmd *cobra.Command, withOwner bool) (*Run, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := Formatter(cmd)

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		return nil, formatter.Fail(ExitError, "INITIALIZATION_ERROR", err.Error())
	}
	run := &Run{Ctx: ctx, CLI: cliInstance, Out: formatter}

	if withOwner {
		user := resolveOwner(cmd, cliInstance)
		if user == nil {
			run.Close()
			return nil, formatter.FailWithSuggestion(ExitUsage, "USAGE_ERROR", errNoOwner.Error(),
				"pass --owner or set "+EnvOwner)
		}
		run.User = user
		run.Ctx = auth.WithUser(ctx, user)
	}
	return run, nil
}

// Close releases the CLI, logging rather than failing on error
func (r *Run) Close() {
	if err := r.CLI.Close(); err != nil {
		slog.Error("error closing CLI", "error", err)
	}
}

func resolveOwner(cmd *cobra.Command, c *CLI) *models.User {
	owner, _ := cmd.Flags().GetString("owner")
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = strings.TrimSpace(os.Getenv(EnvOwner))
	}

	dev := c.Config.Auth.DevUser
	if owner == "" {
		owner = dev.ID
	}
	if owner == "" {
		return nil
	}
	if owner == dev.ID {
		return &models.User{ID: dev.ID, Name: dev.Name, Email: dev.Email, ImageURL: dev.ImageURL}
	}
	return &models.User{ID: owner}
}
