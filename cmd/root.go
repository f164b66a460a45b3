package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/cli/preview"
	"github.com/thenoetrevino/countwave/internal/cli/serve"
	"github.com/thenoetrevino/countwave/internal/cli/styles"
	"github.com/thenoetrevino/countwave/internal/cli/subtask"
	"github.com/thenoetrevino/countwave/internal/cli/todo"
	"github.com/thenoetrevino/countwave/internal/cli/workspace"
	"github.com/thenoetrevino/countwave/internal/config"
	"github.com/thenoetrevino/countwave/internal/logging"
)

var (
	configPath string
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "countwave",
	Short: "CountWave - workspaces of ordered todos",
	Long: `CountWave keeps todos in workspaces, each todo with a markdown description
and an ordered list of subtasks. Workspaces can be shared as read-only previews.

Run "countwave serve" for the web dashboard, or use the workspace, todo and
subtask commands to script against the same database.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.yaml or .toml); default $"+config.EnvConfig+" or the XDG path")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Exit(cli.ExitUsage, err)
	})

	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(workspace.WorkspaceCmd())
	rootCmd.AddCommand(todo.TodoCmd())
	rootCmd.AddCommand(subtask.SubtaskCmd())
	rootCmd.AddCommand(preview.PreviewCmd())
}

// setup loads the configuration once for whichever subcommand runs
func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cli.Formatter(cmd).Fail(cli.ExitError, "CONFIG_ERROR", err.Error())
	}

	closer, err := logging.Init(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return cli.Formatter(cmd).Fail(cli.ExitError, "LOGGING_ERROR", err.Error())
	}
	logCloser = closer

	styles.Init(cfg.Theme.Colors)
	cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	return err
}
