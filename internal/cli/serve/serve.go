// Package serve holds the command that runs the web application
//
// e.g., countwave serve --addr=:8080
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/countwave/internal/auth"
	"github.com/thenoetrevino/countwave/internal/cli"
	"github.com/thenoetrevino/countwave/internal/config"
	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/web"
)

const readHeaderTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the CountWave web server",
		Long: `Serve the dashboard, the datastar UI endpoints, the JSON action API and
public previews. Stops gracefully on SIGINT or SIGTERM.

Examples:
  countwave serve
  countwave serve --addr=:8080 --auth=header --base-url=https://todo.example.com
  COUNTWAVE_AUTH_MODE=dev countwave serve
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().String("base-url", "", "Public URL prefix for share links (overrides server.base_url)")
	cmd.Flags().String("auth", "", "Identity mode: none, dev or header (overrides auth.mode)")
	cmd.Flags().String("db", "", "SQLite database path (overrides database.path)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter := cli.Formatter(cmd)

	cfg, err := cli.ConfigFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "CONFIG_ERROR", err.Error())
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return formatter.Fail(cli.ExitUsage, "CONFIG_ERROR", err.Error())
	}

	provider, err := auth.NewProvider(cfg.Auth.Mode, models.User{
		ID:       cfg.Auth.DevUser.ID,
		Name:     cfg.Auth.DevUser.Name,
		Email:    cfg.Auth.DevUser.Email,
		ImageURL: cfg.Auth.DevUser.ImageURL,
	})
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "CONFIG_ERROR", err.Error())
	}

	cmd.SetContext(cli.WithConfig(ctx, cfg))
	run, err := cli.Start(cmd, false)
	if err != nil {
		return err
	}
	defer run.Close()

	application := run.CLI.App
	application.Start(ctx)

	server, err := web.NewServer(application, provider, web.Config{
		BaseURL: cfg.PublicBaseURL(),
		Theme:   cfg.Theme.Default,
	})
	if err != nil {
		return formatter.Fail(cli.ExitError, "SERVER_ERROR", err.Error())
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		slog.Info("countwave starting",
			"addr", cfg.Server.Addr,
			"base_url", cfg.PublicBaseURL(),
			"auth", cfg.Auth.Mode,
			"db", cfg.Database.Path,
			"pid", os.Getpid())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return formatter.Fail(cli.ExitError, "SERVER_ERROR", fmt.Sprintf("listen on %s: %v", cfg.Server.Addr, err))
		}
	}

	slog.Info("countwave shutting down gracefully")

	// end live-refresh streams first; Shutdown waits for open handlers
	if err := application.Close(); err != nil {
		slog.Error("error closing app", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
		return cli.Exit(cli.ExitError, err)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("auth"); v != "" {
		cfg.Auth.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Database.Path = v
	}
}
