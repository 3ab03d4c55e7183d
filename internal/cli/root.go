// Package cli implements the fitrecctl command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/meltforce/fitrec/internal/app"
	"github.com/meltforce/fitrec/internal/config"
	"github.com/meltforce/fitrec/internal/mcp"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// Execute runs fitrecctl with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fitrecctl",
		Short:        "Query and manage a fitrec workout catalog",
		Long:         "fitrecctl recommends workouts from the local catalog or a remote fitrec server, manages catalog storage and serves MCP over stdio.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Path to config file (defaults and FITREC_* env vars when empty)")
	root.PersistentFlags().String("remote", "", "Base URL of a fitrec server to query instead of the local catalog")

	root.AddCommand(newRecommendCmd())
	root.AddCommand(newAdviseCmd())
	root.AddCommand(newTypesCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newMCPCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads --config after loading .env files.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFiles(); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newLogger logs to stderr so stdout stays parseable.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
}

// dataSource returns the remote HTTP client when --remote is set, otherwise
// a local service built from config. The close func is always non-nil.
func dataSource(ctx context.Context, cmd *cobra.Command) (mcp.DataSource, *slog.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log := newLogger(cmd, cfg)

	if remote, _ := cmd.Flags().GetString("remote"); remote != "" {
		log.Debug("using remote server", "url", remote)
		return mcp.NewHTTPClient(remote), log, func() {}, nil
	}

	svc, closeSvc, err := app.NewService(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return svc, log, closeSvc, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fitrecctl", version)
		},
	}
}
