package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/meltforce/fitrec/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP over stdio",
		Long: "Serves the fitrec MCP tools over stdin/stdout. With --remote the tools call a running " +
			"fitrec server; otherwise they use the catalog and advisor from config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, log, closeDS, err := dataSource(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeDS()

			log.Info("mcp stdio server starting", "version", version)
			return server.ServeStdio(mcp.New(ds, version, log))
		},
	}
}
