package cmd

import (
	"log/slog"

	"github.com/agentic-research/playmap/internal/mcpserve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the app and list operations as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		slog.Info("serving MCP on stdio", "version", Version)
		return mcpserve.New(s.client, slog.Default()).ServeStdio(Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
