package cmd

import (
	"github.com/agentic-research/playmap/internal/mappings"
	"github.com/agentic-research/playmap/internal/play"
	"github.com/spf13/cobra"
)

var appCmd = &cobra.Command{
	Use:   "app [appId]",
	Short: "Fetch one app's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		rec, err := s.client.App(ctx, play.AppOptions{
			AppID:   args[0],
			Lang:    s.cfg.Lang,
			Country: s.cfg.Country,
		})
		if err != nil {
			return err
		}
		if err := s.saveRecord(ctx, mappings.EntityApp, args[0], rec); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rec)
	},
}

func init() {
	rootCmd.AddCommand(appCmd)
}
