package cmd

import (
	"fmt"
	"strings"

	"github.com/agentic-research/playmap/internal/play"
	"github.com/spf13/cobra"
)

var notMerge bool

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the apps on a category page",
	Long: `List the apps on a category page. Without a category, APPLICATION is used.
By default every collection on the page is merged into one list without
duplicates; --not-merge prints the titled collections instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := play.ListOptions{
			Lang:     s.cfg.Lang,
			Country:  s.cfg.Country,
			NotMerge: notMerge,
		}
		if len(args) == 1 {
			opts.Category = args[0]
		}
		ctx := cmd.Context()
		res, err := s.client.List(ctx, opts)
		if err != nil {
			return err
		}
		key := strings.ToUpper(opts.Category)
		if key == "" {
			key = string(play.Application)
		}
		if err := s.saveRecord(ctx, "list", key, res.Value()); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res.Value())
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the known category ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range play.Categories() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), c); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&notMerge, "not-merge", false, "Print collection groups instead of one merged list")
	rootCmd.AddCommand(listCmd, categoriesCmd)
}
