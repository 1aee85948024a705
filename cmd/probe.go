package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/agentic-research/playmap/internal/mappings"
	"github.com/agentic-research/playmap/internal/probe"
	"github.com/spf13/cobra"
)

var probeEntity string

var probeCmd = &cobra.Command{
	Use:   "probe [url-or-file] [needle]",
	Short: "Locate values in a page to repair drifted mappings",
	Long: `Print the JSONPath of every value in the page matching needle. With
--entity, also list the fields of each mapping version that resolve to
nothing in the page. Only the --entity report is printed when needle is
omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		doc, err := loadDocument(cmd.Context(), s.client, args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		if len(args) == 2 {
			for _, h := range probe.Find(doc, args[1]) {
				fmt.Fprintf(w, "%s\t%v\n", h.Path, h.Value)
			}
		}
		if probeEntity != "" {
			versions, err := mappings.Default().Versions(probeEntity)
			if err != nil {
				return err
			}
			for _, spec := range versions.Specs {
				missing := probe.Missing(spec, doc)
				fmt.Fprintf(w, "%s/%s\t%d of %d fields missing\t%v\n",
					versions.Entity, spec.Version, len(missing), len(spec.Fields), missing)
			}
		}
		return w.Flush()
	},
}

func init() {
	probeCmd.Flags().StringVarP(&probeEntity, "entity", "e", "", "Report missing fields for this mapping entity")
	rootCmd.AddCommand(probeCmd)
}
