package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the skill graph as a Graphviz DOT document",
	Long: `Export the graph as a directed-graph description for an external
layout tool. Node size tracks total experience, fill color tracks
rustiness, and skills at excluded levels are omitted together with
their edges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, _, err := newService(ctx)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return svc.WriteDOT(ctx, w)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write to file instead of stdout")
}
