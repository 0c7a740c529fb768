package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [skill...]",
	Short: "Show skill levels, totals and rustiness",
	Long: `Show the display line for the whole graph, or detail rows for the
named skills. Without arguments every skill is listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, _, err := newService(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, svc.Display(ctx))

		infos := svc.SkillInfos(ctx)
		if len(args) > 0 {
			infos = infos[:0]
			for _, name := range args {
				info, err := svc.SkillInfo(ctx, name)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				infos = append(infos, info)
			}
		}
		if len(infos) == 0 {
			return nil
		}

		w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SKILL\tRAW\tTOTAL\tLEVEL\tNEXT\t%\tSTATE")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.0f\t%s\n",
				info.Name, info.Experience, info.Total,
				info.Level, info.NextLevel, info.Percent, info.Rustiness)
		}
		return w.Flush()
	},
}
