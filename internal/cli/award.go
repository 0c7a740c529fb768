package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/skilltree/internal/domain/model"
)

var (
	awardExp  int
	awardDays int
	awardDeps []string
)

var awardCmd = &cobra.Command{
	Use:   "award <skill> [skill...]",
	Short: "Award experience to one or more skills",
	Long: `Award experience to the named skills, creating them on first award.

A negative --days marks the work overdue: the penalty is capped at half
the base award. A positive --days is an early-finish bonus added verbatim.
Without --exp the configured randomized default award is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, _, err := newService(ctx)
		if err != nil {
			return err
		}

		deps, err := parseDeps(awardDeps)
		if err != nil {
			return err
		}
		newDeps := make(map[string][]model.Dependency, len(args))
		for _, name := range args {
			newDeps[name] = deps
		}

		base := awardExp
		if !cmd.Flags().Changed("exp") {
			base = svc.DefaultAmount()
		}
		results := svc.Award(ctx, args, base, awardDays, newDeps)

		out := cmd.OutOrStdout()
		failed := false
		for _, r := range results {
			switch {
			case r.Err != nil:
				failed = true
				fmt.Fprintf(out, "%s: error: %v\n", r.Skill, r.Err)
			case r.NewLevel != "":
				fmt.Fprintf(out, "%s: +%d exp, reached %s\n", r.Skill, r.Awarded, r.NewLevel)
			default:
				fmt.Fprintf(out, "%s: +%d exp\n", r.Skill, r.Awarded)
			}
		}
		if err := svc.SaveFile(ctx); err != nil {
			return err
		}
		if failed {
			return fmt.Errorf("one or more awards failed")
		}
		return nil
	},
}

func init() {
	awardCmd.Flags().IntVar(&awardExp, "exp", 0, "base experience (default: configured randomized award)")
	awardCmd.Flags().IntVar(&awardDays, "days", 0, "deadline offset in days (negative = overdue)")
	awardCmd.Flags().StringArrayVar(&awardDeps, "dep", nil, "dependency for newly created skills, name[:weight] (repeatable)")
}

// parseDeps parses name[:weight] flags into dependency entries.
func parseDeps(flags []string) ([]model.Dependency, error) {
	deps := make([]model.Dependency, 0, len(flags))
	for _, f := range flags {
		name, weightStr, hasWeight := strings.Cut(f, ":")
		d := model.Dependency{Name: name, Weight: 1}
		if hasWeight {
			w, err := strconv.ParseFloat(weightStr, 64)
			if err != nil {
				return nil, fmt.Errorf("bad dependency %q: %v", f, err)
			}
			d.Weight = w
		}
		deps = append(deps, d)
	}
	return deps, nil
}
