package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/skilltree/internal/config"
	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/model"
	"github.com/okian/skilltree/internal/persist"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter graph file",
	Long:  "Write a starter graph file with a small example skill tree and print the active level table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if _, err := os.Stat(cfg.GraphFile); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.GraphFile)
		}

		if err := persist.SaveFile(cfg.GraphFile, starterGraph(time.Now())); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n\nlevel table:\n", cfg.GraphFile)

		table, err := cfg.LevelTable()
		if err != nil {
			return err
		}
		for _, e := range table.Entries() {
			fmt.Fprintf(out, "  %6d  %s\n", e.Threshold, e.Name)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing graph file")
}

// starterGraph builds a tiny example tree: a root skill drawing on two
// fundamentals, one of them weighted down.
func starterGraph(now time.Time) *graph.Graph {
	g := graph.New()
	_ = g.Put(model.Skill{Name: "unix", Experience: 0, LastModified: now})
	_ = g.Put(model.Skill{Name: "algorithms", Experience: 0, LastModified: now})
	_ = g.Put(model.Skill{
		Name:         "coding",
		Experience:   0,
		LastModified: now,
		Dependencies: []model.Dependency{
			{Name: "unix", Weight: 1},
			{Name: "algorithms", Weight: 0.5},
		},
	})
	return g
}
