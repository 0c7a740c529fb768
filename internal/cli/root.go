// Package cli wires the cobra command tree for the skilltree binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/okian/skilltree/internal/app"
	"github.com/okian/skilltree/internal/config"
	"github.com/okian/skilltree/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "skilltree",
	Short:         "Track skills as a weighted dependency graph with levels and rustiness",
	Long:          "skilltree accumulates experience across a weighted skill dependency graph,\nconverts totals into named levels and decays perceived mastery over time.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(awardCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// newService loads configuration, builds the engine service and loads
// the persisted graph.
func newService(ctx context.Context) (*app.Service, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.FromConfig(cfg, app.WithLogger(logger.Get()))
	if err != nil {
		return nil, nil, err
	}
	if _, err := svc.LoadFile(ctx); err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}
