package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/okian/skilltree/internal/cli"
	"github.com/okian/skilltree/internal/config"
	"github.com/okian/skilltree/pkg/logger"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply the configured log level before any command runs; commands
	// reload the full config themselves.
	if cfg, err := config.Load(context.Background()); err == nil {
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			_ = logger.SetLevelString("info")
		}
	}

	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
