package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"nflagent/internal/app"
	"nflagent/internal/config"
	"nflagent/internal/logging"
)

func main() {
	week := flag.Int("week", 0, "NFL week to list (default: next week with games)")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, os.Stdin, os.Stdout, logger)

	if err := application.Run(ctx, *week); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
