package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"coilapi/internal/cli"
	"coilapi/internal/config"
	"coilapi/internal/database"
	"coilapi/internal/logging"
	"coilapi/internal/repository/postgres"
)

func main() {
	cfg := config.Load()
	// Logs go to stderr so command output stays machine-readable.
	logging.SetupWithWriter(os.Stderr, cfg.LogLevel, cfg.Location())

	openEnv := func(ctx context.Context) (*cli.Env, func() error, error) {
		sessions := database.NewSessionManager()
		if err := sessions.Init(cfg.Database); err != nil {
			return nil, nil, err
		}
		return &cli.Env{
			Sessions: sessions,
			Repo:     postgres.NewCoilPostgres(cfg.Location()),
			DBHost:   cfg.Database.Host,
		}, sessions.Close, nil
	}

	if err := cli.NewRootCommand(openEnv).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
