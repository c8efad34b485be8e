package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge-backend/config"
	"github.com/promptforge/promptforge-backend/internal/bootstrap"
	"github.com/promptforge/promptforge-backend/internal/logging"
	"github.com/promptforge/promptforge-backend/internal/storage/postgres"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if _, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
			return err
		}
		if err := initSchema(cmd.Context(), cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database initialized successfully!")
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
}

func initSchema(ctx context.Context, cfg *config.Config) error {
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      postgres.DSN(&cfg.Database),
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	log.Info().Msg("database schema ready")
	return nil
}
