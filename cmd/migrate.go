package main

import (
	"context"
	"database/sql"
	root "forum"
	"forum/internal/config"
	"forum/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand that applies database
// migrations to the latest version using goose.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if err := cfg.RequirePersistentStorage(); err != nil {
				logger.Fatal(ctx, "migrations need the postgres storage driver", zap.Error(err))
			}

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			goose.SetBaseFS(root.Migrations)
			goose.SetLogger(zap.NewStdLog(logger.Get(ctx)))

			if err := goose.SetDialect("postgres"); err != nil {
				logger.Fatal(ctx, "could not set goose dialect to postgres", zap.Error(err))
			}
			if err := goose.UpContext(ctx, strg.DB.(*sql.DB), "migrations"); err != nil {
				logger.Fatal(ctx, "could not migrate pgsql", zap.Error(err))
			}
		},
	}

	return cmd
}
