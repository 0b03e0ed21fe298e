package main

import (
	"context"
	"forum/internal/config"
	"forum/internal/seed"
	"forum/pkg/logger"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCommand constructs the 'seed' subcommand that fills the store with
// demo users, communities, posts and comments, or removes all of them with
// --drop.
func seedCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seeds the database with demo data",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			if err := cfg.RequirePersistentStorage(); err != nil {
				logger.Fatal(ctx, "seeding needs the postgres storage driver", zap.Error(err))
			}

			drop, _ := cmd.Flags().GetBool("drop")
			posts, _ := cmd.Flags().GetInt("posts")
			randSeed, _ := cmd.Flags().GetUint64("rand-seed")
			if randSeed == 0 {
				randSeed = uint64(time.Now().UnixNano()) //nolint: gosec
			}

			a, closeApp := getApp(ctx, cfg)
			defer closeApp()

			seeder := a.Seeder(seed.Options{Posts: posts, Seed: randSeed})

			if drop {
				if _, err := seeder.Drop(ctx); err != nil {
					logger.Fatal(ctx, "could not drop seeded data", zap.Error(err))
				}

				return
			}

			if _, err := seeder.Seed(ctx); err != nil {
				logger.Fatal(ctx, "could not seed", zap.Error(err))
			}
		},
	}

	cmd.Flags().Bool("drop", false, "Delete comments, posts, communities and users instead of seeding")
	cmd.Flags().Int("posts", 10, "Number of posts to create")
	cmd.Flags().Uint64("rand-seed", 0, "Seed for generated content; 0 picks one from the clock")

	return cmd
}
