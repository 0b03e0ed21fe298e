package main

import (
	"context"
	"fmt"
	"forum/internal/config"
	"forum/internal/token"
	"forum/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that signs an access token for
// an existing user with the configured secret. The user is looked up by
// username; the lifetime defaults to the configured one.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates an access token for given username",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			username, _ := cmd.Flags().GetString("username")
			ttl, _ := cmd.Flags().GetString("ttl")
			if ttl == "" {
				ttl = cfg.JWT.AccessExpiresIn
			}

			lifetime, err := token.ParseTTL(ttl)
			if err != nil {
				logger.Fatal(ctx, "could not parse token lifetime", zap.Error(err))
			}

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			user, err := strg.UserByUsername(ctx, username)
			if err != nil {
				logger.Fatal(ctx, "could not look up user", zap.Error(err))
			}
			if user == nil {
				logger.Fatal(ctx, "user not found", zap.String("username", username))
			}

			signed, err := token.NewIssuer(cfg.JWT.AccessSecret, lifetime).Issue(*user)
			if err != nil {
				logger.Fatal(ctx, "could not sign JWT", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("username", "", "Username of the token subject")
	cmd.Flags().String("ttl", "", "Token TTL (e.g., 15m, 1h, 7d); defaults to the configured lifetime")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
