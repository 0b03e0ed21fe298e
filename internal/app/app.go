// Package app builds the forum services from configuration and a storage
// backend, in dependency order.
package app

import (
	"context"
	"fmt"
	"forum/internal/auth"
	"forum/internal/comments"
	"forum/internal/communities"
	"forum/internal/config"
	"forum/internal/posts"
	"forum/internal/seed"
	"forum/internal/token"
	"forum/internal/validation"
	"forum/pkg/logger"
	"forum/pkg/markup"
	"forum/pkg/storage"
	"forum/pkg/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// App holds every service the HTTP layer and the CLI need.
type App struct {
	Storage     storage.Storage
	Validator   *validation.Validator
	Tokens      *token.Issuer
	Auth        auth.Service
	Posts       posts.Service
	Comments    comments.Service
	Communities communities.Service
	// Tracing records the services' spans; Close flushes it.
	Tracing *sdktrace.TracerProvider
}

// New wires the services on top of strg. It fails when the token lifetime in
// cfg cannot be parsed.
func New(cfg *config.Config, strg storage.Storage) (*App, error) {
	ttl, err := token.ParseTTL(cfg.JWT.AccessExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("could not parse access token lifetime: %w", err)
	}

	tokens := token.NewIssuer(cfg.JWT.AccessSecret, ttl)
	tp := tracing.NewProvider(
		tracing.NewLogExporter(logger.Get(context.Background()).Named("tracing")),
		cfg.Tracing.SampleRatio,
	)

	return &App{
		Storage: strg,
		Validator: validation.New(validation.Limits{
			DefaultLimit: cfg.Listing.DefaultLimit,
			MaxLimit:     cfg.Listing.MaxLimit,
		}),
		Tokens:      tokens,
		Auth:        auth.New(strg, tokens),
		Posts:       posts.New(strg, markup.New(), posts.WithTracerProvider(tp)),
		Comments:    comments.New(strg),
		Communities: communities.New(strg),
		Tracing:     tp,
	}, nil
}

// Close flushes pending spans. The storage is owned by the caller.
func (a *App) Close(ctx context.Context) error {
	if err := a.Tracing.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shut down tracing: %w", err)
	}

	return nil
}

// Seeder returns a seeder writing through the app's storage.
func (a *App) Seeder(options seed.Options) *seed.Seeder {
	return seed.New(a.Storage, a.Communities, options)
}
