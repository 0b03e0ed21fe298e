// Package auth registers users, logs them in and resolves their profiles.
// Identity is asserted by username alone; a successful login yields an
// access token signed by the configured TokenIssuer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/logger"
	"forum/pkg/serrors"
	"forum/pkg/storage"
	"time"

	"go.uber.org/zap"
)

type service struct {
	storage storage.Storage
	tokens  TokenIssuer
	now     func() time.Time
}

// Register creates a user with its first login already stamped, in a single
// write. A taken username is a
// Conflict, whether it is caught by the lookup or by the store's unique
// constraint when two registrations race.
func (s service) Register(ctx context.Context, username, fullName, image string) (*domain.Profile, error) {
	existing, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not look up username: %w", err)
	}
	if existing != nil {
		return nil, serrors.With(serrors.ErrConflict, "username already exists")
	}

	user, err := s.storage.CreateUser(ctx, domain.User{
		Username:  username,
		FullName:  fullName,
		Image:     image,
		LastLogin: s.now().UTC(),
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, serrors.Wrap(serrors.ErrConflict, err, "username already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	logger.Info(ctx, "user registered", zap.Stringer("userID", user.ID), zap.String("username", username))
	profile := user.Profile()

	return &profile, nil
}

// Login stamps the user's last login and issues an access token. Unknown
// usernames are Unauthorized and leave the store untouched.
func (s service) Login(ctx context.Context, username string) (*Session, error) {
	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not look up username: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "invalid username")
	}

	user, err = s.touch(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, fmt.Errorf("could not issue access token: %w", err)
	}

	return &Session{User: user.Profile(), AccessToken: token}, nil
}

func (s service) Profile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "user not found")
	}

	profile := user.Profile()

	return &profile, nil
}

func (s service) touch(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.storage.TouchLastLogin(ctx, id, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("could not update last login: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "user not found")
	}

	return user, nil
}

// New creates an auth Service over storage, issuing tokens with tokens.
func New(storage storage.Storage, tokens TokenIssuer) Service {
	return &service{
		storage: storage,
		tokens:  tokens,
		now:     time.Now,
	}
}
