package auth

import (
	"context"
	"forum/pkg/domain"
)

// Session is returned by a successful login.
type Session struct {
	User        domain.Profile `json:"user"`
	AccessToken string         `json:"accessToken"`
}

//go:generate mockgen -package mockauth -source=interface.go -destination=mock/mockauth.go *
type Service interface {
	Register(ctx context.Context, username, fullName, image string) (*domain.Profile, error)
	Login(ctx context.Context, username string) (*Session, error)
	Profile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
}

// TokenIssuer signs access tokens for users.
type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}
