// Package token issues and verifies the HS256 access tokens handed out on
// login.
package token

import (
	"errors"
	"fmt"
	"forum/pkg/domain"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessType is the value of the "type" claim carried by access tokens.
const AccessType = "access"

var (
	// ErrInvalid is returned for tokens that fail signature, expiry or claim checks.
	ErrInvalid = errors.New("invalid token")
	// ErrInvalidTTL is returned by ParseTTL for malformed durations.
	ErrInvalidTTL = errors.New("invalid token ttl")
)

// Claims are the JWT claims of an access token. The subject is the user id.
type Claims struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID   domain.UserID
	Username string
}

// Issuer signs and verifies access tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret and stamping tokens to
// expire ttl after issuance.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer reading time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	c := *i
	c.now = now

	return &c
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue returns a signed access token for user.
func (i *Issuer) Issue(user domain.User) (string, error) {
	now := i.now()
	claims := Claims{
		Username: user.Username,
		Type:     AccessType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies raw and returns the identity it carries. Tokens with a bad
// signature, a non HS256 algorithm, an expired lifetime or a type other than
// access are rejected with ErrInvalid.
func (i *Issuer) Parse(raw string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if claims.Type != AccessType {
		return Identity{}, fmt.Errorf("%w: unexpected token type %q", ErrInvalid, claims.Type)
	}

	id, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject: %w", ErrInvalid, err)
	}

	return Identity{UserID: id, Username: claims.Username}, nil
}

// ParseTTL parses a token lifetime. It accepts everything time.ParseDuration
// does plus a whole number of days with a "d" suffix, e.g. "7d".
func ParseTTL(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
		}

		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}

	return d, nil
}
