package v1handler

import (
	"context"
	"forum/internal/token"
	"forum/pkg/domain"
	"forum/pkg/logger"
	"forum/pkg/serrors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (token.Identity, error)
}

type ctxKey string

// UserIDKey is the context key under which the authenticated user id is stored.
const UserIDKey ctxKey = "UserID"

// GetUserIDFromContext returns the authenticated user id, or the zero id on
// routes without bearer authentication.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	id, _ := ctx.Value(UserIDKey).(domain.UserID)

	return id
}

type SecHandler struct {
	tokens TokenParser
}

func NewSecHandler(tokens TokenParser) *SecHandler {
	return &SecHandler{tokens: tokens}
}

// HandleBearerAuth verifies raw and returns ctx carrying the user id and a
// logger tagged with it.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, raw string) (context.Context, error) {
	identity, err := s.tokens.Parse(raw)
	if err != nil {
		logger.Debug(ctx, "rejected bearer token", zap.Error(err))

		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid or expired access token")
	}

	ctx = context.WithValue(ctx, UserIDKey, identity.UserID)
	ctx = logger.WithFields(ctx, zap.String(string(UserIDKey), identity.UserID.String()))

	return ctx, nil
}

// Middleware rejects requests without a valid "Authorization: Bearer" header.
func (s *SecHandler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    serrors.ErrUnauthorized.Error(),
				Message: "missing bearer token",
			})

			return
		}

		ctx, err := s.HandleBearerAuth(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    serrors.ErrUnauthorized.Error(),
				Message: serrors.MessageOf(err),
			})

			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
