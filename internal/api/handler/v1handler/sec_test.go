package v1handler_test

import (
	"context"
	"forum/internal/api/handler/v1handler"
	"forum/internal/token"
	"forum/pkg/domain"
	"forum/pkg/serrors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newIssuer() *token.Issuer {
	return token.NewIssuer(testSecret, time.Hour)
}

func issue(t *testing.T, issuer *token.Issuer, id domain.UserID) string {
	t.Helper()

	raw, err := issuer.Issue(domain.User{ID: id, Username: "mira"})
	require.NoError(t, err)

	return raw
}

func TestHandleBearerAuth_ValidToken(t *testing.T) {
	issuer := newIssuer()
	sh := v1handler.NewSecHandler(issuer)

	uid := domain.UserID(uuid.New())
	ctx, err := sh.HandleBearerAuth(context.Background(), issue(t, issuer, uid))
	require.NoError(t, err)

	// verify user id stored in context
	require.Equal(t, uid, v1handler.GetUserIDFromContext(ctx))
}

func TestHandleBearerAuth_InvalidSignature(t *testing.T) {
	sh := v1handler.NewSecHandler(newIssuer())

	other := token.NewIssuer("other-secret", time.Hour)
	_, err := sh.HandleBearerAuth(context.Background(), issue(t, other, domain.UserID(uuid.New())))
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestHandleBearerAuth_ExpiredToken(t *testing.T) {
	sh := v1handler.NewSecHandler(newIssuer())

	past := newIssuer().WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	_, err := sh.HandleBearerAuth(context.Background(), issue(t, past, domain.UserID(uuid.New())))
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestHandleBearerAuth_WrongType(t *testing.T) {
	sh := v1handler.NewSecHandler(newIssuer())

	now := time.Now()
	claims := token.Claims{
		Username: "mira",
		Type:     "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = sh.HandleBearerAuth(context.Background(), signed)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestMiddleware(t *testing.T) {
	issuer := newIssuer()
	uid := domain.UserID(uuid.New())
	valid := issue(t, issuer, uid)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer  ", status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/me", v1handler.NewSecHandler(issuer).Middleware(), func(c *gin.Context) {
				c.String(http.StatusOK, v1handler.GetUserIDFromContext(c.Request.Context()).String())
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				require.Equal(t, uid.String(), rec.Body.String())
			} else {
				require.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}
