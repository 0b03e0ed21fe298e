package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"forum/internal/api/handler/v1handler"
	"forum/pkg/logger"
	"forum/pkg/serrors"
	"forum/pkg/storage"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	// Pass the Kind sentinel directly
	res := h.NewError(ctx, serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	err := serrors.With(serrors.ErrBadRequest, "title must be at least 3 characters long")
	res := h.NewError(ctx, err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "title must be at least 3 characters long", res.Response.Message)
}

func TestNewError_SemanticWrap_Conflict(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	err := fmt.Errorf("could not register: %w",
		serrors.Wrap(serrors.ErrConflict, storage.ErrDuplicate, "username already exists"))
	res := h.NewError(ctx, err)
	require.Equal(t, 409, res.StatusCode)
	require.Equal(t, serrors.ErrConflict.Error(), res.Response.Code)
	// Should include provided message, not the cause
	require.Equal(t, "username already exists", res.Response.Message)
}

func TestNewError_Forbidden(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	res := h.NewError(context.Background(), serrors.KindOnly(serrors.ErrForbidden))
	require.Equal(t, 403, res.StatusCode)
	require.Equal(t, "forbidden", res.Response.Message)
}

func TestNewError_InternalKind_HidesMessage(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, serrors.With(serrors.ErrInternal, "pool exhausted"))
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}
