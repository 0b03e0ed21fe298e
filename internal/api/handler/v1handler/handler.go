// Package v1handler implements the JSON endpoints mounted under /v1.
package v1handler

import (
	"context"
	"forum/internal/auth"
	"forum/internal/comments"
	"forum/internal/communities"
	"forum/internal/posts"
	"forum/internal/validation"
	"forum/pkg/logger"
	"forum/pkg/serrors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the v1 endpoints delegate to.
type Deps struct {
	Auth        auth.Service
	Posts       posts.Service
	Comments    comments.Service
	Communities communities.Service
	Tokens      TokenParser
	Validator   *validation.Validator
}

type Handler struct {
	deps Deps
	sec  *SecHandler
}

func New(deps Deps) *Handler {
	return &Handler{
		deps: deps,
		sec:  NewSecHandler(deps.Tokens),
	}
}

// Routes mounts every v1 route on r.
func (h *Handler) Routes(r gin.IRouter) {
	authed := h.sec.Middleware()

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/profile", authed, h.Profile)

	r.GET("/communities", h.ListCommunities)
	r.GET("/communities/:id", h.GetCommunity)
	r.POST("/communities", authed, h.CreateCommunity)

	r.GET("/posts", h.ListPosts)
	r.GET("/posts/mine", authed, h.MyPosts)
	r.GET("/posts/:id", h.GetPost)
	r.POST("/posts", authed, h.CreatePost)
	r.PUT("/posts/:id", authed, h.UpdatePost)
	r.DELETE("/posts/:id", authed, h.DeletePost)

	r.GET("/posts/:id/comments", h.ListComments)
	r.POST("/posts/:id/comments", authed, h.CreateComment)
	r.PUT("/comments/:id", authed, h.UpdateComment)
	r.DELETE("/comments/:id", authed, h.DeleteComment)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatus pairs an ErrorResponse with its HTTP status code.
type ErrorStatus struct {
	StatusCode int
	Response   ErrorResponse
}

var defaultMessages = map[serrors.Kind]struct { //nolint: gochecknoglobals
	status  int
	message string
}{
	serrors.ErrNotFound:     {http.StatusNotFound, "resource not found"},
	serrors.ErrUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrForbidden:    {http.StatusForbidden, "forbidden"},
	serrors.ErrBadRequest:   {http.StatusBadRequest, "bad request"},
	serrors.ErrConflict:     {http.StatusConflict, "conflict"},
	serrors.ErrInternal:     {http.StatusInternalServerError, "internal error"},
}

// NewError translates err into a status code and response body. Errors
// without a semantic kind are logged and reported as internal errors
// without leaking their text.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatus {
	kind := serrors.KindOf(err)
	def, ok := defaultMessages[kind]
	if !ok {
		kind = serrors.ErrInternal
		def = defaultMessages[kind]
	}

	msg := serrors.MessageOf(err)
	if kind == serrors.ErrInternal {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = ""
	}
	if msg == "" {
		msg = def.message
	}

	return &ErrorStatus{
		StatusCode: def.status,
		Response:   ErrorResponse{Code: kind.Error(), Message: msg},
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	res := h.NewError(c.Request.Context(), err)
	c.AbortWithStatusJSON(res.StatusCode, res.Response)
}

// bind decodes the JSON body of c into dst.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "request body must be valid JSON")
	}

	return nil
}
