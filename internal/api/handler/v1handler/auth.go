package v1handler

import (
	"forum/internal/validation"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register creates a user and returns its profile.
func (h *Handler) Register(c *gin.Context) {
	var in validation.Register
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidateRegister(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	profile, err := h.deps.Auth.Register(c.Request.Context(), in.Username, in.FullName, in.Image)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": profile})
}

// Login exchanges a username for an access token.
func (h *Handler) Login(c *gin.Context) {
	var in validation.Login
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidateLogin(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	session, err := h.deps.Auth.Login(c.Request.Context(), in.Username)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, session)
}

// Profile returns the authenticated user.
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.deps.Auth.Profile(ctx, GetUserIDFromContext(ctx))
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}
