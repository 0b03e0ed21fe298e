package v1handler

import (
	"forum/internal/validation"
	"forum/pkg/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCommunities returns every community in display order.
func (h *Handler) ListCommunities(c *gin.Context) {
	communities, err := h.deps.Communities.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, communities)
}

func (h *Handler) GetCommunity(c *gin.Context) {
	id, err := pathID(c, h.deps.Validator, domain.ParseCommunityID)
	if err != nil {
		h.fail(c, err)

		return
	}

	community, err := h.deps.Communities.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, community)
}

func (h *Handler) CreateCommunity(c *gin.Context) {
	var in validation.Community
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidateCommunity(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	community, err := h.deps.Communities.Create(c.Request.Context(), in.Name, in.Order)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, community)
}
