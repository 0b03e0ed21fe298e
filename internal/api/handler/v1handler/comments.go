package v1handler

import (
	"forum/internal/validation"
	"forum/pkg/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListComments returns one page of comments under a post, newest first.
func (h *Handler) ListComments(c *gin.Context) {
	postID, err := pathID(c, h.deps.Validator, domain.ParsePostID)
	if err != nil {
		h.fail(c, err)

		return
	}

	page, limit, res := h.deps.Validator.ValidatePagination(validation.Pagination{
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	})
	if err := res.Err(); err != nil {
		h.fail(c, err)

		return
	}

	comments, err := h.deps.Comments.List(c.Request.Context(), postID, page, limit)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()

	postID, err := pathID(c, h.deps.Validator, domain.ParsePostID)
	if err != nil {
		h.fail(c, err)

		return
	}

	var in validation.Comment
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidateComment(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	comment, err := h.deps.Comments.Create(ctx, GetUserIDFromContext(ctx), postID, in.Content)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) UpdateComment(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c, h.deps.Validator, domain.ParseCommentID)
	if err != nil {
		h.fail(c, err)

		return
	}

	var in validation.Comment
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidateComment(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	comment, err := h.deps.Comments.Update(ctx, GetUserIDFromContext(ctx), id, in.Content)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c, h.deps.Validator, domain.ParseCommentID)
	if err != nil {
		h.fail(c, err)

		return
	}

	if err := h.deps.Comments.Delete(ctx, GetUserIDFromContext(ctx), id); err != nil {
		h.fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}
