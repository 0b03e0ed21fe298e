package v1handler

import (
	"forum/internal/posts"
	"forum/internal/validation"
	"forum/pkg/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPosts returns one page of posts matching the query string.
func (h *Handler) ListPosts(c *gin.Context) {
	query, res := h.deps.Validator.ValidateListing(listingQuery(c))
	if err := res.Err(); err != nil {
		h.fail(c, err)

		return
	}

	page, err := h.deps.Posts.List(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, page)
}

// MyPosts is ListPosts restricted to the caller's posts.
func (h *Handler) MyPosts(c *gin.Context) {
	ctx := c.Request.Context()

	query, res := h.deps.Validator.ValidateListing(listingQuery(c))
	if err := res.Err(); err != nil {
		h.fail(c, err)

		return
	}

	page, err := h.deps.Posts.Mine(ctx, GetUserIDFromContext(ctx), query)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPost(c *gin.Context) {
	id, err := pathID(c, h.deps.Validator, domain.ParsePostID)
	if err != nil {
		h.fail(c, err)

		return
	}

	post, err := h.deps.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()

	var in validation.Post
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidatePost(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	community, err := domain.ParseCommunityID(in.CommunityID)
	if err != nil {
		h.fail(c, err)

		return
	}

	post, err := h.deps.Posts.Create(ctx, GetUserIDFromContext(ctx), posts.NewPost{
		Title:       in.Title,
		Content:     in.Content,
		CommunityID: community,
	})
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c, h.deps.Validator, domain.ParsePostID)
	if err != nil {
		h.fail(c, err)

		return
	}

	var in validation.PostUpdate
	if err := bind(c, &in); err != nil {
		h.fail(c, err)

		return
	}
	if err := h.deps.Validator.ValidatePostUpdate(in).Err(); err != nil {
		h.fail(c, err)

		return
	}

	updates := domain.PostUpdates{Title: in.Title, Content: in.Content}
	if in.CommunityID != nil {
		community, err := domain.ParseCommunityID(*in.CommunityID)
		if err != nil {
			h.fail(c, err)

			return
		}
		updates.CommunityID = &community
	}

	post, err := h.deps.Posts.Update(ctx, GetUserIDFromContext(ctx), id, updates)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c, h.deps.Validator, domain.ParsePostID)
	if err != nil {
		h.fail(c, err)

		return
	}

	if err := h.deps.Posts.Delete(ctx, GetUserIDFromContext(ctx), id); err != nil {
		h.fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}
