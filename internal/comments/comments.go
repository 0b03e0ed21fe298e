// Package comments implements commenting on posts. Only the author of a
// comment may edit or delete it.
package comments

import (
	"context"
	"errors"
	"fmt"
	"forum/internal/ownership"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/serrors"
	"forum/pkg/storage"
)

type service struct {
	storage storage.Storage
}

func (s service) Create(ctx context.Context,
	actor domain.UserID,
	postID domain.PostID,
	content string) (*domain.Comment, error) {
	if err := s.postExists(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.storage.CreateComment(ctx, domain.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: actor,
	})
	if errors.Is(err, storage.ErrReferenced) {
		// the post was deleted between the lookup and the insert
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return comment, nil
}

// List returns one page of a post's comments, newest first.
func (s service) List(ctx context.Context, postID domain.PostID, page, limit int) (*domain.CommentPage, error) {
	if page < 1 || limit < 1 {
		return nil, serrors.With(serrors.ErrBadRequest, "page and limit must be positive")
	}

	if err := s.postExists(ctx, postID); err != nil {
		return nil, err
	}

	rows, err := s.storage.PostComments(ctx, postID, paging.For(page, limit))
	if err != nil {
		return nil, fmt.Errorf("could not list comments: %w", err)
	}

	total, err := s.storage.CountPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("could not count comments: %w", err)
	}

	if rows == nil {
		rows = []domain.CommentView{}
	}

	return &domain.CommentPage{
		Comments:   rows,
		Pagination: paging.Summarize(total, page, limit),
	}, nil
}

func (s service) Update(ctx context.Context,
	actor domain.UserID,
	id domain.CommentID,
	content string) (*domain.Comment, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}

	comment, err := s.storage.UpdateComment(ctx, id, content)
	if err != nil {
		return nil, fmt.Errorf("could not update comment: %w", err)
	}
	if comment == nil {
		return nil, serrors.With(serrors.ErrNotFound, "comment not found")
	}

	return comment, nil
}

func (s service) Delete(ctx context.Context, actor domain.UserID, id domain.CommentID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}

	comment, err := s.storage.DeleteComment(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete comment: %w", err)
	}
	if comment == nil {
		return serrors.With(serrors.ErrNotFound, "comment not found")
	}

	return nil
}

func (s service) owned(ctx context.Context, actor domain.UserID, id domain.CommentID) (*domain.Comment, error) {
	comment, err := s.storage.CommentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", err)
	}
	if comment == nil {
		return nil, serrors.With(serrors.ErrNotFound, "comment not found")
	}

	if err := ownership.Authorize(comment, actor); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return comment, nil
}

func (s service) postExists(ctx context.Context, id domain.PostID) error {
	post, err := s.storage.PostByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get post: %w", err)
	}
	if post == nil {
		return serrors.With(serrors.ErrNotFound, "post not found")
	}

	return nil
}

// New creates a comments Service over storage.
func New(storage storage.Storage) Service {
	return &service{storage: storage}
}
