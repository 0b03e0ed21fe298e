// Package posts implements the post listing, the single-post view and the
// author-guarded post mutations.
package posts

import (
	"context"
	"errors"
	"fmt"
	"forum/internal/ownership"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/serrors"
	"forum/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "forum/internal/posts"

type service struct {
	storage  storage.Storage
	renderer Renderer
	tracer   trace.Tracer
}

// List returns one page of posts matching query, newest first. Content is
// cut to an excerpt; the pagination summary counts every matching post.
func (s service) List(ctx context.Context, query domain.PostQuery) (page *domain.PostPage, err error) {
	ctx, span := s.tracer.Start(ctx, "posts.List", trace.WithAttributes(
		attribute.String("posts.search", query.Search),
		attribute.Int("posts.page", query.Page),
		attribute.Int("posts.limit", query.Limit),
	))
	defer func() { endSpan(span, err) }()

	if query.Page < 1 || query.Limit < 1 {
		return nil, serrors.With(serrors.ErrBadRequest, "page and limit must be positive")
	}
	if query.SortBy != "" && query.SortBy != domain.SortByLatest {
		return nil, serrors.With(serrors.ErrBadRequest, "unsupported sort order %q", query.SortBy)
	}

	rows, err := s.storage.ListPosts(ctx, query.PostFilter, paging.For(query.Page, query.Limit))
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}

	total, err := s.storage.CountPosts(ctx, query.PostFilter)
	if err != nil {
		return nil, fmt.Errorf("could not count posts: %w", err)
	}

	if rows == nil {
		rows = []domain.PostSummary{}
	}
	for i := range rows {
		rows[i].Content = Excerpt(rows[i].Content)
	}
	span.SetAttributes(attribute.Int64("posts.total", total))

	return &domain.PostPage{
		Posts:      rows,
		Pagination: paging.Summarize(total, query.Page, query.Limit),
	}, nil
}

// Mine is List restricted to posts written by actor.
func (s service) Mine(ctx context.Context, actor domain.UserID, query domain.PostQuery) (*domain.PostPage, error) {
	query.AuthorID = &actor

	return s.List(ctx, query)
}

// Get returns the full post with its rendered content and comment count.
func (s service) Get(ctx context.Context, id domain.PostID) (detail *domain.PostDetail, err error) {
	ctx, span := s.tracer.Start(ctx, "posts.Get", trace.WithAttributes(
		attribute.String("posts.id", id.String()),
	))
	defer func() { endSpan(span, err) }()

	summary, err := s.storage.PostSummaryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get post: %w", err)
	}
	if summary == nil {
		return nil, serrors.With(serrors.ErrNotFound, "post not found")
	}

	count, err := s.storage.CountPostComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not count post comments: %w", err)
	}
	summary.CommentCount = count

	html, err := s.renderer.Render(summary.Content)
	if err != nil {
		return nil, fmt.Errorf("could not render post content: %w", err)
	}

	return &domain.PostDetail{PostSummary: *summary, ContentHTML: html}, nil
}

func (s service) Create(ctx context.Context, actor domain.UserID, in NewPost) (*domain.Post, error) {
	if err := s.communityExists(ctx, in.CommunityID); err != nil {
		return nil, err
	}

	post, err := s.storage.CreatePost(ctx, domain.Post{
		Title:       in.Title,
		Content:     in.Content,
		AuthorID:    actor,
		CommunityID: in.CommunityID,
	})
	if errors.Is(err, storage.ErrReferenced) {
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "community or author not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return post, nil
}

// Update applies updates to a post written by actor.
func (s service) Update(ctx context.Context,
	actor domain.UserID,
	id domain.PostID,
	updates domain.PostUpdates) (*domain.Post, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}

	if updates.CommunityID != nil {
		if err := s.communityExists(ctx, *updates.CommunityID); err != nil {
			return nil, err
		}
	}

	post, err := s.storage.UpdatePost(ctx, id, updates)
	if errors.Is(err, storage.ErrReferenced) {
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "community not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}
	if post == nil {
		return nil, serrors.With(serrors.ErrNotFound, "post not found")
	}

	return post, nil
}

// Delete removes a post written by actor together with its comments.
func (s service) Delete(ctx context.Context, actor domain.UserID, id domain.PostID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}

	post, err := s.storage.DeletePost(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}
	if post == nil {
		return serrors.With(serrors.ErrNotFound, "post not found")
	}

	return nil
}

// owned loads a post and checks that actor wrote it.
func (s service) owned(ctx context.Context, actor domain.UserID, id domain.PostID) (*domain.Post, error) {
	post, err := s.storage.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get post: %w", err)
	}
	if post == nil {
		return nil, serrors.With(serrors.ErrNotFound, "post not found")
	}

	if err := ownership.Authorize(post, actor); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return post, nil
}

func (s service) communityExists(ctx context.Context, id domain.CommunityID) error {
	community, err := s.storage.CommunityByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get community: %w", err)
	}
	if community == nil {
		return serrors.With(serrors.ErrNotFound, "community not found")
	}

	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Option customizes the posts service.
type Option func(*service)

// WithTracerProvider records the service's spans through tp instead of the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *service) { s.tracer = tp.Tracer(tracerName) }
}

// New creates a posts Service over storage. Single-post content is rendered
// with renderer.
func New(storage storage.Storage, renderer Renderer, opts ...Option) Service {
	s := &service{
		storage:  storage,
		renderer: renderer,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}
