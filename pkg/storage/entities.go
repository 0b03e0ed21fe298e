package storage

import (
	"context"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"time"
)

// UserStorage persists forum members.
type UserStorage interface {
	// CreateUser inserts a user and returns it with generated fields set.
	// A taken username yields ErrDuplicate.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID returns the user with the given id, or nil.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByUsername returns the user with the given username, or nil.
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
	// TouchLastLogin sets last_login to at and returns the updated user, or nil
	// when the user does not exist.
	TouchLastLogin(ctx context.Context, id domain.UserID, at time.Time) (*domain.User, error)
	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)
	// DeleteAllUsers removes every user and returns the number removed.
	DeleteAllUsers(ctx context.Context) (int64, error)
}

// CommunityStorage persists communities.
type CommunityStorage interface {
	// CreateCommunities inserts one or more communities and returns the stored
	// rows. A taken name yields ErrDuplicate.
	CreateCommunities(ctx context.Context, communities ...domain.Community) ([]domain.Community, error)
	// Communities returns every community ordered by order, then name.
	Communities(ctx context.Context) ([]domain.Community, error)
	// CommunityByID returns the community with the given id, or nil.
	CommunityByID(ctx context.Context, id domain.CommunityID) (*domain.Community, error)
	// DeleteAllCommunities removes every community. Communities that still have
	// posts make the call fail with ErrReferenced.
	DeleteAllCommunities(ctx context.Context) (int64, error)
}

// PostStorage persists posts and answers post listings.
type PostStorage interface {
	// CreatePost inserts a post and returns it with generated fields set.
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	// PostByID returns the bare post record, or nil.
	PostByID(ctx context.Context, id domain.PostID) (*domain.Post, error)
	// PostSummaryByID returns the post joined with its author and community
	// with full content and its comment count, or nil.
	PostSummaryByID(ctx context.Context, id domain.PostID) (*domain.PostSummary, error)
	// UpdatePost applies the non-nil fields of updates, sets updated_at and
	// returns the updated post, or nil when it does not exist.
	UpdatePost(ctx context.Context, id domain.PostID, updates domain.PostUpdates) (*domain.Post, error)
	// DeletePost removes a post and, by cascade, its comments. It returns the
	// deleted post, or nil when it did not exist.
	DeletePost(ctx context.Context, id domain.PostID) (*domain.Post, error)
	// ListPosts returns one page of posts matching filter, newest first, each
	// joined with author and community and annotated with the number of
	// distinct comments attached to it. Content is returned in full.
	ListPosts(ctx context.Context, filter domain.PostFilter, window paging.Window) ([]domain.PostSummary, error)
	// CountPosts counts posts matching filter, ignoring pagination.
	CountPosts(ctx context.Context, filter domain.PostFilter) (int64, error)
	// CountCommunityPosts counts posts filed under a community.
	CountCommunityPosts(ctx context.Context, id domain.CommunityID) (int64, error)
	// DeleteAllPosts removes every post and returns the number removed.
	DeleteAllPosts(ctx context.Context) (int64, error)
}

// CommentStorage persists comments.
type CommentStorage interface {
	// CreateComment inserts a comment and returns it with generated fields set.
	CreateComment(ctx context.Context, comment domain.Comment) (*domain.Comment, error)
	// CommentByID returns the comment with the given id, or nil.
	CommentByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error)
	// UpdateComment replaces the content of a comment, sets updated_at and
	// returns the updated comment, or nil when it does not exist.
	UpdateComment(ctx context.Context, id domain.CommentID, content string) (*domain.Comment, error)
	// DeleteComment removes a comment and returns it, or nil when it did not exist.
	DeleteComment(ctx context.Context, id domain.CommentID) (*domain.Comment, error)
	// PostComments returns one page of comments under a post, newest first,
	// each joined with its author.
	PostComments(ctx context.Context, postID domain.PostID, window paging.Window) ([]domain.CommentView, error)
	// CountPostComments counts comments under a post.
	CountPostComments(ctx context.Context, postID domain.PostID) (int64, error)
	// DeleteAllComments removes every comment and returns the number removed.
	DeleteAllComments(ctx context.Context) (int64, error)
}
