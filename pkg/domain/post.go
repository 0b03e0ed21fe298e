package domain

import (
	"forum/pkg/paging"
	"time"
)

// SortBy names a listing order.
type SortBy string

const (
	// SortByLatest orders posts by creation time, newest first.
	SortByLatest SortBy = "latest"
)

// Post is a piece of content written by one user into one community.
type Post struct {
	ID          PostID      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	AuthorID    UserID      `json:"authorId"`
	CommunityID CommunityID `json:"communityId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID returns the author of the post.
func (p Post) OwnerID() UserID { return p.AuthorID }

// PostSummary is one row of a post listing: the post joined with its author
// and community plus the number of comments attached to it.
type PostSummary struct {
	ID           PostID           `json:"id"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Author       AuthorSummary    `json:"user"`
	Community    CommunitySummary `json:"community"`
	CommentCount int64            `json:"commentCount"`
}

// PostDetail is the single-post view. Content is never truncated here.
type PostDetail struct {
	PostSummary

	// ContentHTML is the sanitized HTML rendering of Content.
	ContentHTML string `json:"contentHtml"`
}

// PostFilter narrows a post listing. Zero values mean "no filter".
type PostFilter struct {
	// Search is a case-sensitive substring matched against title or content.
	Search string
	// CommunityID restricts the listing to a single community.
	CommunityID *CommunityID
	// AuthorID restricts the listing to posts written by a single user.
	AuthorID *UserID
}

// PostQuery is a fully normalized listing request.
type PostQuery struct {
	PostFilter

	Page   int
	Limit  int
	SortBy SortBy
}

// PostPage is a page of listing rows plus its pagination summary.
type PostPage struct {
	Posts      []PostSummary  `json:"posts"`
	Pagination paging.Summary `json:"pagination"`
}

// PostUpdates carries the optional fields of a post update. Only non-nil
// fields are applied.
type PostUpdates struct {
	Title       *string
	Content     *string
	CommunityID *CommunityID
}

// Empty reports whether the update carries no changes.
func (u PostUpdates) Empty() bool {
	return u.Title == nil && u.Content == nil && u.CommunityID == nil
}
