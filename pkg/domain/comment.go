package domain

import (
	"forum/pkg/paging"
	"time"
)

// Comment is a reply written by one user under one post. Comments are removed
// together with their post.
type Comment struct {
	ID       CommentID `json:"id"`
	Content  string    `json:"content"`
	PostID   PostID    `json:"postId"`
	AuthorID UserID    `json:"authorId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID returns the author of the comment.
func (c Comment) OwnerID() UserID { return c.AuthorID }

// CommentView is a comment joined with its author.
type CommentView struct {
	Comment

	Author AuthorSummary `json:"user"`
}

// CommentPage is a page of comments under one post.
type CommentPage struct {
	Comments   []CommentView  `json:"comments"`
	Pagination paging.Summary `json:"pagination"`
}
