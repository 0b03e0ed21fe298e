package comments

import (
	"context"
	"forum/pkg/domain"
)

//go:generate mockgen -package mockcomments -source=interface.go -destination=mock/mockcomments.go *
type Service interface {
	Create(ctx context.Context, actor domain.UserID, postID domain.PostID, content string) (*domain.Comment, error)
	List(ctx context.Context, postID domain.PostID, page, limit int) (*domain.CommentPage, error)
	Update(ctx context.Context, actor domain.UserID, id domain.CommentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actor domain.UserID, id domain.CommentID) error
}
