package posts

import (
	"context"
	"forum/pkg/domain"
)

// NewPost is the input of Service.Create.
type NewPost struct {
	Title       string
	Content     string
	CommunityID domain.CommunityID
}

//go:generate mockgen -package mockposts -source=interface.go -destination=mock/mockposts.go *
type Service interface {
	List(ctx context.Context, query domain.PostQuery) (*domain.PostPage, error)
	Mine(ctx context.Context, actor domain.UserID, query domain.PostQuery) (*domain.PostPage, error)
	Get(ctx context.Context, id domain.PostID) (*domain.PostDetail, error)
	Create(ctx context.Context, actor domain.UserID, in NewPost) (*domain.Post, error)
	Update(ctx context.Context, actor domain.UserID, id domain.PostID, updates domain.PostUpdates) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.UserID, id domain.PostID) error
}

// Renderer turns post content into HTML for the single-post view.
type Renderer interface {
	Render(source string) (string, error)
}
