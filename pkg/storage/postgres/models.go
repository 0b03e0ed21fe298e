package postgres

import (
	"database/sql"
	"forum/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgUser struct {
	ID        uuid.UUID      `db:"id"         goqu:"skipinsert"`
	Username  string         `db:"username"`
	FullName  string         `db:"full_name"`
	Image     sql.NullString `db:"image"`
	LastLogin sql.NullTime   `db:"last_login"`
	CreatedAt time.Time      `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time      `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:        domain.UserID(p.ID),
		Username:  p.Username,
		FullName:  p.FullName,
		Image:     p.Image.String,
		LastLogin: p.LastLogin.Time,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:       uuid.UUID(user.ID),
		Username: user.Username,
		FullName: user.FullName,
		Image: sql.NullString{
			String: user.Image,
			Valid:  user.Image != "",
		},
		LastLogin: sql.NullTime{
			Time:  user.LastLogin,
			Valid: !user.LastLogin.IsZero(),
		},
	}
}

type PgCommunity struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	Name      string    `db:"name"`
	Order     int       `db:"order"`
	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgCommunity) ToDomain() *domain.Community {
	return &domain.Community{
		ID:        domain.CommunityID(p.ID),
		Name:      p.Name,
		Order:     p.Order,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func pgCommunitiesToDomain(rows []PgCommunity) []domain.Community {
	out := make([]domain.Community, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out
}

type PgPost struct {
	ID          uuid.UUID `db:"id"           goqu:"skipinsert"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	UserID      uuid.UUID `db:"user_id"`
	CommunityID uuid.UUID `db:"community_id"`
	CreatedAt   time.Time `db:"created_at"   goqu:"skipinsert"`
	UpdatedAt   time.Time `db:"updated_at"   goqu:"skipinsert"`
}

func (p *PgPost) ToDomain() *domain.Post {
	return &domain.Post{
		ID:          domain.PostID(p.ID),
		Title:       p.Title,
		Content:     p.Content,
		AuthorID:    domain.UserID(p.UserID),
		CommunityID: domain.CommunityID(p.CommunityID),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PgPostSummary is one row of the aggregated listing query.
type PgPostSummary struct {
	ID            uuid.UUID      `db:"id"`
	Title         string         `db:"title"`
	Content       string         `db:"content"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	UserID        uuid.UUID      `db:"user_id"`
	UserUsername  string         `db:"user_username"`
	UserFullName  string         `db:"user_full_name"`
	UserImage     sql.NullString `db:"user_image"`
	CommunityID   uuid.UUID      `db:"community_id"`
	CommunityName string         `db:"community_name"`
	CommentCount  int64          `db:"comment_count"`
}

func (p *PgPostSummary) ToDomain() domain.PostSummary {
	return domain.PostSummary{
		ID:        domain.PostID(p.ID),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author: domain.AuthorSummary{
			ID:       domain.UserID(p.UserID),
			Username: p.UserUsername,
			FullName: p.UserFullName,
			Image:    p.UserImage.String,
		},
		Community: domain.CommunitySummary{
			ID:   domain.CommunityID(p.CommunityID),
			Name: p.CommunityName,
		},
		CommentCount: p.CommentCount,
	}
}

type PgComment struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	Content   string    `db:"content"`
	PostID    uuid.UUID `db:"post_id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgComment) ToDomain() *domain.Comment {
	return &domain.Comment{
		ID:        domain.CommentID(p.ID),
		Content:   p.Content,
		PostID:    domain.PostID(p.PostID),
		AuthorID:  domain.UserID(p.UserID),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PgCommentView is a comment row joined with its author.
type PgCommentView struct {
	ID           uuid.UUID      `db:"id"`
	Content      string         `db:"content"`
	PostID       uuid.UUID      `db:"post_id"`
	UserID       uuid.UUID      `db:"user_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	UserUsername string         `db:"user_username"`
	UserFullName string         `db:"user_full_name"`
	UserImage    sql.NullString `db:"user_image"`
}

func (p *PgCommentView) ToDomain() domain.CommentView {
	return domain.CommentView{
		Comment: domain.Comment{
			ID:        domain.CommentID(p.ID),
			Content:   p.Content,
			PostID:    domain.PostID(p.PostID),
			AuthorID:  domain.UserID(p.UserID),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		Author: domain.AuthorSummary{
			ID:       domain.UserID(p.UserID),
			Username: p.UserUsername,
			FullName: p.UserFullName,
			Image:    p.UserImage.String,
		},
	}
}
