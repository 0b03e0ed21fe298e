package postgres

import (
	"context"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/paging"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

func (p *PgSQL) CreateComment(ctx context.Context, comment domain.Comment) (*domain.Comment, error) {
	row := PgComment{
		Content: comment.Content,
		PostID:  uuid.UUID(comment.PostID),
		UserID:  uuid.UUID(comment.AuthorID),
	}

	var created PgComment
	if _, err := p.Builder.Insert(commentsTable).
		Rows(row).
		Returning(&PgComment{}).
		Executor().ScanStructContext(ctx, &created); err != nil {
		return nil, fmt.Errorf("could not store comment into pg: %w", classify(err))
	}

	return created.ToDomain(), nil
}

func (p *PgSQL) CommentByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	var row PgComment
	found, err := p.Builder.From(commentsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch comment by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UpdateComment(ctx context.Context, id domain.CommentID, content string) (*domain.Comment, error) {
	var row PgComment
	found, err := p.Builder.Update(commentsTable).
		Set(goqu.Record{
			"content":    content,
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgComment{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update comment in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteComment(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	var row PgComment
	found, err := p.Builder.Delete(commentsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgComment{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete comment in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// PostComments returns a page of comments under a post, newest first.
func (p *PgSQL) PostComments(ctx context.Context,
	postID domain.PostID,
	window paging.Window) ([]domain.CommentView, error) {
	ds := p.Builder.From(goqu.T(commentsTable).As("cm")).
		Select(
			goqu.I("cm.id").As("id"),
			goqu.I("cm.content").As("content"),
			goqu.I("cm.post_id").As("post_id"),
			goqu.I("cm.user_id").As("user_id"),
			goqu.I("cm.created_at").As("created_at"),
			goqu.I("cm.updated_at").As("updated_at"),
			goqu.I("u.username").As("user_username"),
			goqu.I("u.full_name").As("user_full_name"),
			goqu.I("u.image").As("user_image"),
		).
		InnerJoin(goqu.T(usersTable).As("u"), goqu.On(goqu.I("cm.user_id").Eq(goqu.I("u.id")))).
		Where(goqu.I("cm.post_id").Eq(uuid.UUID(postID))).
		Order(goqu.I("cm.created_at").Desc()).
		Offset(window.Offset).
		Limit(window.Limit)

	var rows []PgCommentView
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list post comments from pg: %w", err)
	}

	out := make([]domain.CommentView, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) CountPostComments(ctx context.Context, postID domain.PostID) (int64, error) {
	count, err := p.Builder.From(commentsTable).
		Where(goqu.I("post_id").Eq(uuid.UUID(postID))).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count post comments in pg: %w", err)
	}

	return count, nil
}

func (p *PgSQL) DeleteAllComments(ctx context.Context) (int64, error) {
	return p.deleteAll(ctx, commentsTable)
}
