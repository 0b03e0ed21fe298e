package postgres

import (
	"context"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// likeEscaper escapes the LIKE metacharacters so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`) //nolint: gochecknoglobals

func (p *PgSQL) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	row := PgPost{
		Title:       post.Title,
		Content:     post.Content,
		UserID:      uuid.UUID(post.AuthorID),
		CommunityID: uuid.UUID(post.CommunityID),
	}

	var created PgPost
	if _, err := p.Builder.Insert(postsTable).
		Rows(row).
		Returning(&PgPost{}).
		Executor().ScanStructContext(ctx, &created); err != nil {
		return nil, fmt.Errorf("could not store post into pg: %w", classify(err))
	}

	return created.ToDomain(), nil
}

func (p *PgSQL) PostByID(ctx context.Context, id domain.PostID) (*domain.Post, error) {
	var row PgPost
	found, err := p.Builder.From(postsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch post by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// summaries builds the aggregated post read model: every post joined with
// its author and community, plus the distinct number of comments under it.
func (p *PgSQL) summaries() *goqu.SelectDataset {
	return p.Builder.From(goqu.T(postsTable).As("p")).
		Select(
			goqu.I("p.id").As("id"),
			goqu.I("p.title").As("title"),
			goqu.I("p.content").As("content"),
			goqu.I("p.created_at").As("created_at"),
			goqu.I("p.updated_at").As("updated_at"),
			goqu.I("u.id").As("user_id"),
			goqu.I("u.username").As("user_username"),
			goqu.I("u.full_name").As("user_full_name"),
			goqu.I("u.image").As("user_image"),
			goqu.I("c.id").As("community_id"),
			goqu.I("c.name").As("community_name"),
			goqu.COUNT(goqu.DISTINCT(goqu.I("cm.id"))).As("comment_count"),
		).
		InnerJoin(goqu.T(usersTable).As("u"), goqu.On(goqu.I("p.user_id").Eq(goqu.I("u.id")))).
		InnerJoin(goqu.T(communitiesTable).As("c"), goqu.On(goqu.I("p.community_id").Eq(goqu.I("c.id")))).
		LeftJoin(goqu.T(commentsTable).As("cm"), goqu.On(goqu.I("cm.post_id").Eq(goqu.I("p.id")))).
		GroupBy(goqu.I("p.id"), goqu.I("u.id"), goqu.I("c.id"))
}

// postConditions returns the WHERE conditions for filter in the order
// search, community, author. An empty filter yields no conditions.
func postConditions(filter domain.PostFilter) []goqu.Expression {
	var w []goqu.Expression
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		w = append(w, goqu.Or(
			goqu.I("p.title").Like(pattern),
			goqu.I("p.content").Like(pattern),
		))
	}
	if filter.CommunityID != nil {
		w = append(w, goqu.I("p.community_id").Eq(uuid.UUID(*filter.CommunityID)))
	}
	if filter.AuthorID != nil {
		w = append(w, goqu.I("p.user_id").Eq(uuid.UUID(*filter.AuthorID)))
	}

	return w
}

// PostSummaryByID returns the read model of a single post with full content.
func (p *PgSQL) PostSummaryByID(ctx context.Context, id domain.PostID) (*domain.PostSummary, error) {
	var row PgPostSummary
	found, err := p.summaries().
		Where(goqu.I("p.id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch post summary by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	summary := row.ToDomain()

	return &summary, nil
}

// ListPosts returns one page of the filtered listing ordered by created_at DESC.
func (p *PgSQL) ListPosts(ctx context.Context,
	filter domain.PostFilter,
	window paging.Window) ([]domain.PostSummary, error) {
	ds := p.summaries().
		Where(postConditions(filter)...).
		Order(goqu.I("p.created_at").Desc()).
		Offset(window.Offset).
		Limit(window.Limit)

	var rows []PgPostSummary
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list posts from pg: %w", err)
	}

	out := make([]domain.PostSummary, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out, nil
}

// CountPosts counts posts matching filter. Author and community are mandatory
// references, so the joins of the listing cannot change the count and are
// left out.
func (p *PgSQL) CountPosts(ctx context.Context, filter domain.PostFilter) (int64, error) {
	count, err := p.Builder.From(goqu.T(postsTable).As("p")).
		Where(postConditions(filter)...).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count posts in pg: %w", err)
	}

	return count, nil
}

func (p *PgSQL) CountCommunityPosts(ctx context.Context, id domain.CommunityID) (int64, error) {
	count, err := p.Builder.From(postsTable).
		Where(goqu.I("community_id").Eq(uuid.UUID(id))).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count community posts in pg: %w", err)
	}

	return count, nil
}

// UpdatePost sets the non-nil fields of updates and bumps updated_at.
func (p *PgSQL) UpdatePost(ctx context.Context, id domain.PostID, updates domain.PostUpdates) (*domain.Post, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Title != nil {
		rec["title"] = *updates.Title
	}
	if updates.Content != nil {
		rec["content"] = *updates.Content
	}
	if updates.CommunityID != nil {
		rec["community_id"] = uuid.UUID(*updates.CommunityID)
	}

	var row PgPost
	found, err := p.Builder.Update(postsTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgPost{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update post in pg: %w", classify(err))
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// DeletePost removes a post; its comments go with it through ON DELETE CASCADE.
func (p *PgSQL) DeletePost(ctx context.Context, id domain.PostID) (*domain.Post, error) {
	var row PgPost
	found, err := p.Builder.Delete(postsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgPost{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete post in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteAllPosts(ctx context.Context) (int64, error) {
	return p.deleteAll(ctx, postsTable)
}
