package postgres_test

import (
	"context"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/storage"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_ListPosts(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	alice := seedUser(t, pg, "alice")
	bob := seedUser(t, pg, "bob")
	history := seedCommunity(t, pg, "History", 1)
	food := seedCommunity(t, pg, "Food", 2)

	p1 := seedPost(t, pg, alice.ID, history.ID, "Rome", "The history of Rome is long")
	p2 := seedPost(t, pg, bob.ID, food.ID, "Pasta", "How to cook 100% al_dente pasta")
	p3 := seedPost(t, pg, alice.ID, food.ID, "Pizza", "Neapolitan pizza has a history too")

	seedComment(t, pg, p1.ID, bob.ID, "nice")
	seedComment(t, pg, p1.ID, alice.ID, "thanks")
	seedComment(t, pg, p3.ID, bob.ID, "yum")

	ids := func(rows []domain.PostSummary) []domain.PostID {
		out := make([]domain.PostID, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.ID)
		}

		return out
	}

	t.Run("unfiltered newest first with joins and counts", func(t *testing.T) {
		rows, err := pg.ListPosts(ctx, domain.PostFilter{}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p3.ID, p2.ID, p1.ID}, ids(rows))

		require.Equal(t, "alice", rows[0].Author.Username)
		require.Equal(t, "Full alice", rows[0].Author.FullName)
		require.Equal(t, "Food", rows[0].Community.Name)
		require.Equal(t, int64(1), rows[0].CommentCount)
		require.Equal(t, int64(0), rows[1].CommentCount)
		require.Equal(t, int64(2), rows[2].CommentCount)

		total, err := pg.CountPosts(ctx, domain.PostFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(3), total)
	})

	t.Run("pagination window", func(t *testing.T) {
		rows, err := pg.ListPosts(ctx, domain.PostFilter{}, paging.For(2, 2))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p1.ID}, ids(rows))

		rows, err = pg.ListPosts(ctx, domain.PostFilter{}, paging.For(3, 2))
		require.NoError(t, err)
		require.Empty(t, rows)
	})

	t.Run("search is case sensitive over title and content", func(t *testing.T) {
		filter := domain.PostFilter{Search: "history"}
		rows, err := pg.ListPosts(ctx, filter, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p3.ID, p1.ID}, ids(rows))

		total, err := pg.CountPosts(ctx, filter)
		require.NoError(t, err)
		require.Equal(t, int64(2), total)

		rows, err = pg.ListPosts(ctx, domain.PostFilter{Search: "History"}, paging.For(1, 10))
		require.NoError(t, err)
		require.Empty(t, rows)

		rows, err = pg.ListPosts(ctx, domain.PostFilter{Search: "Rom"}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p1.ID}, ids(rows))
	})

	t.Run("search escapes like metacharacters", func(t *testing.T) {
		rows, err := pg.ListPosts(ctx, domain.PostFilter{Search: "100%"}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p2.ID}, ids(rows))

		rows, err = pg.ListPosts(ctx, domain.PostFilter{Search: "l_d"}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p2.ID}, ids(rows))

		rows, err = pg.ListPosts(ctx, domain.PostFilter{Search: "%"}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p2.ID}, ids(rows))

		rows, err = pg.ListPosts(ctx, domain.PostFilter{Search: "R_me"}, paging.For(1, 10))
		require.NoError(t, err)
		require.Empty(t, rows)
	})

	t.Run("community and author filters combine", func(t *testing.T) {
		rows, err := pg.ListPosts(ctx, domain.PostFilter{CommunityID: &food.ID}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p3.ID, p2.ID}, ids(rows))

		rows, err = pg.ListPosts(ctx, domain.PostFilter{AuthorID: &alice.ID}, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p3.ID, p1.ID}, ids(rows))

		filter := domain.PostFilter{Search: "history", CommunityID: &history.ID, AuthorID: &alice.ID}
		rows, err = pg.ListPosts(ctx, filter, paging.For(1, 10))
		require.NoError(t, err)
		require.Equal(t, []domain.PostID{p1.ID}, ids(rows))

		total, err := pg.CountPosts(ctx, filter)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)

		filter = domain.PostFilter{CommunityID: &history.ID, AuthorID: &bob.ID}
		total, err = pg.CountPosts(ctx, filter)
		require.NoError(t, err)
		require.Zero(t, total)
	})

	t.Run("summary by id carries full content and count", func(t *testing.T) {
		s, err := pg.PostSummaryByID(ctx, p1.ID)
		require.NoError(t, err)
		require.Equal(t, "The history of Rome is long", s.Content)
		require.Equal(t, int64(2), s.CommentCount)
		require.Equal(t, "History", s.Community.Name)

		s, err = pg.PostSummaryByID(ctx, domain.PostID(uuid.New()))
		require.NoError(t, err)
		require.Nil(t, s)
	})
}

func TestPgSQL_PostMutations(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	alice := seedUser(t, pg, "alice")
	history := seedCommunity(t, pg, "History", 1)
	food := seedCommunity(t, pg, "Food", 2)
	post := seedPost(t, pg, alice.ID, history.ID, "Rome", "The history of Rome is long")

	t.Run("create into missing community is referenced", func(t *testing.T) {
		_, err := pg.CreatePost(ctx, domain.Post{
			Title:       "Nowhere",
			Content:     "This community does not exist",
			AuthorID:    alice.ID,
			CommunityID: domain.CommunityID(uuid.New()),
		})
		require.ErrorIs(t, err, storage.ErrReferenced)
	})

	t.Run("partial update", func(t *testing.T) {
		title := "Ancient Rome"
		updated, err := pg.UpdatePost(ctx, post.ID, domain.PostUpdates{
			Title:       &title,
			CommunityID: &food.ID,
		})
		require.NoError(t, err)
		require.Equal(t, "Ancient Rome", updated.Title)
		require.Equal(t, post.Content, updated.Content)
		require.Equal(t, food.ID, updated.CommunityID)
		require.False(t, updated.UpdatedAt.Before(post.UpdatedAt))

		missing, err := pg.UpdatePost(ctx, domain.PostID(uuid.New()), domain.PostUpdates{Title: &title})
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("delete cascades to comments", func(t *testing.T) {
		c := seedComment(t, pg, post.ID, alice.ID, "first")

		deleted, err := pg.DeletePost(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, post.ID, deleted.ID)

		gone, err := pg.PostByID(ctx, post.ID)
		require.NoError(t, err)
		require.Nil(t, gone)

		comment, err := pg.CommentByID(ctx, c.ID)
		require.NoError(t, err)
		require.Nil(t, comment)

		again, err := pg.DeletePost(ctx, post.ID)
		require.NoError(t, err)
		require.Nil(t, again)
	})
}
