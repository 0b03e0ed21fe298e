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

func TestPgSQL_Comments(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	alice := seedUser(t, pg, "alice")
	bob := seedUser(t, pg, "bob")
	community := seedCommunity(t, pg, "History", 1)
	post := seedPost(t, pg, alice.ID, community.ID, "Rome", "The history of Rome is long")

	first := seedComment(t, pg, post.ID, bob.ID, "first")
	second := seedComment(t, pg, post.ID, alice.ID, "second")
	third := seedComment(t, pg, post.ID, bob.ID, "third")

	t.Run("page newest first with author", func(t *testing.T) {
		rows, err := pg.PostComments(ctx, post.ID, paging.For(1, 2))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, third.ID, rows[0].ID)
		require.Equal(t, "bob", rows[0].Author.Username)
		require.Equal(t, second.ID, rows[1].ID)

		rows, err = pg.PostComments(ctx, post.ID, paging.For(2, 2))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, first.ID, rows[0].ID)

		count, err := pg.CountPostComments(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, int64(3), count)
	})

	t.Run("comment on missing post is referenced", func(t *testing.T) {
		_, err := pg.CreateComment(ctx, domain.Comment{
			Content:  "orphan",
			PostID:   domain.PostID(uuid.New()),
			AuthorID: bob.ID,
		})
		require.ErrorIs(t, err, storage.ErrReferenced)
	})

	t.Run("update and delete", func(t *testing.T) {
		updated, err := pg.UpdateComment(ctx, first.ID, "edited")
		require.NoError(t, err)
		require.Equal(t, "edited", updated.Content)

		deleted, err := pg.DeleteComment(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, first.ID, deleted.ID)

		missing, err := pg.UpdateComment(ctx, first.ID, "again")
		require.NoError(t, err)
		require.Nil(t, missing)

		summary, err := pg.PostSummaryByID(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, int64(2), summary.CommentCount)
	})

	t.Run("delete all", func(t *testing.T) {
		n, err := pg.DeleteAllComments(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), n)
	})
}
