package posts_test

import (
	"context"
	"errors"
	"fmt"
	"forum/internal/posts"
	mockposts "forum/internal/posts/mock"
	"forum/pkg/domain"
	"forum/pkg/markup"
	"forum/pkg/paging"
	"forum/pkg/serrors"
	"forum/pkg/storage"
	"forum/pkg/storage/memory"
	mockstorage "forum/pkg/storage/mock"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func newTestPosts(t *testing.T) (*mockstorage.MockStorage, *mockposts.MockRenderer, posts.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	renderer := mockposts.NewMockRenderer(ctrl)

	return st, renderer, posts.New(st, renderer)
}

func TestPosts_List(t *testing.T) {
	ctx := context.Background()

	t.Run("shapes rows and summarizes", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		query := domain.PostQuery{Page: 2, Limit: 10, SortBy: domain.SortByLatest}
		long := strings.Repeat("x", 120)

		st.EXPECT().ListPosts(gomock.Any(), query.PostFilter, paging.Window{Offset: 10, Limit: 10}).
			Return([]domain.PostSummary{{Title: "t", Content: long}, {Title: "u", Content: "short"}}, nil)
		st.EXPECT().CountPosts(gomock.Any(), query.PostFilter).Return(int64(12), nil)

		page, err := svc.List(ctx, query)
		require.NoError(t, err)
		require.Len(t, page.Posts, 2)
		require.Equal(t, strings.Repeat("x", 100)+"...", page.Posts[0].Content)
		require.Equal(t, "short", page.Posts[1].Content)
		require.Equal(t, paging.Summary{Total: 12, Page: 2, TotalPages: 2}, page.Pagination)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		query := domain.PostQuery{PostFilter: domain.PostFilter{Search: "zzz"}, Page: 1, Limit: 10}

		st.EXPECT().ListPosts(gomock.Any(), query.PostFilter, paging.Window{Offset: 0, Limit: 10}).Return(nil, nil)
		st.EXPECT().CountPosts(gomock.Any(), query.PostFilter).Return(int64(0), nil)

		page, err := svc.List(ctx, query)
		require.NoError(t, err)
		require.Empty(t, page.Posts)
		require.Equal(t, paging.Summary{Total: 0, Page: 1, TotalPages: 0}, page.Pagination)
	})

	t.Run("rejects unnormalized input", func(t *testing.T) {
		_, _, svc := newTestPosts(t)

		_, err := svc.List(ctx, domain.PostQuery{Page: 0, Limit: 10})
		require.ErrorIs(t, err, serrors.ErrBadRequest)

		_, err = svc.List(ctx, domain.PostQuery{Page: 1, Limit: 10, SortBy: "popular"})
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("storage failure", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().ListPosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		_, err := svc.List(ctx, domain.PostQuery{Page: 1, Limit: 10})
		require.Error(t, err)
	})

	t.Run("mine filters by actor", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		actor := domain.UserID(uuid.New())
		filter := domain.PostFilter{AuthorID: &actor}

		st.EXPECT().ListPosts(gomock.Any(), filter, gomock.Any()).Return(nil, nil)
		st.EXPECT().CountPosts(gomock.Any(), filter).Return(int64(0), nil)

		_, err := svc.Mine(ctx, actor, domain.PostQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
	})
}

func TestPosts_Get(t *testing.T) {
	ctx := context.Background()
	id := domain.PostID(uuid.New())

	t.Run("full content with rendering and count", func(t *testing.T) {
		st, renderer, svc := newTestPosts(t)
		long := strings.Repeat("y", 300)

		st.EXPECT().PostSummaryByID(gomock.Any(), id).Return(&domain.PostSummary{ID: id, Content: long}, nil)
		st.EXPECT().CountPostComments(gomock.Any(), id).Return(int64(4), nil)
		renderer.EXPECT().Render(long).Return("<p>"+long+"</p>", nil)

		detail, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, long, detail.Content)
		require.Equal(t, int64(4), detail.CommentCount)
		require.Equal(t, "<p>"+long+"</p>", detail.ContentHTML)
	})

	t.Run("missing", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().PostSummaryByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.Get(ctx, id)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})
}

func TestPosts_Create(t *testing.T) {
	ctx := context.Background()
	actor := domain.UserID(uuid.New())
	community := domain.CommunityID(uuid.New())
	in := posts.NewPost{Title: "Rome", Content: "The history of Rome", CommunityID: community}

	t.Run("stores post for actor", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().CommunityByID(gomock.Any(), community).Return(&domain.Community{ID: community}, nil)
		st.EXPECT().CreatePost(gomock.Any(), domain.Post{
			Title:       "Rome",
			Content:     "The history of Rome",
			AuthorID:    actor,
			CommunityID: community,
		}).Return(&domain.Post{Title: "Rome", AuthorID: actor}, nil)

		post, err := svc.Create(ctx, actor, in)
		require.NoError(t, err)
		require.Equal(t, actor, post.AuthorID)
	})

	t.Run("missing community", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().CommunityByID(gomock.Any(), community).Return(nil, nil)

		_, err := svc.Create(ctx, actor, in)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})

	t.Run("community removed before insert", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().CommunityByID(gomock.Any(), community).Return(&domain.Community{ID: community}, nil)
		st.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("could not store post: %w", storage.ErrReferenced))

		_, err := svc.Create(ctx, actor, in)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})
}

func TestPosts_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	author := domain.UserID(uuid.New())
	stranger := domain.UserID(uuid.New())
	id := domain.PostID(uuid.New())
	post := &domain.Post{ID: id, Title: "Rome", AuthorID: author}
	title := "Ancient Rome"

	t.Run("author updates", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		updates := domain.PostUpdates{Title: &title}

		st.EXPECT().PostByID(gomock.Any(), id).Return(post, nil)
		st.EXPECT().UpdatePost(gomock.Any(), id, updates).Return(&domain.Post{ID: id, Title: title, AuthorID: author}, nil)

		updated, err := svc.Update(ctx, author, id, updates)
		require.NoError(t, err)
		require.Equal(t, title, updated.Title)
	})

	t.Run("update into missing community", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		community := domain.CommunityID(uuid.New())

		st.EXPECT().PostByID(gomock.Any(), id).Return(post, nil)
		st.EXPECT().CommunityByID(gomock.Any(), community).Return(nil, nil)

		_, err := svc.Update(ctx, author, id, domain.PostUpdates{CommunityID: &community})
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})

	t.Run("stranger is forbidden and nothing is written", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().PostByID(gomock.Any(), id).Return(post, nil).Times(2)

		_, err := svc.Update(ctx, stranger, id, domain.PostUpdates{Title: &title})
		require.ErrorIs(t, err, serrors.ErrForbidden)

		err = svc.Delete(ctx, stranger, id)
		require.ErrorIs(t, err, serrors.ErrForbidden)
	})

	t.Run("missing post", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().PostByID(gomock.Any(), id).Return(nil, nil).Times(2)

		_, err := svc.Update(ctx, author, id, domain.PostUpdates{Title: &title})
		require.ErrorIs(t, err, serrors.ErrNotFound)

		err = svc.Delete(ctx, author, id)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})

	t.Run("author deletes", func(t *testing.T) {
		st, _, svc := newTestPosts(t)
		st.EXPECT().PostByID(gomock.Any(), id).Return(post, nil)
		st.EXPECT().DeletePost(gomock.Any(), id).Return(post, nil)

		require.NoError(t, svc.Delete(ctx, author, id))
	})
}

func TestPosts_Spans(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	svc := posts.New(st, mockposts.NewMockRenderer(ctrl), posts.WithTracerProvider(tp))

	query := domain.PostQuery{PostFilter: domain.PostFilter{Search: "rome"}, Page: 1, Limit: 10}
	st.EXPECT().ListPosts(gomock.Any(), query.PostFilter, gomock.Any()).Return(nil, nil)
	st.EXPECT().CountPosts(gomock.Any(), query.PostFilter).Return(int64(7), nil)

	_, err := svc.List(ctx, query)
	require.NoError(t, err)

	id := domain.PostID(uuid.New())
	st.EXPECT().PostSummaryByID(gomock.Any(), id).Return(nil, nil)

	_, err = svc.Get(ctx, id)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	list := spans[0]
	require.Equal(t, "posts.List", list.Name())
	require.Equal(t, codes.Unset, list.Status().Code)
	require.Contains(t, list.Attributes(), attribute.String("posts.search", "rome"))
	require.Contains(t, list.Attributes(), attribute.Int64("posts.total", 7))

	get := spans[1]
	require.Equal(t, "posts.Get", get.Name())
	require.Equal(t, codes.Error, get.Status().Code)
	require.Equal(t, "post not found", get.Status().Description)
	require.Contains(t, get.Attributes(), attribute.String("posts.id", id.String()))
}

// TestPosts_Listing runs the listing end to end over the memory store.
func TestPosts_Listing(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := posts.New(st, markup.New())

	alice, err := st.CreateUser(ctx, domain.User{Username: "alice", FullName: "Alice"})
	require.NoError(t, err)
	bob, err := st.CreateUser(ctx, domain.User{Username: "bob", FullName: "Bob"})
	require.NoError(t, err)
	communities, err := st.CreateCommunities(ctx,
		domain.Community{Name: "History", Order: 1},
		domain.Community{Name: "Food", Order: 2},
	)
	require.NoError(t, err)
	history, food := communities[0], communities[1]

	var historyPosts []domain.PostID
	for i := range 12 {
		p, err := svc.Create(ctx, alice.ID, posts.NewPost{
			Title:       fmt.Sprintf("History post %d", i),
			Content:     strings.Repeat("history ", 20),
			CommunityID: history.ID,
		})
		require.NoError(t, err)
		historyPosts = append(historyPosts, p.ID)
	}
	_, err = svc.Create(ctx, bob.ID, posts.NewPost{
		Title:       "Soup",
		Content:     "A **warm** soup recipe",
		CommunityID: food.ID,
	})
	require.NoError(t, err)

	_, err = st.CreateComment(ctx, domain.Comment{Content: "first", PostID: historyPosts[11], AuthorID: bob.ID})
	require.NoError(t, err)

	page, err := svc.List(ctx, domain.PostQuery{
		PostFilter: domain.PostFilter{CommunityID: &history.ID},
		Page:       2,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Equal(t, paging.Summary{Total: 12, Page: 2, TotalPages: 2}, page.Pagination)
	require.Len(t, page.Posts, 2)
	require.Equal(t, historyPosts[1], page.Posts[0].ID)
	require.Equal(t, historyPosts[0], page.Posts[1].ID)
	require.True(t, strings.HasSuffix(page.Posts[0].Content, "..."))

	page, err = svc.List(ctx, domain.PostQuery{PostFilter: domain.PostFilter{CommunityID: &history.ID}, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, historyPosts[11], page.Posts[0].ID)
	require.Equal(t, int64(1), page.Posts[0].CommentCount)

	mine, err := svc.Mine(ctx, bob.ID, domain.PostQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mine.Posts, 1)
	require.Equal(t, "Soup", mine.Posts[0].Title)

	detail, err := svc.Get(ctx, mine.Posts[0].ID)
	require.NoError(t, err)
	require.Equal(t, "A **warm** soup recipe", detail.Content)
	require.Contains(t, detail.ContentHTML, "<strong>warm</strong>")

	require.ErrorIs(t, svc.Delete(ctx, alice.ID, mine.Posts[0].ID), serrors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, bob.ID, mine.Posts[0].ID))

	_, err = svc.Get(ctx, mine.Posts[0].ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}
