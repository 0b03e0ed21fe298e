package communities_test

import (
	"context"
	"errors"
	"fmt"
	"forum/internal/communities"
	"forum/pkg/domain"
	"forum/pkg/serrors"
	"forum/pkg/storage"
	mockstorage "forum/pkg/storage/mock"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCommunities(t *testing.T) (*mockstorage.MockStorage, communities.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)

	return st, communities.New(st)
}

func TestCommunities_List(t *testing.T) {
	st, svc := newTestCommunities(t)
	want := []domain.Community{{Name: "History", Order: 1}, {Name: "Food", Order: 2}}
	st.EXPECT().Communities(gomock.Any()).Return(want, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCommunities_Get(t *testing.T) {
	ctx := context.Background()
	id := domain.CommunityID(uuid.New())

	t.Run("with post count", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		st.EXPECT().CommunityByID(gomock.Any(), id).Return(&domain.Community{ID: id, Name: "History"}, nil)
		st.EXPECT().CountCommunityPosts(gomock.Any(), id).Return(int64(3), nil)

		detail, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "History", detail.Name)
		require.Equal(t, int64(3), detail.PostCount)
	})

	t.Run("missing", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		st.EXPECT().CommunityByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.Get(ctx, id)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})
}

func TestCommunities_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores community", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		st.EXPECT().CreateCommunities(gomock.Any(), domain.Community{Name: "Art", Order: 8}).
			Return([]domain.Community{{Name: "Art", Order: 8}}, nil)

		c, err := svc.Create(ctx, "Art", 8)
		require.NoError(t, err)
		require.Equal(t, "Art", c.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		st.EXPECT().CreateCommunities(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("could not store communities: %w", storage.ErrDuplicate))

		_, err := svc.Create(ctx, "Art", 8)
		require.ErrorIs(t, err, serrors.ErrConflict)
	})
}

func TestCommunities_DropAll(t *testing.T) {
	ctx := context.Background()

	t.Run("drops", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		st.EXPECT().DeleteAllCommunities(gomock.Any()).Return(int64(7), nil)

		n, err := svc.DropAll(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(7), n)
	})

	t.Run("referenced is re-raised as conflict", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		st.EXPECT().DeleteAllCommunities(gomock.Any()).Return(int64(0), storage.ErrReferenced)

		_, err := svc.DropAll(ctx)
		require.ErrorIs(t, err, serrors.ErrConflict)
		require.ErrorIs(t, err, storage.ErrReferenced)
	})

	t.Run("other failures are re-raised", func(t *testing.T) {
		st, svc := newTestCommunities(t)
		boom := errors.New("boom")
		st.EXPECT().DeleteAllCommunities(gomock.Any()).Return(int64(0), boom)

		_, err := svc.DropAll(ctx)
		require.ErrorIs(t, err, boom)
	})
}
