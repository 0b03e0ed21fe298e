package auth_test

import (
	"context"
	"errors"
	"fmt"
	"forum/internal/auth"
	mockauth "forum/internal/auth/mock"
	"forum/internal/token"
	"forum/pkg/domain"
	"forum/pkg/serrors"
	"forum/pkg/storage"
	"forum/pkg/storage/memory"
	mockstorage "forum/pkg/storage/mock"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuth(t *testing.T) (*mockstorage.MockStorage, *mockauth.MockTokenIssuer, auth.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	tokens := mockauth.NewMockTokenIssuer(ctrl)

	return st, tokens, auth.New(st, tokens)
}

func testUser() *domain.User {
	return &domain.User{
		ID:        domain.UserID(uuid.New()),
		Username:  "alice",
		FullName:  "Alice Liddell",
		Image:     "https://img/alice.png",
		LastLogin: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with last login in one write", func(t *testing.T) {
		st, _, svc := newTestAuth(t)
		user := testUser()
		before := time.Now().UTC()

		st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(nil, nil)
		st.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in domain.User) (*domain.User, error) {
				require.Equal(t, "alice", in.Username)
				require.Equal(t, "Alice Liddell", in.FullName)
				require.Equal(t, "https://img/alice.png", in.Image)
				require.False(t, in.LastLogin.Before(before), "last login is stamped on create")
				require.Equal(t, time.UTC, in.LastLogin.Location())

				return user, nil
			})
		// No TouchLastLogin expectation: a second write would fail the mock.

		profile, err := svc.Register(ctx, "alice", "Alice Liddell", "https://img/alice.png")
		require.NoError(t, err)
		require.Equal(t, user.Profile(), *profile)
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		st, _, svc := newTestAuth(t)
		st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(testUser(), nil)

		_, err := svc.Register(ctx, "alice", "Alice", "")
		require.ErrorIs(t, err, serrors.ErrConflict)
	})

	t.Run("racing registration is a conflict", func(t *testing.T) {
		st, _, svc := newTestAuth(t)
		st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(nil, nil)
		st.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("could not store user: %w", storage.ErrDuplicate))

		_, err := svc.Register(ctx, "alice", "Alice", "")
		require.ErrorIs(t, err, serrors.ErrConflict)
		require.ErrorIs(t, err, storage.ErrDuplicate)
	})

	t.Run("storage failure", func(t *testing.T) {
		st, _, svc := newTestAuth(t)
		boom := errors.New("boom")
		st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(nil, boom)

		_, err := svc.Register(ctx, "alice", "Alice", "")
		require.ErrorIs(t, err, boom)
		require.Equal(t, serrors.ErrInternal, serrors.KindOf(err))
	})
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown username does not touch the store", func(t *testing.T) {
		st, _, svc := newTestAuth(t)
		st.EXPECT().UserByUsername(gomock.Any(), "ghost").Return(nil, nil)

		_, err := svc.Login(ctx, "ghost")
		require.ErrorIs(t, err, serrors.ErrUnauthorized)
	})

	t.Run("issues token for touched user", func(t *testing.T) {
		st, tokens, svc := newTestAuth(t)
		user := testUser()
		touched := *user
		touched.LastLogin = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(user, nil)
		st.EXPECT().TouchLastLogin(gomock.Any(), user.ID, gomock.Any()).Return(&touched, nil)
		tokens.EXPECT().Issue(touched).Return("signed", nil)

		session, err := svc.Login(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "signed", session.AccessToken)
		require.Equal(t, touched.LastLogin, session.User.LastLogin)
	})

	t.Run("token failure", func(t *testing.T) {
		st, tokens, svc := newTestAuth(t)
		user := testUser()

		st.EXPECT().UserByUsername(gomock.Any(), "alice").Return(user, nil)
		st.EXPECT().TouchLastLogin(gomock.Any(), user.ID, gomock.Any()).Return(user, nil)
		tokens.EXPECT().Issue(gomock.Any()).Return("", errors.New("no key"))

		_, err := svc.Login(ctx, "alice")
		require.Error(t, err)
	})
}

func TestAuth_Profile(t *testing.T) {
	ctx := context.Background()
	st, _, svc := newTestAuth(t)
	user := testUser()

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(nil, nil)
	_, err = svc.Profile(ctx, user.ID)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestAuth_WithMemoryStore(t *testing.T) {
	ctx := context.Background()
	issuer := token.NewIssuer("secret", time.Hour)
	svc := auth.New(memory.New(), issuer)

	registered, err := svc.Register(ctx, "alice", "Alice", "")
	require.NoError(t, err)
	require.False(t, registered.LastLogin.IsZero())

	_, err = svc.Register(ctx, "alice", "Alice Again", "")
	require.ErrorIs(t, err, serrors.ErrConflict)

	session, err := svc.Login(ctx, "alice")
	require.NoError(t, err)
	require.False(t, session.User.LastLogin.Before(registered.LastLogin))

	identity, err := issuer.Parse(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, identity.UserID)

	profile, err := svc.Profile(ctx, identity.UserID)
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)
}
