package serrors_test

import (
	"errors"
	"fmt"
	"forum/pkg/serrors"
	"forum/pkg/storage"
	"testing"

	"github.com/stretchr/testify/require"
)

type constraintError struct{ constraint string }

func (e *constraintError) Error() string { return "violates " + e.constraint }

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *serrors.Error
		want string
	}{
		{
			name: "message only",
			err:  serrors.With(serrors.ErrNotFound, "post %s not found", "p-1"),
			want: "post p-1 not found",
		},
		{
			name: "message and cause",
			err:  serrors.Wrap(serrors.ErrConflict, storage.ErrDuplicate, "username %q is taken", "mira"),
			want: `username "mira" is taken: duplicate record`,
		},
		{
			name: "cause only",
			err:  serrors.Wrap(serrors.ErrInternal, errors.New("connection reset"), ""),
			want: "connection reset",
		},
		{
			name: "kind only",
			err:  serrors.KindOnly(serrors.ErrForbidden),
			want: "FORBIDDEN",
		},
		{
			name: "nil",
			err:  nil,
			want: "<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_MatchesKindAndCause(t *testing.T) {
	cause := &constraintError{constraint: "communities_name_key"}
	err := fmt.Errorf("creating community: %w",
		serrors.Wrap(serrors.ErrConflict, cause, "community name is taken"))

	require.ErrorIs(t, err, serrors.ErrConflict)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrBadRequest)

	var k serrors.Kind
	require.ErrorAs(t, err, &k)
	require.Equal(t, serrors.ErrConflict, k)

	var ce *constraintError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "communities_name_key", ce.constraint)

	var se *serrors.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, serrors.ErrConflict, se.Kind())
	require.Equal(t, "community name is taken", se.Message())
	require.Same(t, cause, se.Cause())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want serrors.Kind
	}{
		{"plain error", errors.New("boom"), serrors.ErrInternal},
		{"storage sentinel", storage.ErrReferenced, serrors.ErrInternal},
		{"bare kind", serrors.ErrUnauthorized, serrors.ErrUnauthorized},
		{"semantic error", serrors.With(serrors.ErrBadRequest, "title is required"), serrors.ErrBadRequest},
		{
			"wrapped semantic error",
			fmt.Errorf("updating comment: %w", serrors.With(serrors.ErrForbidden, "not the author")),
			serrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	inner := serrors.With(serrors.ErrNotFound, "comment not found")
	outer := serrors.Wrap(serrors.ErrNotFound, inner, "post has no such comment")

	require.Equal(t, "post has no such comment", serrors.MessageOf(fmt.Errorf("ctx: %w", outer)))
	require.Equal(t, "comment not found", serrors.MessageOf(inner))
	require.Empty(t, serrors.MessageOf(errors.New("plain")))
}

func TestKindsAreDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
	}
	seen := make(map[serrors.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		_, dup := seen[k]
		require.False(t, dup, "duplicate kind %v", k)
		seen[k] = struct{}{}
	}
}
