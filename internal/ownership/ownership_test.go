package ownership_test

import (
	"forum/internal/ownership"
	"forum/pkg/domain"
	"forum/pkg/serrors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	author := domain.UserID(uuid.New())
	stranger := domain.UserID(uuid.New())

	tests := []struct {
		name     string
		resource ownership.Owned
		actor    domain.UserID
		allowed  bool
	}{
		{name: "post author", resource: domain.Post{AuthorID: author}, actor: author, allowed: true},
		{name: "post stranger", resource: domain.Post{AuthorID: author}, actor: stranger},
		{name: "comment author", resource: domain.Comment{AuthorID: author}, actor: author, allowed: true},
		{name: "comment stranger", resource: domain.Comment{AuthorID: author}, actor: stranger},
		{name: "zero actor", resource: domain.Post{AuthorID: author}, actor: domain.UserID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ownership.Authorize(tt.resource, tt.actor)
			if tt.allowed {
				require.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, serrors.ErrForbidden)
		})
	}
}
