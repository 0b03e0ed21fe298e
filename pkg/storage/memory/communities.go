package memory

import (
	"cmp"
	"context"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/storage"
	"slices"

	"github.com/google/uuid"
)

// CreateCommunities stores all communities or none of them.
func (s *Store) CreateCommunities(_ context.Context, communities ...domain.Community) ([]domain.Community, error) {
	if len(communities) == 0 {
		return nil, nil
	}

	st, unlock := s.write()
	defer unlock()

	taken := make(map[string]struct{}, len(st.communities)+len(communities))
	for _, c := range st.communities {
		taken[c.Name] = struct{}{}
	}
	for _, c := range communities {
		if _, ok := taken[c.Name]; ok {
			return nil, fmt.Errorf("%w: community name %q", storage.ErrDuplicate, c.Name)
		}
		taken[c.Name] = struct{}{}
	}

	now := s.now()
	out := make([]domain.Community, 0, len(communities))
	for _, c := range communities {
		c.ID = domain.CommunityID(uuid.New())
		c.CreatedAt = now
		c.UpdatedAt = now
		st.communities[c.ID] = communityRow{Community: c, seq: st.next()}
		out = append(out, c)
	}

	return out, nil
}

func (s *Store) Communities(_ context.Context) ([]domain.Community, error) {
	st, unlock := s.read()
	defer unlock()

	out := make([]domain.Community, 0, len(st.communities))
	for _, row := range st.communities {
		out = append(out, row.Community)
	}
	slices.SortFunc(out, func(a, b domain.Community) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.Name, b.Name))
	})

	return out, nil
}

func (s *Store) CommunityByID(_ context.Context, id domain.CommunityID) (*domain.Community, error) {
	st, unlock := s.read()
	defer unlock()

	row, ok := st.communities[id]
	if !ok {
		return nil, nil
	}

	return &row.Community, nil
}

// DeleteAllCommunities fails with ErrReferenced while any post remains.
func (s *Store) DeleteAllCommunities(_ context.Context) (int64, error) {
	st, unlock := s.write()
	defer unlock()

	if len(st.posts) > 0 {
		return 0, fmt.Errorf("%w: communities still have posts", storage.ErrReferenced)
	}

	n := int64(len(st.communities))
	clear(st.communities)

	return n, nil
}
