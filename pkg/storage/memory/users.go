package memory

import (
	"context"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/storage"
	"time"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(_ context.Context, user domain.User) (*domain.User, error) {
	st, unlock := s.write()
	defer unlock()

	for _, u := range st.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: username %q", storage.ErrDuplicate, user.Username)
		}
	}

	now := s.now()
	user.ID = domain.UserID(uuid.New())
	user.CreatedAt = now
	user.UpdatedAt = now
	st.users[user.ID] = userRow{User: user, seq: st.next()}

	return &user, nil
}

func (s *Store) UserByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	st, unlock := s.read()
	defer unlock()

	row, ok := st.users[id]
	if !ok {
		return nil, nil
	}

	return &row.User, nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	st, unlock := s.read()
	defer unlock()

	for _, row := range st.users {
		if row.Username == username {
			return &row.User, nil
		}
	}

	return nil, nil
}

func (s *Store) TouchLastLogin(_ context.Context, id domain.UserID, at time.Time) (*domain.User, error) {
	st, unlock := s.write()
	defer unlock()

	row, ok := st.users[id]
	if !ok {
		return nil, nil
	}

	row.LastLogin = at
	row.UpdatedAt = s.now()
	st.users[id] = row

	return &row.User, nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	st, unlock := s.read()
	defer unlock()

	return int64(len(st.users)), nil
}

// DeleteAllUsers fails with ErrReferenced while any post or comment remains.
func (s *Store) DeleteAllUsers(_ context.Context) (int64, error) {
	st, unlock := s.write()
	defer unlock()

	if len(st.posts) > 0 || len(st.comments) > 0 {
		return 0, fmt.Errorf("%w: users still own posts or comments", storage.ErrReferenced)
	}

	n := int64(len(st.users))
	clear(st.users)

	return n, nil
}
