// Package communities manages the topics posts are filed under.
package communities

import (
	"context"
	"errors"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/logger"
	"forum/pkg/serrors"
	"forum/pkg/storage"

	"go.uber.org/zap"
)

type service struct {
	storage storage.Storage
}

// List returns every community by display order, then name.
func (s service) List(ctx context.Context) ([]domain.Community, error) {
	communities, err := s.storage.Communities(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list communities: %w", err)
	}

	return communities, nil
}

func (s service) Get(ctx context.Context, id domain.CommunityID) (*domain.CommunityDetail, error) {
	community, err := s.storage.CommunityByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get community: %w", err)
	}
	if community == nil {
		return nil, serrors.With(serrors.ErrNotFound, "community not found")
	}

	count, err := s.storage.CountCommunityPosts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not count community posts: %w", err)
	}

	return &domain.CommunityDetail{Community: *community, PostCount: count}, nil
}

func (s service) Create(ctx context.Context, name string, order int) (*domain.Community, error) {
	created, err := s.storage.CreateCommunities(ctx, domain.Community{Name: name, Order: order})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, serrors.Wrap(serrors.ErrConflict, err, "community already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("could not create community: %w", err)
	}

	return &created[0], nil
}

// DropAll deletes every community. It fails with Conflict while posts still
// reference a community; failures are logged before being returned.
func (s service) DropAll(ctx context.Context) (int64, error) {
	n, err := s.storage.DeleteAllCommunities(ctx)
	if err != nil {
		logger.Error(ctx, "could not drop communities", zap.Error(err))
		if errors.Is(err, storage.ErrReferenced) {
			return 0, serrors.Wrap(serrors.ErrConflict, err, "communities still have posts")
		}

		return 0, fmt.Errorf("could not drop communities: %w", err)
	}

	logger.Info(ctx, "dropped all communities", zap.Int64("count", n))

	return n, nil
}

// New creates a communities Service over storage.
func New(storage storage.Storage) Service {
	return &service{storage: storage}
}
