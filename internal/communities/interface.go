package communities

import (
	"context"
	"forum/pkg/domain"
)

//go:generate mockgen -package mockcommunities -source=interface.go -destination=mock/mockcommunities.go *
type Service interface {
	List(ctx context.Context) ([]domain.Community, error)
	Get(ctx context.Context, id domain.CommunityID) (*domain.CommunityDetail, error)
	Create(ctx context.Context, name string, order int) (*domain.Community, error)
	DropAll(ctx context.Context) (int64, error)
}
