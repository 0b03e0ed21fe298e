package postgres

import (
	"context"
	"fmt"
	"forum/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

func (p *PgSQL) CreateCommunities(ctx context.Context, communities ...domain.Community) ([]domain.Community, error) {
	if len(communities) == 0 {
		return nil, nil
	}

	rows := make([]PgCommunity, 0, len(communities))
	for _, c := range communities {
		rows = append(rows, PgCommunity{Name: c.Name, Order: c.Order})
	}

	var result []PgCommunity
	if err := p.Builder.Insert(communitiesTable).
		Rows(rows).
		Returning(&PgCommunity{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store communities into pg: %w", classify(err))
	}

	return pgCommunitiesToDomain(result), nil
}

// Communities returns every community by display order, then name.
func (p *PgSQL) Communities(ctx context.Context) ([]domain.Community, error) {
	var rows []PgCommunity
	if err := p.Builder.From(communitiesTable).
		Order(goqu.I("order").Asc(), goqu.I("name").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch communities from pg: %w", err)
	}

	return pgCommunitiesToDomain(rows), nil
}

func (p *PgSQL) CommunityByID(ctx context.Context, id domain.CommunityID) (*domain.Community, error) {
	var row PgCommunity
	found, err := p.Builder.From(communitiesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch community by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteAllCommunities(ctx context.Context) (int64, error) {
	return p.deleteAll(ctx, communitiesTable)
}
