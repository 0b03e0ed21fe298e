package postgres

import (
	"context"
	"fmt"
	"forum/pkg/domain"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

func (p *PgSQL) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var created PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(row).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &created); err != nil {
		return nil, fmt.Errorf("could not store user into pg: %w", classify(err))
	}

	return created.ToDomain(), nil
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return p.userWhere(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

func (p *PgSQL) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return p.userWhere(ctx, goqu.I("username").Eq(username))
}

func (p *PgSQL) userWhere(ctx context.Context, where goqu.Expression) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(where).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// TouchLastLogin stamps last_login and updated_at for the given user.
func (p *PgSQL) TouchLastLogin(ctx context.Context, id domain.UserID, at time.Time) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(goqu.Record{
			"last_login": at,
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update last login in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) CountUsers(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(usersTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users in pg: %w", err)
	}

	return count, nil
}

func (p *PgSQL) DeleteAllUsers(ctx context.Context) (int64, error) {
	return p.deleteAll(ctx, usersTable)
}

func (p *PgSQL) deleteAll(ctx context.Context, table string) (int64, error) {
	res, err := p.Builder.Delete(table).Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete all %s in pg: %w", table, classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected %s rows: %w", table, err)
	}

	return n, nil
}
