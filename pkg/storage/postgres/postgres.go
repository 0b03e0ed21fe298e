package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"forum/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	applicationName = "forum"

	usersTable       = "users"
	communitiesTable = "communities"
	postsTable       = "posts"
	commentsTable    = "comments"
)

// Options describes how to reach the forum database and size its pool.
// Zero pool values keep the pgxpool defaults.
type Options struct {
	Username string
	Password string
	Host     string
	Port     int
	Database string
	SslMode  string // disable, require, verify-full...

	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	MaxOpenConnections int // pool MaxConns
	MaxIdleConnections int // pool MinConns
}

// DB is the part of database/sql shared by *sql.DB and *sql.Tx, so every
// query runs the same way inside and outside a transaction.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Builder is the part of goqu used to build queries; goqu.Database and
// goqu.TxDatabase both provide it.
type Builder interface {
	From(table ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
	Update(table interface{}) *goqu.UpdateDataset
	Delete(table interface{}) *goqu.DeleteDataset
}

var _ storage.Storage = (*PgSQL)(nil)

// PgSQL is the PostgreSQL entity store. The same type serves as the root
// handle (DB is a *sql.DB, Pool is set) and as a transaction handle (DB is a
// *sql.Tx, Pool is nil).
type PgSQL struct {
	DB      DB
	Builder Builder
	Pool    *pgxpool.Pool
}

// Close shuts down the pgx pool and the database/sql wrapper on top of it.
// Transaction handles own neither and close nothing.
func (p *PgSQL) Close() error {
	var err error
	if db, ok := p.DB.(*sql.DB); ok {
		err = db.Close()
	}
	if p.Pool != nil {
		p.Pool.Close()
	}

	if err != nil {
		return fmt.Errorf("could not close database: %w", err)
	}

	return nil
}

func (p *PgSQL) tx() (*sql.Tx, error) {
	tx, ok := p.DB.(*sql.Tx)
	if !ok {
		return nil, storage.ErrNotInTx
	}

	return tx, nil
}

func (p *PgSQL) Commit() error {
	tx, err := p.tx()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

func (p *PgSQL) Rollback() error {
	tx, err := p.tx()
	if err != nil {
		return err
	}
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("could not rollback tx: %w", err)
	}

	return nil
}

// Begin opens a read-committed transaction. The returned handle shares no
// pool, so closing it is a no-op; beginning again on it yields
// storage.ErrAlreadyInTx.
func (p *PgSQL) Begin(ctx context.Context) (storage.TxStorage, error) {
	db, ok := p.DB.(*sql.DB)
	if !ok {
		return nil, storage.ErrAlreadyInTx
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	return &PgSQL{DB: tx, Builder: goqu.NewTx("postgres", tx)}, nil
}

// WithTx runs cb in a transaction that is committed when cb returns nil and
// rolled back otherwise. cb's error is returned as is.
func (p *PgSQL) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := p.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}

// DSN renders the options as a libpq key/value connection string.
func (o Options) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s application_name=%s",
		o.Host,
		o.Port,
		o.Username,
		o.Database,
		o.Password,
		o.SslMode,
		applicationName)
}

// New connects a pgx pool, verifies it with a ping and wraps it in a
// database/sql handle so goqu and goose can share it.
func New(ctx context.Context, options Options) (*PgSQL, error) {
	cfg, err := pgxpool.ParseConfig(options.DSN())
	if err != nil {
		return nil, fmt.Errorf("could not parse pgxpool config: %w", err)
	}
	if options.MaxOpenConnections > 0 {
		cfg.MaxConns = int32(options.MaxOpenConnections) //nolint: gosec
	}
	if options.MaxIdleConnections > 0 {
		cfg.MinConns = int32(options.MaxIdleConnections) //nolint: gosec
	}
	if options.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = options.ConnMaxLifetime
	}
	if options.ConnMaxIdleTime > 0 {
		cfg.MaxConnIdleTime = options.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create pgx Pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("could not reach postgres: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	return &PgSQL{
		DB:      sqlDB,
		Builder: goqu.Dialect("postgres").DB(sqlDB),
		Pool:    pool,
	}, nil
}

// classify translates Postgres constraint violations into the storage
// sentinels. Other errors are returned unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %w", storage.ErrDuplicate, err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %w", storage.ErrReferenced, err)
	default:
		return err
	}
}
