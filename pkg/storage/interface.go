// Package storage defines the entity store the forum services rely on. It
// abstracts persistence of users, communities, posts and comments together
// with transaction management so that different backends (PostgreSQL, the
// in-process memory store) can provide concrete implementations.
//
// Lookups by id return (nil, nil) when no row matches; services translate
// that into a not-found error. Constraint violations are reported as
// ErrDuplicate or ErrReferenced.
package storage

import "context"

//go:generate mockgen -package mockstorage -destination=mock/mockstorage.go forum/pkg/storage Storage,AllStorage

// AllStorage is a composite interface that includes all entity-specific
// storage capabilities required by the application.
type AllStorage interface {
	UserStorage
	CommunityStorage
	PostStorage
	CommentStorage
}

// TxStorage describes a storage handle that operates within a database
// transaction. It exposes the same capabilities as AllStorage and additionally
// allows committing or rolling back the ongoing transaction.
// Implementations should become unusable after Commit or Rollback is called.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage that can be used to
	// perform further operations within that transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes the provided callback with a
	// transactional handle, and then commits on success or rolls back if the
	// callback returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
