package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when an operation requiring a non-transactional
	// context is attempted while already inside a transaction.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when a transaction-specific operation is attempted
	// while not currently inside a transaction.
	ErrNotInTx = errors.New("not in tx")
	// ErrDuplicate is returned when a write violates a uniqueness constraint
	// (usernames, community names).
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a write violates a foreign key, e.g.
	// deleting a community that still has posts or writing a post into a
	// community that no longer exists.
	ErrReferenced = errors.New("record is referenced")
)
