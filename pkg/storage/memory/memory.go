// Package memory implements storage.Storage in process memory. It enforces
// the same uniqueness and reference rules as the PostgreSQL schema and is
// used for local runs without a database and as a fast backend in tests.
//
// Transactions work on a private copy of the state that replaces the shared
// state on Commit. Only one transaction may be open at a time. Writes through
// the root store wait for the open transaction to finish and then apply on
// top of its outcome; reads never wait and see the last committed state.
// Writing through the root store from inside a WithTx callback therefore
// blocks forever; use the handle passed to the callback.
package memory

import (
	"context"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/storage"
	"maps"
	"sync"
	"time"
)

type userRow struct {
	domain.User
	seq uint64
}

type communityRow struct {
	domain.Community
	seq uint64
}

type postRow struct {
	domain.Post
	seq uint64
}

type commentRow struct {
	domain.Comment
	seq uint64
}

type state struct {
	seq         uint64
	users       map[domain.UserID]userRow
	communities map[domain.CommunityID]communityRow
	posts       map[domain.PostID]postRow
	comments    map[domain.CommentID]commentRow
}

func newState() *state {
	return &state{
		users:       map[domain.UserID]userRow{},
		communities: map[domain.CommunityID]communityRow{},
		posts:       map[domain.PostID]postRow{},
		comments:    map[domain.CommentID]commentRow{},
	}
}

func (s *state) clone() *state {
	return &state{
		seq:         s.seq,
		users:       maps.Clone(s.users),
		communities: maps.Clone(s.communities),
		posts:       maps.Clone(s.posts),
		comments:    maps.Clone(s.comments),
	}
}

func (s *state) next() uint64 {
	s.seq++

	return s.seq
}

var _ storage.Storage = (*Store)(nil)

// Store is the in-memory storage. The zero value is not usable; use New.
type Store struct {
	mu *sync.RWMutex
	st *state

	// parent is set on transactional handles.
	parent *Store
	// txMu is held by the open transaction and by every root write.
	txMu *sync.Mutex
	done bool

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		mu:   &sync.RWMutex{},
		st:   newState(),
		txMu: &sync.Mutex{},
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Close is a no-op kept to satisfy storage.Storage.
func (s *Store) Close() error { return nil }

// Begin snapshots the current state into a transactional handle. It blocks
// while another transaction is open.
func (s *Store) Begin(ctx context.Context) (storage.TxStorage, error) {
	if s.parent != nil {
		return nil, storage.ErrAlreadyInTx
	}

	if err := ctx.Err(); err != nil {
		return nil, err //nolint: wrapcheck
	}

	s.txMu.Lock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	return &Store{
		mu:     &sync.RWMutex{},
		st:     snapshot,
		parent: s,
		now:    s.now,
	}, nil
}

// WithTx runs cb inside a transaction, committing when it returns nil.
func (s *Store) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}

// Commit publishes the transaction's state to the parent store.
func (s *Store) Commit() error {
	if s.parent == nil || s.done {
		return storage.ErrNotInTx
	}

	s.mu.Lock()
	s.done = true
	st := s.st
	s.mu.Unlock()

	s.parent.mu.Lock()
	s.parent.st = st
	s.parent.mu.Unlock()
	s.parent.txMu.Unlock()

	return nil
}

// Rollback discards the transaction's state.
func (s *Store) Rollback() error {
	if s.parent == nil || s.done {
		return storage.ErrNotInTx
	}

	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	s.parent.txMu.Unlock()

	return nil
}

func (s *Store) read() (*state, func()) {
	s.mu.RLock()

	return s.st, s.mu.RUnlock
}

func (s *Store) write() (*state, func()) {
	if s.txMu == nil {
		s.mu.Lock()

		return s.st, s.mu.Unlock
	}

	s.txMu.Lock()
	s.mu.Lock()

	return s.st, func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// bounds clamps window to a slice of n rows.
func bounds(window paging.Window, n int) (int, int) {
	start := min(window.Offset, uint(n))    //nolint: gosec
	end := min(start+window.Limit, uint(n)) //nolint: gosec

	return int(start), int(end) //nolint: gosec
}
