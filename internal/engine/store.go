package engine

import (
	"context"
	"encoding/json"
	"fmt"
)

// RecordRepo is the persistence backend for player records: a fallible
// key-value store. Satisfied by storage.RecordRepo.
type RecordRepo interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

func playerKey(username string) string { return "player:" + username }

// Store owns the canonical in-memory PlayerRecord for one user and is the
// only path to persisted state. Reads hand out deep-copy snapshots; writes
// go through Put, which enforces the never-regress invariants and swaps the
// in-memory record only after a successful persist.
type Store struct {
	repo     RecordRepo
	username string
	rec      *PlayerRecord
	subs     []func(PlayerRecord)
}

// OpenStore loads the user's record, creating a fresh one on first use.
func OpenStore(ctx context.Context, repo RecordRepo, username string) (*Store, error) {
	if username == "" {
		return nil, ErrNoSession
	}

	raw, ok, err := repo.Get(ctx, playerKey(username))
	if err != nil {
		return nil, persistErr(err)
	}

	rec := NewPlayerRecord(username)
	if ok {
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, fmt.Errorf("decode player record: %w", err)
		}
		rec.Username = username
		rec.normalize()
	}

	return &Store{repo: repo, username: username, rec: rec}, nil
}

// Get returns a snapshot of the current record.
func (s *Store) Get() *PlayerRecord {
	return s.rec.Clone()
}

// Subscribe registers a post-mutation observer. Observers receive a snapshot
// after every successful Put, in registration order.
func (s *Store) Subscribe(fn func(PlayerRecord)) {
	s.subs = append(s.subs, fn)
}

// Put persists rec and makes it the canonical record. Monotonic counters are
// clamped, not errored: a write that would decrease total_tasks_completed or
// total_xp keeps the prior value. On persistence failure the in-memory state
// is left exactly as it was after the last successful Put.
func (s *Store) Put(ctx context.Context, rec *PlayerRecord) error {
	next := rec.Clone()
	next.Username = s.username

	if next.TotalTasksCompleted < s.rec.TotalTasksCompleted {
		next.TotalTasksCompleted = s.rec.TotalTasksCompleted
	}
	if next.TotalXP < s.rec.TotalXP {
		next.TotalXP = s.rec.TotalXP
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode player record: %w", err)
	}
	if err := s.repo.Set(ctx, playerKey(s.username), raw); err != nil {
		return persistErr(err)
	}

	s.rec = next
	for _, fn := range s.subs {
		fn(*s.rec.Clone())
	}
	return nil
}
