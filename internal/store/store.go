// Package store holds the authoritative in-process transaction list and
// persists a full snapshot of it after every mutation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/helderruiz/controle-mensal/internal/core"
)

// Snapshotter is the port to durable local storage. The whole transaction
// array is written under one key on every save; there is no incremental
// diffing.
type Snapshotter interface {
	// Save replaces the persisted snapshot with the given set.
	Save(ctx context.Context, transactions []core.Transaction) error
	// Load returns the persisted snapshot. ok is false when no snapshot
	// has ever been saved.
	Load(ctx context.Context) (transactions []core.Transaction, ok bool, err error)
}

// UpdateResult tells a caller whether an update found its target. The
// store never errors on an unknown id; callers decide whether NotFound is
// worth surfacing.
type UpdateResult int

const (
	Updated UpdateResult = iota
	NotFound
)

func (r UpdateResult) String() string {
	if r == Updated {
		return "updated"
	}
	return "not_found"
}

// Store keeps every transaction in memory, newest first, and mirrors the
// full set to its Snapshotter after each mutation. Mutations are expected
// from a single logical caller; the mutex only guards incidental
// concurrent reads.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
	snap  Snapshotter
}

// New loads the persisted snapshot through snap, falling back to the seed
// set when no snapshot exists yet.
func New(ctx context.Context, snap Snapshotter) (*Store, error) {
	items, ok, err := snap.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		items = Seed()
		slog.InfoContext(ctx, "No snapshot found, starting from seed set",
			"transactions", len(items))
	} else {
		slog.InfoContext(ctx, "Loaded transaction snapshot",
			"transactions", len(items))
	}
	return &Store{items: items, snap: snap}, nil
}

// Add assigns ids to the batch and inserts it ahead of the existing
// records as one operation. Either every record of the batch is inserted
// and persisted or none is.
func (s *Store) Add(ctx context.Context, batch []core.Transaction) ([]core.Transaction, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	prepared := make([]core.Transaction, len(batch))
	for i, t := range batch {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		t.ID = uuid.NewString()
		prepared[i] = t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]core.Transaction, 0, len(prepared)+len(s.items))
	next = append(next, prepared...)
	next = append(next, s.items...)
	if err := s.snap.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}
	s.items = next

	slog.InfoContext(ctx, "Transactions added",
		"count", len(prepared),
		"total", len(s.items))
	return prepared, nil
}

// Update replaces the record with the given id wholesale, keeping the id.
// An unknown id is reported as NotFound, never as an error.
func (s *Store) Update(ctx context.Context, id string, record core.Transaction) (UpdateResult, error) {
	if err := record.Validate(); err != nil {
		return NotFound, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID != id {
			continue
		}
		record.ID = id
		prev := s.items[i]
		s.items[i] = record
		if err := s.snap.Save(ctx, s.items); err != nil {
			s.items[i] = prev
			return NotFound, fmt.Errorf("persist snapshot: %w", err)
		}
		slog.InfoContext(ctx, "Transaction updated", "id", id)
		return Updated, nil
	}
	slog.DebugContext(ctx, "Update target not found", "id", id)
	return NotFound, nil
}

// Delete removes the record with the given id. Deleting an unknown id is
// a no-op; deleting one sibling of an installment series leaves the
// others untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID != id {
			continue
		}
		next := make([]core.Transaction, 0, len(s.items)-1)
		next = append(next, s.items[:i]...)
		next = append(next, s.items[i+1:]...)
		if err := s.snap.Save(ctx, next); err != nil {
			return fmt.Errorf("persist snapshot: %w", err)
		}
		s.items = next
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
		return nil
	}
	return nil
}

// All returns a copy of the current transaction set, newest first.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
