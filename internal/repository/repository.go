// Package repository owns the in-memory entity collections and writes each
// collection back to the store, whole, after every mutation.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"amplify/internal/store"
)

// ErrNotFound is returned by Get when no record has the given id.
var ErrNotFound = errors.New("record not found")

// Record is implemented by pointers to persisted entity types.
type Record[T any] interface {
	*T
	RecordID() uuid.UUID
	SetRecordID(uuid.UUID)
	Clone() T
}

// Repository holds one ordered collection, most recent first.
// All methods are safe for concurrent use; each mutation is a
// read-modify-persist sequence under a single lock.
type Repository[T any, P Record[T]] struct {
	mu    sync.Mutex
	store store.Store
	key   string
	items []T
	newID func() uuid.UUID
}

// Load reads the collection stored under key. When the key is absent or its
// payload cannot be decoded, the repository starts from a copy of seed and the
// decode error is logged and dropped.
func Load[T any, P Record[T]](ctx context.Context, s store.Store, key string, seed []T) (*Repository[T, P], error) {
	r := &Repository[T, P]{
		store: s,
		key:   key,
		newID: uuid.New,
	}

	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if len(raw) > 0 {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			slog.Warn("stored collection is corrupt, falling back to seed", "key", key, "error", err)
		} else if items != nil {
			r.items = items
			return r, nil
		}
	}

	r.items = make([]T, 0, len(seed))
	for i := range seed {
		r.items = append(r.items, P(&seed[i]).Clone())
	}
	return r, nil
}

// List returns a copy of the current collection in stored order.
func (r *Repository[T, P]) List() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, len(r.items))
	for i := range r.items {
		out[i] = P(&r.items[i]).Clone()
	}
	return out
}

// Len returns the number of records.
func (r *Repository[T, P]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Get returns a copy of the record with the given id.
func (r *Repository[T, P]) Get(id uuid.UUID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		return P(&r.items[i]).Clone(), nil
	}
	var zero T
	return zero, ErrNotFound
}

// Add assigns a fresh id to rec, prepends it and persists the collection.
func (r *Repository[T, P]) Add(ctx context.Context, rec T) (T, error) {
	added, err := r.AddMany(ctx, []T{rec})
	if err != nil {
		var zero T
		return zero, err
	}
	return added[0], nil
}

// AddMany assigns fresh ids to recs and prepends them as a block, keeping
// their relative order, with a single persist.
func (r *Repository[T, P]) AddMany(ctx context.Context, recs []T) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := make([]T, len(recs))
	for i := range recs {
		added[i] = P(&recs[i]).Clone()
		P(&added[i]).SetRecordID(r.newID())
	}

	next := make([]T, 0, len(added)+len(r.items))
	next = append(next, added...)
	next = append(next, r.items...)
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}

	out := make([]T, len(added))
	for i := range added {
		out[i] = P(&added[i]).Clone()
	}
	return out, nil
}

// Update applies fn to the record with the given id and persists. It reports
// false, without persisting, when no record matches.
func (r *Repository[T, P]) Update(ctx context.Context, id uuid.UUID, fn func(P)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}

	updated := P(&r.items[i]).Clone()
	fn(P(&updated))
	// ids are immutable
	P(&updated).SetRecordID(id)

	next := make([]T, len(r.items))
	copy(next, r.items)
	next[i] = updated
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the record with the given id and persists. It reports false,
// without persisting, when no record matches.
func (r *Repository[T, P]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]T, 0, len(r.items)-1)
	next = append(next, r.items[:i]...)
	next = append(next, r.items[i+1:]...)
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository[T, P]) indexOf(id uuid.UUID) int {
	for i := range r.items {
		if P(&r.items[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

// commit persists next and swaps it in. On a store failure the in-memory
// collection is left unchanged.
func (r *Repository[T, P]) commit(ctx context.Context, next []T) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", r.key, err)
	}
	r.items = next
	return nil
}
