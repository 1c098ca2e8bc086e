// Package memcache holds small in-process stores used where a database is
// not wanted, such as tests and local demos.
package memcache

import (
	"sort"
	"sync"
	"time"
)

// OwnedStore keeps values partitioned by owner. A value is only ever
// visible to, and removable by, the owner it was stored under.
type OwnedStore[T any] struct {
	mu   sync.RWMutex
	data map[string]entry[T] // keyed by id
	seq  uint64
}

type entry[T any] struct {
	owner     string
	createdAt time.Time
	seq       uint64
	value     T
}

func NewOwnedStore[T any]() *OwnedStore[T] {
	return &OwnedStore[T]{
		data: make(map[string]entry[T]),
	}
}

// Put stores value under id. It returns false, leaving the store
// unchanged, when id is already taken.
func (s *OwnedStore[T]) Put(owner, id string, createdAt time.Time, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; exists {
		return false
	}
	s.seq++
	s.data[id] = entry[T]{owner: owner, createdAt: createdAt, seq: s.seq, value: value}
	return true
}

func (s *OwnedStore[T]) Get(owner, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || e.owner != owner {
		var zero T
		return zero, false
	}
	return e.value, true
}

// List returns owner's values newest first. Ties on createdAt fall back
// to insertion order, latest first.
func (s *OwnedStore[T]) List(owner string) []T {
	s.mu.RLock()
	matched := make([]entry[T], 0)
	for _, e := range s.data {
		if e.owner == owner {
			matched = append(matched, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.After(matched[j].createdAt)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]T, len(matched))
	for i, e := range matched {
		out[i] = e.value
	}
	return out
}

// Delete removes id if owner stored it and reports whether anything was removed.
func (s *OwnedStore[T]) Delete(owner, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok || e.owner != owner {
		return false
	}
	delete(s.data, id)
	return true
}

func (s *OwnedStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
