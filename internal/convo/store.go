package convo

import (
	"sync"

	"github.com/parleychat/parley/internal/types"
)

// Store is the ordered, keyed collection of conversation records. Iteration
// order is the externally visible "most recently active first" order. The
// reconciler loop is the only writer; the UI reads snapshots concurrently.
//
// The store holds at most one record per conversation id. Add does not guard
// against duplicates; callers check Get first (the reconciler re-checks after
// every async gap for exactly this reason).
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]types.ConversationRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]types.ConversationRecord)}
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (types.ConversationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	return rec, ok
}

// All returns a snapshot copy of every record in current order.
func (s *Store) All() []types.ConversationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ConversationRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Add inserts a record at the given index. Indexes past the end append.
func (s *Store) Add(rec types.ConversationRecord, at int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if at < 0 {
		at = 0
	}
	if at > len(s.order) {
		at = len(s.order)
	}
	s.order = append(s.order, "")
	copy(s.order[at+1:], s.order[at:])
	s.order[at] = rec.ID
	s.byID[rec.ID] = rec
}

// Update replaces the record with a matching id in place; order is unchanged.
// No-op if the id is absent.
func (s *Store) Update(rec types.ConversationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[rec.ID]; !ok {
		return
	}
	s.byID[rec.ID] = rec
}

// UpdateFront replaces the record and relocates it to index 0. Idempotent on
// ordering when the record is already at the front. No-op if the id is absent.
func (s *Store) UpdateFront(rec types.ConversationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[rec.ID]; !ok {
		return
	}
	s.byID[rec.ID] = rec
	if len(s.order) > 0 && s.order[0] == rec.ID {
		return
	}
	for i, id := range s.order {
		if id == rec.ID {
			copy(s.order[1:i+1], s.order[:i])
			s.order[0] = rec.ID
			return
		}
	}
}

// Remove deletes the record with the given id; no-op when absent.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, cur := range s.order {
		if cur == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
