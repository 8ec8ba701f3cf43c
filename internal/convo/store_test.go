package convo

import (
	"testing"

	"github.com/parleychat/parley/internal/types"
)

func directRecord(id, uid, name string) types.ConversationRecord {
	return types.ConversationRecord{
		ID:   id,
		Kind: types.ConversationDirect,
		User: &types.User{UID: uid, Name: name},
	}
}

func orderOf(s *Store) []string {
	recs := s.All()
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	return ids
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStoreAddGetRemove(t *testing.T) {
	s := NewStore()
	s.Add(directRecord("a_user_me", "a", "Alice"), 0)
	s.Add(directRecord("b_user_me", "b", "Bob"), 1)

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	rec, ok := s.Get("a_user_me")
	if !ok || rec.User.Name != "Alice" {
		t.Fatalf("Get(a_user_me) = %+v, %v", rec, ok)
	}

	s.Remove("a_user_me")
	if _, ok := s.Get("a_user_me"); ok {
		t.Fatal("record still present after Remove")
	}
	// Removing again is a no-op.
	s.Remove("a_user_me")
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestStoreOneRecordPerID(t *testing.T) {
	s := NewStore()
	s.Add(directRecord("x", "a", "Alice"), 0)

	rec := directRecord("x", "a", "Alice Updated")
	s.Update(rec)
	s.UpdateFront(rec)
	s.Remove("x")
	if s.Len() != 0 {
		t.Fatalf("Len = %d after remove, want 0", s.Len())
	}

	// Interleaved operations never yield duplicates.
	s.Add(directRecord("x", "a", "Alice"), 0)
	s.Add(directRecord("y", "b", "Bob"), 0)
	s.UpdateFront(directRecord("x", "a", "Alice2"))
	s.UpdateFront(directRecord("y", "b", "Bob2"))
	seen := make(map[string]int)
	for _, id := range orderOf(s) {
		seen[id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %s appears %d times", id, n)
		}
	}
}

func TestStoreUpdateKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Add(directRecord("a", "a", "A"), 0)
	s.Add(directRecord("b", "b", "B"), 1)
	s.Add(directRecord("c", "c", "C"), 2)

	s.Update(directRecord("b", "b", "B2"))
	if got := orderOf(s); !sameOrder(got, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v, want [a b c]", got)
	}
	rec, _ := s.Get("b")
	if rec.User.Name != "B2" {
		t.Fatalf("Update did not replace record: %+v", rec)
	}

	// Updating an absent id is a no-op.
	s.Update(directRecord("zz", "z", "Z"))
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
}

func TestStoreUpdateFront(t *testing.T) {
	s := NewStore()
	s.Add(directRecord("a", "a", "A"), 0)
	s.Add(directRecord("b", "b", "B"), 1)
	s.Add(directRecord("c", "c", "C"), 2)

	s.UpdateFront(directRecord("c", "c", "C2"))
	if got := orderOf(s); !sameOrder(got, []string{"c", "a", "b"}) {
		t.Fatalf("order = %v, want [c a b]", got)
	}

	// Idempotent when already at front: other records keep their order.
	s.UpdateFront(directRecord("c", "c", "C3"))
	if got := orderOf(s); !sameOrder(got, []string{"c", "a", "b"}) {
		t.Fatalf("order after repeat = %v, want [c a b]", got)
	}
}

func TestStoreAddClampsIndex(t *testing.T) {
	s := NewStore()
	s.Add(directRecord("a", "a", "A"), 99)
	s.Add(directRecord("b", "b", "B"), -5)
	if got := orderOf(s); !sameOrder(got, []string{"b", "a"}) {
		t.Fatalf("order = %v, want [b a]", got)
	}
}

func TestStoreNarrowUpdateRoundTrip(t *testing.T) {
	orig := directRecord("a_user_me", "a", "Alice")
	orig.UnreadCount = 7
	orig.User.Status = types.UserStatusOnline
	msg := types.Message{ID: "m1", Category: types.CategoryMessage, Type: types.TypeText, Text: "hi", SentAt: 100}
	orig.LastMessage = &msg

	s := NewStore()
	s.Add(orig, 0)

	// Clone, replace only the last message, write back.
	cp := orig.Clone()
	next := types.Message{ID: "m2", Category: types.CategoryMessage, Type: types.TypeText, Text: "yo", SentAt: 200}
	cp.LastMessage = &next
	s.Update(cp)

	got, _ := s.Get("a_user_me")
	if got.LastMessage.ID != "m2" {
		t.Fatalf("last message = %s, want m2", got.LastMessage.ID)
	}
	if got.UnreadCount != 7 ||
		got.User.UID != "a" || got.User.Name != "Alice" || got.User.Status != types.UserStatusOnline ||
		got.Kind != types.ConversationDirect || got.ID != "a_user_me" {
		t.Fatalf("narrow update disturbed other fields: %+v", got)
	}
}
