package types

import "testing"

func TestMessageCloneIsDeep(t *testing.T) {
	orig := Message{
		ID:       "m1",
		Category: CategoryMessage,
		Type:     TypeText,
		Metadata: map[string]any{"k": "v"},
		Mentions: []User{{UID: "a", Name: "A"}},
		ActionBy: &User{UID: "admin"},
	}
	cp := orig.Clone()
	cp.Metadata["k"] = "changed"
	cp.Mentions[0].Name = "B"
	cp.ActionBy.UID = "other"

	if orig.Metadata["k"] != "v" {
		t.Fatal("metadata shared between clone and original")
	}
	if orig.Mentions[0].Name != "A" {
		t.Fatal("mentions shared between clone and original")
	}
	if orig.ActionBy.UID != "admin" {
		t.Fatal("action user shared between clone and original")
	}
}

func TestConversationRecordCloneIsDeep(t *testing.T) {
	msg := Message{ID: "m1", Text: "hi"}
	orig := ConversationRecord{
		ID:          "c1",
		Kind:        ConversationDirect,
		User:        &User{UID: "a", Name: "A"},
		LastMessage: &msg,
		UnreadCount: 1,
	}
	cp := orig.Clone()
	cp.User.Name = "Changed"
	cp.LastMessage.Text = "bye"
	cp.UnreadCount = 9

	if orig.User.Name != "A" || orig.LastMessage.Text != "hi" || orig.UnreadCount != 1 {
		t.Fatalf("clone mutated original: %+v", orig)
	}
}

func TestWantsUnreadIncrement(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]any
		want bool
	}{
		{"flag true", map[string]any{MetaKeyIncrementUnread: true}, true},
		{"flag false", map[string]any{MetaKeyIncrementUnread: false}, false},
		{"wrong type", map[string]any{MetaKeyIncrementUnread: "yes"}, false},
		{"absent", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{Metadata: tt.meta}
			if got := m.WantsUnreadIncrement(); got != tt.want {
				t.Errorf("WantsUnreadIncrement = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlocked(t *testing.T) {
	if (User{}).Blocked() {
		t.Fatal("unblocked user reported blocked")
	}
	if !(User{BlockedByMe: true}).Blocked() || !(User{HasBlockedMe: true}).Blocked() {
		t.Fatal("blocked relationship not reported")
	}
}
