package convo

import (
	"testing"
	"time"

	"github.com/parleychat/parley/internal/types"
)

func TestTrailingEmptyWithoutLastMessage(t *testing.T) {
	rec := types.ConversationRecord{UnreadCount: 3}
	ts, badge := Trailing(rec, nil)
	if ts != "" || badge != 0 {
		t.Fatalf("Trailing = (%q, %d), want empty", ts, badge)
	}
}

func TestTrailingDefaultPattern(t *testing.T) {
	sent := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.Local)
	msg := types.Message{ID: "m1", SentAt: sent.Unix()}
	rec := types.ConversationRecord{LastMessage: &msg, UnreadCount: 2}

	ts, badge := Trailing(rec, nil)
	if ts != "Mar 5, 2024, 2:30 PM" {
		t.Fatalf("timestamp = %q", ts)
	}
	if badge != 2 {
		t.Fatalf("badge = %d, want 2", badge)
	}
}

func TestTrailingCustomPattern(t *testing.T) {
	msg := types.Message{ID: "m1", SentAt: 1000}
	rec := types.ConversationRecord{LastMessage: &msg}
	ts, _ := Trailing(rec, func(time.Time) string { return "now" })
	if ts != "now" {
		t.Fatalf("timestamp = %q, want custom pattern output", ts)
	}
}
