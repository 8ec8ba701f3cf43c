package convo

import (
	"time"

	"github.com/parleychat/parley/internal/types"
)

// TimestampFunc formats a last-message timestamp.
type TimestampFunc func(time.Time) string

// DefaultTimestamp is the long-form pattern used when no custom pattern is
// supplied.
func DefaultTimestamp(t time.Time) string {
	return t.Format("Jan 2, 2006, 3:04 PM")
}

// Trailing derives the trailing view: formatted last-message timestamp plus
// the unread badge count. Both are empty when there is no last message.
func Trailing(rec types.ConversationRecord, pattern TimestampFunc) (string, int) {
	lm := rec.LastMessage
	if lm == nil {
		return "", 0
	}
	if pattern == nil {
		pattern = DefaultTimestamp
	}
	return pattern(time.Unix(lm.SentAt, 0)), rec.UnreadCount
}
