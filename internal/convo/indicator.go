package convo

import "github.com/parleychat/parley/internal/types"

// Indicator is the status marker shown next to a conversation title.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorOnline
	IndicatorOffline
	IndicatorPassword
	IndicatorPrivate
)

// StatusIndicator derives the status marker for a record. Groups show their
// access type, users show presence (suppressed for blocked relationships).
// Entirely suppressed when show is false.
func StatusIndicator(rec types.ConversationRecord, show bool) Indicator {
	if !show {
		return IndicatorNone
	}
	if rec.Group != nil {
		switch rec.Group.Type {
		case types.GroupTypePassword:
			return IndicatorPassword
		case types.GroupTypePrivate:
			return IndicatorPrivate
		}
		return IndicatorNone
	}
	if rec.User != nil {
		if rec.User.Status == types.UserStatusOnline && !rec.User.Blocked() {
			return IndicatorOnline
		}
		return IndicatorOffline
	}
	return IndicatorNone
}

// ReceiptState is the acknowledgement glyph for a self-sent last message.
type ReceiptState int

const (
	ReceiptNone ReceiptState = iota
	ReceiptSent
	ReceiptDelivered
	ReceiptRead
	ReceiptError
)

// Receipt derives the read-receipt glyph. Shown only for self-sent,
// non-deleted, non-call, non-action last messages, and only when show is
// true. A self-sent message with no timestamps at all maps to the error
// state (sent but never acknowledged by the gateway).
func Receipt(rec types.ConversationRecord, self types.User, show bool) ReceiptState {
	lm := rec.LastMessage
	if !show || lm == nil {
		return ReceiptNone
	}
	if lm.Sender.UID != self.UID || lm.IsDeleted() {
		return ReceiptNone
	}
	if lm.Category == types.CategoryCall || lm.Category == types.CategoryAction {
		return ReceiptNone
	}
	switch {
	case lm.ReadAt != 0:
		return ReceiptRead
	case lm.DeliveredAt != 0:
		return ReceiptDelivered
	case lm.SentAt != 0:
		return ReceiptSent
	}
	return ReceiptError
}
