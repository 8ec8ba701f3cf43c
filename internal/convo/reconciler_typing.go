package convo

import (
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// handleTyping sets or clears the ephemeral typing annotation. Typing events
// carry no conversation id, so resolution is a linear scan over the store.
// Typing never reorders the list and never touches unread counts.
func (r *Reconciler) handleTyping(ev gateway.TypingEvent) {
	for _, rec := range r.store.All() {
		if !typingTargets(rec, ev, r.self.UID) {
			continue
		}
		if rec.User != nil && rec.User.Blocked() {
			return
		}
		cp := rec.Clone()
		if ev.Started {
			cp.TypingBy = ev.Sender.UID
		} else if cp.TypingBy == ev.Sender.UID {
			cp.TypingBy = ""
		} else {
			return
		}
		r.store.Update(cp)
		r.changed()
		return
	}
}

// typingTargets reports whether the typing event belongs to the record: a
// direct conversation with the sender, or the group the sender is typing in.
func typingTargets(rec types.ConversationRecord, ev gateway.TypingEvent, self string) bool {
	switch ev.ReceiverType {
	case types.ReceiverUser:
		return rec.Kind == types.ConversationDirect &&
			rec.User != nil && rec.User.UID == ev.Sender.UID && ev.ReceiverID == self
	case types.ReceiverGroup:
		return rec.Kind == types.ConversationGroup &&
			rec.Group != nil && rec.Group.GUID == ev.ReceiverID
	}
	return false
}
