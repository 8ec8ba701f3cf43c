package convo

import (
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// handleMessage applies message lifecycle events. Every kind goes through
// the update policy first. Received messages bump unread counts for non-self
// senders and move the conversation to the front. Edits and deletions only
// refresh the displayed last message in place when they target it.
func (r *Reconciler) handleMessage(ev gateway.MessageEvent) {
	if !ShouldUpdate(ev.Message, r.settings()) {
		return
	}
	switch ev.Kind {
	case gateway.MessageReceived:
		r.applyReceived(ev.Message)
	case gateway.MessageEdited, gateway.MessageDeleted:
		r.applyReplaced(ev.Message)
	}
}

func (r *Reconciler) applyReceived(msg types.Message) {
	if rec, ok := r.lookupMessage(msg); ok {
		r.bumpConversation(rec, msg)
		return
	}
	r.derive(msg, func(rec types.ConversationRecord) {
		// Re-check after the async gap: a racing event may have inserted the
		// record (under either id ordering) while derivation was in flight.
		if cur, ok := r.lookupMessage(msg); ok {
			r.bumpConversation(cur, msg)
			return
		}
		m := msg.Clone()
		rec.LastMessage = &m
		rec.UnreadCount = 0
		if msg.Sender.UID != r.self.UID {
			rec.UnreadCount = 1
		}
		r.store.Add(rec, 0)
		r.ackIncoming(msg)
		r.changed()
	})
}

// bumpConversation sets the last message, bumps the unread count for non-self
// senders, and relocates the record to the front.
func (r *Reconciler) bumpConversation(rec types.ConversationRecord, msg types.Message) {
	// Re-fetch right before the write; rec may predate an async gap.
	if cur, ok := r.store.Get(rec.ID); ok {
		rec = cur
	}
	cp := rec.Clone()
	m := msg.Clone()
	cp.LastMessage = &m
	if msg.Sender.UID != r.self.UID {
		cp.UnreadCount++
	}
	r.store.UpdateFront(cp)
	r.ackIncoming(msg)
	r.changed()
}

// applyReplaced swaps the last message for its edited or deleted form. No
// unread change, no reorder.
func (r *Reconciler) applyReplaced(msg types.Message) {
	rec, ok := r.lookupMessage(msg)
	if !ok || rec.LastMessage == nil || rec.LastMessage.ID != msg.ID {
		return
	}
	cp := rec.Clone()
	m := msg.Clone()
	cp.LastMessage = &m
	r.store.Update(cp)
	r.changed()
}

// ackIncoming marks freshly received messages delivered and triggers the
// notification hook. Only for other senders' messages that are neither
// already delivered nor soft-deleted.
func (r *Reconciler) ackIncoming(msg types.Message) {
	if msg.Sender.UID == r.self.UID || msg.DeliveredAt != 0 || msg.IsDeleted() {
		return
	}
	r.client.MarkDelivered(msg)
	if r.onIncoming != nil {
		r.onIncoming(msg)
	}
}
