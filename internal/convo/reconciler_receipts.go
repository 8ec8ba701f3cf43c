package convo

import (
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// handleReceipt stamps delivery/read timestamps onto the last message when
// the receipt targets it. Receipts never bump recency; unknown message ids
// are silently ignored.
func (r *Reconciler) handleReceipt(ev gateway.ReceiptEvent) {
	var rec types.ConversationRecord
	var ok bool
	if ev.ReceiverType == types.ReceiverGroup && ev.AllMembers {
		rec, ok = r.store.Get(GroupID(ev.ReceiverID))
		// Group aggregate receipts only matter for messages self sent.
		if ok && (rec.LastMessage == nil || rec.LastMessage.Sender.UID != r.self.UID) {
			return
		}
	} else {
		rec, ok = r.lookupDirect(ev.Sender.UID)
	}
	if !ok || rec.LastMessage == nil || rec.LastMessage.ID != ev.MessageID {
		return
	}
	cp := rec.Clone()
	m := cp.LastMessage.Clone()
	switch ev.Kind {
	case gateway.ReceiptDelivered:
		m.DeliveredAt = ev.Timestamp
	case gateway.ReceiptRead:
		m.ReadAt = ev.Timestamp
	}
	cp.LastMessage = &m
	r.store.Update(cp)
	r.changed()
}
