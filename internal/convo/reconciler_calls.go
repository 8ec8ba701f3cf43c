package convo

import (
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// handleCall applies call lifecycle activity. The push feed and local call
// actions can both report the same call, so events are deduped by session id:
// the first event for a session sets the last message and bumps the unread
// count, later ones only refresh the call snapshot. Calls never reorder the
// list.
func (r *Reconciler) handleCall(ev gateway.CallEvent) {
	call := ev.Call
	if !ShouldUpdate(call, r.settings()) {
		return
	}

	if _, seen := r.seenCalls[call.SessionID]; seen {
		if rec, ok := r.lookupMessage(call); ok {
			cp := rec.Clone()
			m := call.Clone()
			cp.LastMessage = &m
			r.store.Update(cp)
			r.changed()
		}
		return
	}
	r.seenCalls[call.SessionID] = struct{}{}

	if rec, ok := r.lookupMessage(call); ok {
		cp := rec.Clone()
		m := call.Clone()
		cp.LastMessage = &m
		if call.Sender.UID != r.self.UID {
			cp.UnreadCount++
		}
		r.store.Update(cp)
		r.changed()
		return
	}

	r.derive(call, func(rec types.ConversationRecord) {
		if cur, ok := r.lookupMessage(call); ok {
			cp := cur.Clone()
			m := call.Clone()
			cp.LastMessage = &m
			if call.Sender.UID != r.self.UID {
				cp.UnreadCount++
			}
			r.store.Update(cp)
			r.changed()
			return
		}
		m := call.Clone()
		rec.LastMessage = &m
		rec.UnreadCount = 0
		if call.Sender.UID != r.self.UID {
			rec.UnreadCount = 1
		}
		r.store.Add(rec, 0)
		r.changed()
	})
}
