package convo

import (
	"github.com/parleychat/parley/internal/gateway"
)

// handleBlock applies block/unblock events. Blocking removes the
// conversation unless the active query includes blocked users, in which case
// the user snapshot is refreshed in place. Unblocking always refreshes the
// snapshot, re-enabling presence tracking.
func (r *Reconciler) handleBlock(ev gateway.BlockEvent) {
	rec, ok := r.lookupDirect(ev.User.UID)
	if !ok {
		return
	}
	if ev.Blocked && !r.includeBlocked {
		r.removeConversation(rec.ID)
		r.changed()
		return
	}
	cp := rec.Clone()
	u := ev.User
	u.BlockedByMe = ev.Blocked
	cp.User = &u
	r.store.Update(cp)
	r.changed()
}
