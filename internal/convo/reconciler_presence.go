package convo

import (
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// handlePresence replaces the opposing-user snapshot when a presence change
// arrives. Presence is suppressed for blocked relationships.
func (r *Reconciler) handlePresence(ev gateway.PresenceEvent) {
	rec, ok := r.lookupDirect(ev.User.UID)
	if !ok || rec.User == nil {
		return
	}
	if rec.User.Blocked() {
		return
	}
	cp := rec.Clone()
	u := ev.User
	if ev.Online {
		u.Status = types.UserStatusOnline
	} else {
		u.Status = types.UserStatusOffline
	}
	cp.User = &u
	r.store.Update(cp)
	r.changed()
}
