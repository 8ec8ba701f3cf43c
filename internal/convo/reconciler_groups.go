package convo

import (
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// handleGroup applies membership actions. Member-added events are debounced
// to coalesce bursty additions; everything else applies immediately.
func (r *Reconciler) handleGroup(ev gateway.GroupEvent) {
	if ev.Action == types.ActionMemberAdded {
		r.memberAdd.Trigger(func() {
			r.post(func() { r.applyGroup(ev) })
		})
		return
	}
	r.applyGroup(ev)
}

func (r *Reconciler) applyGroup(ev gateway.GroupEvent) {
	id := GroupID(ev.Group.GUID)

	// Self being kicked, banned, or leaving removes the conversation
	// unconditionally; the update-settings toggle does not apply.
	if ev.Subject.UID == r.self.UID && selfRemovingAction(ev.Action) {
		r.removeConversation(id)
		r.changed()
		return
	}

	if !ShouldUpdate(ev.Message, r.settings()) {
		return
	}

	if rec, ok := r.store.Get(id); ok {
		r.applyGroupTo(rec, ev)
		return
	}

	// Absent: derive and re-check once after the async gap. If the record
	// appeared in the interim, update it in place instead of inserting.
	r.derive(ev.Message, func(rec types.ConversationRecord) {
		if cur, ok := r.store.Get(id); ok {
			r.applyGroupTo(cur, ev)
			return
		}
		m := ev.Message.Clone()
		rec.LastMessage = &m
		g := ev.Group
		rec.Group = &g
		r.store.Add(rec, 0)
		r.changed()
	})
}

// applyGroupTo refreshes the last message and group snapshot in place. Group
// actions never reorder the list.
func (r *Reconciler) applyGroupTo(rec types.ConversationRecord, ev gateway.GroupEvent) {
	cp := rec.Clone()
	m := ev.Message.Clone()
	cp.LastMessage = &m
	g := ev.Group
	cp.Group = &g
	r.store.Update(cp)
	r.changed()
}

func selfRemovingAction(a types.GroupAction) bool {
	return a == types.ActionKicked || a == types.ActionBanned || a == types.ActionLeft
}
