package convo

import "github.com/parleychat/parley/internal/types"

// ShouldUpdate decides whether a message or action event may refresh a
// conversation's last message and unread count. Evaluated once per incoming
// event, before any store mutation; rejection is a silent no-op.
func ShouldUpdate(msg types.Message, s types.UpdateSettings) bool {
	// Group action activity is governed by its toggle alone; the reply gate
	// does not apply to it.
	if msg.Category == types.CategoryAction {
		return s.GroupActions
	}
	if msg.IsReply() && !s.Replies {
		return false
	}
	switch msg.Category {
	case types.CategoryCustom:
		if !s.CustomMessages && !msg.UpdatesConversation && !msg.WantsUnreadIncrement() {
			return false
		}
	case types.CategoryCall:
		if !s.CallActivities {
			return false
		}
	}
	return true
}
