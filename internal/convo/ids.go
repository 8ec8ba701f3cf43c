package convo

import "github.com/parleychat/parley/internal/types"

// Conversation ids follow the gateway convention: direct conversations join
// the two uids with "_user_", groups prefix the guid with "group_". The
// gateway does not guarantee which participant comes first in ids it mints,
// so lookups must try both orderings (see Reconciler.lookupDirect).

// DirectID builds a direct-conversation id with the participants in the given
// order.
func DirectID(a, b string) string {
	return a + "_user_" + b
}

// DirectIDOrderings returns both candidate ids for a direct conversation
// between self and other.
func DirectIDOrderings(self, other string) [2]string {
	return [2]string{DirectID(self, other), DirectID(other, self)}
}

// GroupID builds a group-conversation id.
func GroupID(guid string) string {
	return "group_" + guid
}

// MessageConversationID derives the id of the conversation a message belongs
// to, from the perspective of self.
func MessageConversationID(msg types.Message, self string) string {
	if msg.ReceiverType == types.ReceiverGroup {
		return GroupID(msg.ReceiverID)
	}
	if msg.Sender.UID == self {
		return DirectID(self, msg.ReceiverID)
	}
	return DirectID(msg.Sender.UID, self)
}

// messagePeer returns the uid of the opposing user for a direct message.
func messagePeer(msg types.Message, self string) string {
	if msg.Sender.UID == self {
		return msg.ReceiverID
	}
	return msg.Sender.UID
}
