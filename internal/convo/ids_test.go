package convo

import (
	"testing"

	"github.com/parleychat/parley/internal/types"
)

func TestDirectIDOrderings(t *testing.T) {
	ids := DirectIDOrderings("me", "alice")
	if ids[0] != "me_user_alice" || ids[1] != "alice_user_me" {
		t.Fatalf("orderings = %v", ids)
	}
}

func TestMessageConversationID(t *testing.T) {
	tests := []struct {
		name string
		msg  types.Message
		want string
	}{
		{
			"incoming direct",
			types.Message{Sender: types.User{UID: "alice"}, ReceiverID: "me", ReceiverType: types.ReceiverUser},
			"alice_user_me",
		},
		{
			"outgoing direct",
			types.Message{Sender: types.User{UID: "me"}, ReceiverID: "alice", ReceiverType: types.ReceiverUser},
			"me_user_alice",
		},
		{
			"group",
			types.Message{Sender: types.User{UID: "alice"}, ReceiverID: "g1", ReceiverType: types.ReceiverGroup},
			"group_g1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageConversationID(tt.msg, "me"); got != tt.want {
				t.Errorf("MessageConversationID = %q, want %q", got, tt.want)
			}
		})
	}
}
