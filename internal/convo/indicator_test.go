package convo

import (
	"testing"

	"github.com/parleychat/parley/internal/types"
)

func TestStatusIndicator(t *testing.T) {
	tests := []struct {
		name string
		rec  types.ConversationRecord
		show bool
		want Indicator
	}{
		{
			"online user",
			types.ConversationRecord{User: &types.User{UID: "a", Status: types.UserStatusOnline}},
			true, IndicatorOnline,
		},
		{
			"offline user",
			types.ConversationRecord{User: &types.User{UID: "a", Status: types.UserStatusOffline}},
			true, IndicatorOffline,
		},
		{
			"online but blocked reads offline",
			types.ConversationRecord{User: &types.User{UID: "a", Status: types.UserStatusOnline, HasBlockedMe: true}},
			true, IndicatorOffline,
		},
		{
			"password group",
			types.ConversationRecord{Group: &types.Group{GUID: "g", Type: types.GroupTypePassword}},
			true, IndicatorPassword,
		},
		{
			"private group",
			types.ConversationRecord{Group: &types.Group{GUID: "g", Type: types.GroupTypePrivate}},
			true, IndicatorPrivate,
		},
		{
			"public group shows nothing",
			types.ConversationRecord{Group: &types.Group{GUID: "g", Type: types.GroupTypePublic}},
			true, IndicatorNone,
		},
		{
			"suppressed by toggle",
			types.ConversationRecord{User: &types.User{UID: "a", Status: types.UserStatusOnline}},
			false, IndicatorNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusIndicator(tt.rec, tt.show); got != tt.want {
				t.Errorf("StatusIndicator = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReceipt(t *testing.T) {
	selfUser := types.User{UID: "me"}
	mk := func(mut func(*types.Message)) types.ConversationRecord {
		msg := types.Message{
			ID: "m1", Category: types.CategoryMessage, Type: types.TypeText,
			Sender: selfUser, SentAt: 100,
		}
		mut(&msg)
		return types.ConversationRecord{LastMessage: &msg}
	}

	tests := []struct {
		name string
		rec  types.ConversationRecord
		show bool
		want ReceiptState
	}{
		{"read", mk(func(m *types.Message) { m.DeliveredAt = 110; m.ReadAt = 120 }), true, ReceiptRead},
		{"delivered", mk(func(m *types.Message) { m.DeliveredAt = 110 }), true, ReceiptDelivered},
		{"sent", mk(func(m *types.Message) {}), true, ReceiptSent},
		{"never acknowledged", mk(func(m *types.Message) { m.SentAt = 0 }), true, ReceiptError},
		{"other sender hidden", mk(func(m *types.Message) { m.Sender = types.User{UID: "alice"} }), true, ReceiptNone},
		{"deleted hidden", mk(func(m *types.Message) { m.DeletedAt = 50 }), true, ReceiptNone},
		{"call hidden", mk(func(m *types.Message) { m.Category = types.CategoryCall }), true, ReceiptNone},
		{"action hidden", mk(func(m *types.Message) { m.Category = types.CategoryAction }), true, ReceiptNone},
		{"toggle off", mk(func(m *types.Message) { m.ReadAt = 120 }), false, ReceiptNone},
		{"no last message", types.ConversationRecord{}, true, ReceiptNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Receipt(tt.rec, selfUser, tt.show); got != tt.want {
				t.Errorf("Receipt = %v, want %v", got, tt.want)
			}
		})
	}
}
