package gateway

import (
	"encoding/json"
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		frame frame
		check func(t *testing.T, ev Event)
	}{
		{
			"presence",
			frame{Type: framePresence, Data: json.RawMessage(`{"user":{"uid":"alice"},"online":true}`)},
			func(t *testing.T, ev Event) {
				p, ok := ev.(PresenceEvent)
				if !ok || p.User.UID != "alice" || !p.Online {
					t.Fatalf("decoded %#v", ev)
				}
			},
		},
		{
			"typing",
			frame{Type: frameTyping, Data: json.RawMessage(`{"sender":{"uid":"alice"},"receiver_id":"me","receiver_type":"user","started":true}`)},
			func(t *testing.T, ev Event) {
				ty, ok := ev.(TypingEvent)
				if !ok || ty.Sender.UID != "alice" || !ty.Started {
					t.Fatalf("decoded %#v", ev)
				}
			},
		},
		{
			"message",
			frame{Type: frameMessage, Data: json.RawMessage(`{"kind":"received","message":{"id":"m1","category":"message","type":"text","sender":{"uid":"alice"},"receiver_id":"me","receiver_type":"user","text":"hi","sent_at":100}}`)},
			func(t *testing.T, ev Event) {
				m, ok := ev.(MessageEvent)
				if !ok || m.Kind != MessageReceived || m.Message.Text != "hi" {
					t.Fatalf("decoded %#v", ev)
				}
			},
		},
		{
			"receipt",
			frame{Type: frameReceipt, Data: json.RawMessage(`{"kind":"read","message_id":"m1","sender":{"uid":"alice"},"receiver_id":"me","receiver_type":"user","timestamp":42}`)},
			func(t *testing.T, ev Event) {
				r, ok := ev.(ReceiptEvent)
				if !ok || r.Kind != ReceiptRead || r.Timestamp != 42 {
					t.Fatalf("decoded %#v", ev)
				}
			},
		},
		{
			"call defaults to push source",
			frame{Type: frameCall, Data: json.RawMessage(`{"call":{"id":"c1","category":"call","session_id":"s1"}}`)},
			func(t *testing.T, ev Event) {
				c, ok := ev.(CallEvent)
				if !ok || c.Source != CallSourcePush || c.Call.SessionID != "s1" {
					t.Fatalf("decoded %#v", ev)
				}
			},
		},
		{
			"block",
			frame{Type: frameBlock, Data: json.RawMessage(`{"user":{"uid":"alice"},"blocked":true}`)},
			func(t *testing.T, ev Event) {
				b, ok := ev.(BlockEvent)
				if !ok || !b.Blocked {
					t.Fatalf("decoded %#v", ev)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := decodeEvent(tt.frame)
			if err != nil {
				t.Fatalf("decodeEvent: %v", err)
			}
			tt.check(t, ev)
		})
	}
}

func TestDecodeEventUnknownTypeIgnored(t *testing.T) {
	ev, err := decodeEvent(frame{Type: "something.new", Data: json.RawMessage(`{}`)})
	if err != nil || ev != nil {
		t.Fatalf("decodeEvent = %#v, %v; want nil, nil", ev, err)
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	if _, err := decodeEvent(frame{Type: framePresence, Data: json.RawMessage(`{"online":`)}); err == nil {
		t.Fatal("expected decode error")
	}
}
