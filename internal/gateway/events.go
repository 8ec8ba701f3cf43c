package gateway

import "github.com/parleychat/parley/internal/types"

// Event is the tagged union delivered on the gateway event feed. The six
// logical channels (presence, typing, message lifecycle, group lifecycle,
// call lifecycle, block lifecycle) collapse into one stream; consumers switch
// on the concrete type. Receipts travel on the message channel but carry
// their own payload shape.
type Event interface {
	event()
}

// PresenceEvent reports a user going online or offline.
type PresenceEvent struct {
	User   types.User `json:"user"`
	Online bool       `json:"online"`
}

// TypingEvent reports a typing indicator starting or ending. Typing events
// carry no conversation id; receivers resolve them by sender/receiver match.
type TypingEvent struct {
	Sender       types.User         `json:"sender"`
	ReceiverID   string             `json:"receiver_id"`
	ReceiverType types.ReceiverType `json:"receiver_type"`
	Started      bool               `json:"started"`
}

// MessageEventKind discriminates message lifecycle events.
type MessageEventKind string

const (
	MessageReceived MessageEventKind = "received"
	MessageEdited   MessageEventKind = "edited"
	MessageDeleted  MessageEventKind = "deleted"
)

// MessageEvent reports a message being received, edited, or soft-deleted.
type MessageEvent struct {
	Kind    MessageEventKind `json:"kind"`
	Message types.Message    `json:"message"`
}

// ReceiptKind discriminates delivery and read acknowledgements.
type ReceiptKind string

const (
	ReceiptDelivered ReceiptKind = "delivered"
	ReceiptRead      ReceiptKind = "read"
)

// ReceiptEvent acknowledges a specific message. AllMembers marks a group-wide
// aggregate receipt.
type ReceiptEvent struct {
	Kind         ReceiptKind        `json:"kind"`
	MessageID    string             `json:"message_id"`
	Sender       types.User         `json:"sender"`
	ReceiverID   string             `json:"receiver_id"`
	ReceiverType types.ReceiverType `json:"receiver_type"`
	Timestamp    int64              `json:"timestamp"`
	AllMembers   bool               `json:"all_members"`
}

// GroupEvent reports a membership action. Message is the action message the
// gateway generated for it; Group is the post-action group snapshot.
type GroupEvent struct {
	Action  types.GroupAction `json:"action"`
	Message types.Message     `json:"message"`
	Group   types.Group       `json:"group"`
	Actor   types.User        `json:"actor"`
	Subject types.User        `json:"subject"`
}

// CallSource distinguishes the push feed from locally generated call events.
type CallSource string

const (
	CallSourcePush  CallSource = "push"
	CallSourceLocal CallSource = "local"
)

// CallEvent reports call lifecycle activity. Call is a CategoryCall message.
type CallEvent struct {
	Call   types.Message `json:"call"`
	Source CallSource    `json:"source,omitempty"`
}

// BlockEvent reports self blocking or unblocking a user.
type BlockEvent struct {
	User    types.User `json:"user"`
	Blocked bool       `json:"blocked"`
}

func (PresenceEvent) event() {}
func (TypingEvent) event()   {}
func (MessageEvent) event()  {}
func (ReceiptEvent) event()  {}
func (GroupEvent) event()    {}
func (CallEvent) event()     {}
func (BlockEvent) event()    {}
