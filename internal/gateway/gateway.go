// Package gateway defines the surface the chat backend presents to the
// client: one event feed plus a small command set. The reconciler treats it
// as an opaque event source and command sink.
package gateway

import (
	"context"

	"github.com/parleychat/parley/internal/types"
)

// FetchRequest describes a conversation page request.
type FetchRequest struct {
	Limit          int
	IncludeBlocked bool
}

// Client is the gateway connection. Events delivers the merged event feed;
// the channel closes when the connection is lost or Close is called.
type Client interface {
	// Events returns the event feed. The same channel is returned on every
	// call.
	Events() <-chan Event

	// Me returns the logged-in user.
	Me() types.User

	// Settings returns the global update-settings toggles.
	Settings() types.UpdateSettings

	// FetchConversations loads a page of conversation records.
	FetchConversations(ctx context.Context, req FetchRequest) ([]types.ConversationRecord, error)

	// ConversationFromMessage synthesizes the conversation record a message
	// belongs to.
	ConversationFromMessage(ctx context.Context, msg types.Message) (types.ConversationRecord, error)

	// DeleteConversation deletes the conversation with the given opposing
	// party.
	DeleteConversation(ctx context.Context, withID string, kind types.ConversationKind) error

	// MarkDelivered acknowledges delivery of a message. Fire and forget.
	MarkDelivered(msg types.Message)

	// Close tears down the connection and closes the event feed.
	Close() error
}
