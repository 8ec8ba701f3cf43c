package types

// UserStatus represents a user's presence state.
type UserStatus string

const (
	UserStatusOnline  UserStatus = "online"
	UserStatusOffline UserStatus = "offline"
)

// User is a snapshot of a chat user as reported by the gateway.
type User struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Avatar       string     `json:"avatar,omitempty"`
	Status       UserStatus `json:"status,omitempty"`
	Role         string     `json:"role,omitempty"`
	BlockedByMe  bool       `json:"blocked_by_me,omitempty"`
	HasBlockedMe bool       `json:"has_blocked_me,omitempty"`
}

// Blocked reports whether either side of the relationship has blocked the other.
func (u User) Blocked() bool {
	return u.BlockedByMe || u.HasBlockedMe
}

// GroupType represents group visibility.
type GroupType string

const (
	GroupTypePublic   GroupType = "public"
	GroupTypePassword GroupType = "password"
	GroupTypePrivate  GroupType = "private"
)

// GroupScope represents the logged-in user's role within a group.
type GroupScope string

const (
	GroupScopeAdmin       GroupScope = "admin"
	GroupScopeModerator   GroupScope = "moderator"
	GroupScopeParticipant GroupScope = "participant"
)

// Group is a snapshot of a group as reported by the gateway.
type Group struct {
	GUID         string     `json:"guid"`
	Name         string     `json:"name"`
	Avatar       string     `json:"avatar,omitempty"`
	Type         GroupType  `json:"type"`
	Scope        GroupScope `json:"scope,omitempty"`
	Owner        string     `json:"owner,omitempty"`
	MembersCount int        `json:"members_count,omitempty"`
}

// MessageCategory is the top-level message discriminator.
type MessageCategory string

const (
	CategoryMessage MessageCategory = "message"
	CategoryCustom  MessageCategory = "custom"
	CategoryAction  MessageCategory = "action"
	CategoryCall    MessageCategory = "call"
)

// MessageType refines the category (text vs media kinds, action kinds).
type MessageType string

const (
	TypeText   MessageType = "text"
	TypeImage  MessageType = "image"
	TypeVideo  MessageType = "video"
	TypeAudio  MessageType = "audio"
	TypeFile   MessageType = "file"
	TypeCustom MessageType = "custom"
)

// ReceiverType distinguishes direct and group destinations.
type ReceiverType string

const (
	ReceiverUser  ReceiverType = "user"
	ReceiverGroup ReceiverType = "group"
)

// GroupAction identifies a group membership action.
type GroupAction string

const (
	ActionJoined       GroupAction = "joined"
	ActionLeft         GroupAction = "left"
	ActionKicked       GroupAction = "kicked"
	ActionBanned       GroupAction = "banned"
	ActionUnbanned     GroupAction = "unbanned"
	ActionScopeChanged GroupAction = "scopeChanged"
	ActionMemberAdded  GroupAction = "memberAdded"
)

// CallStatus is a call lifecycle state.
type CallStatus string

const (
	CallInitiated CallStatus = "initiated"
	CallOngoing   CallStatus = "ongoing"
	CallAccepted  CallStatus = "accepted"
	CallRejected  CallStatus = "rejected"
	CallCancelled CallStatus = "cancelled"
	CallEnded     CallStatus = "ended"
	CallUnanswered CallStatus = "unanswered"
)

// MetaKeyIncrementUnread marks a custom message that wants to bump the unread
// counter even when custom messages are otherwise excluded from list updates.
const MetaKeyIncrementUnread = "incrementUnreadCount"

// Message is the polymorphic payload attached to conversations. Exactly one
// category is set; action and call fields are only meaningful for their
// categories.
type Message struct {
	ID           string          `json:"id"`
	Category     MessageCategory `json:"category"`
	Type         MessageType     `json:"type"`
	Sender       User            `json:"sender"`
	ReceiverID   string          `json:"receiver_id"`
	ReceiverType ReceiverType    `json:"receiver_type"`
	Text         string          `json:"text,omitempty"`
	ParentID     string          `json:"parent_id,omitempty"`
	Metadata     map[string]any  `json:"metadata,omitempty"`
	Mentions     []User          `json:"mentions,omitempty"`

	// Custom messages may opt into conversation updates individually.
	UpdatesConversation bool `json:"updates_conversation,omitempty"`

	SentAt      int64 `json:"sent_at"`
	DeliveredAt int64 `json:"delivered_at,omitempty"`
	ReadAt      int64 `json:"read_at,omitempty"`
	EditedAt    int64 `json:"edited_at,omitempty"`
	DeletedAt   int64 `json:"deleted_at,omitempty"`

	// Action fields (Category == CategoryAction).
	Action   GroupAction `json:"action,omitempty"`
	ActionBy *User       `json:"action_by,omitempty"`
	ActionOn *User       `json:"action_on,omitempty"`
	NewScope GroupScope  `json:"new_scope,omitempty"`

	// Call fields (Category == CategoryCall).
	SessionID  string     `json:"session_id,omitempty"`
	CallStatus CallStatus `json:"call_status,omitempty"`
}

// IsReply reports whether the message belongs to a thread.
func (m Message) IsReply() bool {
	return m.ParentID != ""
}

// IsDeleted reports whether the message was soft-deleted.
func (m Message) IsDeleted() bool {
	return m.DeletedAt != 0
}

// WantsUnreadIncrement reports the metadata opt-in for custom messages.
func (m Message) WantsUnreadIncrement() bool {
	v, ok := m.Metadata[MetaKeyIncrementUnread]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	cp := m
	if m.Metadata != nil {
		cp.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			cp.Metadata[k] = v
		}
	}
	if m.Mentions != nil {
		cp.Mentions = append([]User(nil), m.Mentions...)
	}
	if m.ActionBy != nil {
		by := *m.ActionBy
		cp.ActionBy = &by
	}
	if m.ActionOn != nil {
		on := *m.ActionOn
		cp.ActionOn = &on
	}
	return cp
}

// ConversationKind distinguishes direct and group conversations.
type ConversationKind string

const (
	ConversationDirect ConversationKind = "user"
	ConversationGroup  ConversationKind = "group"
)

// ConversationRecord is one row of the conversation list. Records are treated
// as values: handlers clone, override fields, and hand the copy back to the
// store rather than mutating a shared reference.
type ConversationRecord struct {
	ID          string           `json:"id"`
	Kind        ConversationKind `json:"kind"`
	User        *User            `json:"user,omitempty"`
	Group       *Group           `json:"group,omitempty"`
	LastMessage *Message         `json:"last_message,omitempty"`
	UnreadCount int              `json:"unread_count"`

	// TypingBy is an ephemeral local annotation (uid of the typing party);
	// it is never part of gateway payloads.
	TypingBy string `json:"-"`
}

// Name returns the opposing party's display name.
func (c ConversationRecord) Name() string {
	switch {
	case c.User != nil:
		return c.User.Name
	case c.Group != nil:
		return c.Group.Name
	}
	return ""
}

// WithID returns the opposing party's identifier (uid or guid).
func (c ConversationRecord) WithID() string {
	switch {
	case c.User != nil:
		return c.User.UID
	case c.Group != nil:
		return c.Group.GUID
	}
	return ""
}

// Clone returns a deep copy of the record.
func (c ConversationRecord) Clone() ConversationRecord {
	cp := c
	if c.User != nil {
		u := *c.User
		cp.User = &u
	}
	if c.Group != nil {
		g := *c.Group
		cp.Group = &g
	}
	if c.LastMessage != nil {
		m := c.LastMessage.Clone()
		cp.LastMessage = &m
	}
	return cp
}

// UpdateSettings are the global toggles controlling which event categories may
// refresh a conversation's last message and unread count.
type UpdateSettings struct {
	Replies        bool `json:"replies"`
	CustomMessages bool `json:"custom_messages"`
	GroupActions   bool `json:"group_actions"`
	CallActivities bool `json:"call_activities"`
}
