package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/parleychat/parley/internal/types"
)

// Frame types on the wire. Events arrive unsolicited; commands are
// request/response pairs correlated by frame id.
const (
	frameAuth     = "auth"
	frameHello    = "hello"
	framePresence = "presence"
	frameTyping   = "typing"
	frameMessage  = "message"
	frameReceipt  = "receipt"
	frameGroup    = "group"
	frameCall     = "call"
	frameBlock    = "block"

	frameConvList    = "conversation.list"
	frameConvFromMsg = "conversation.fromMessage"
	frameConvDelete  = "conversation.delete"
	frameDelivered   = "message.markDelivered"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	requestWait  = 15 * time.Second
)

type frame struct {
	Type  string          `json:"type"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

type helloData struct {
	Me       types.User           `json:"me"`
	Settings types.UpdateSettings `json:"settings"`
}

// WSClient is the websocket implementation of Client.
type WSClient struct {
	conn   *websocket.Conn
	events chan Event

	me       types.User
	settings types.UpdateSettings

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan frame

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the gateway, authenticates with the token, and starts the
// read and ping loops.
func Dial(ctx context.Context, url, token string) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial gateway: %w", err)
	}

	c := &WSClient{
		conn:    conn,
		events:  make(chan Event, 64),
		pending: make(map[string]chan frame),
		done:    make(chan struct{}),
	}

	authData, _ := json.Marshal(map[string]string{"token": token})
	if err := c.writeFrame(frame{Type: frameAuth, Data: authData}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("auth: %w", err)
	}

	var hello frame
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read hello: %w", err)
	}
	if hello.Type != frameHello {
		conn.Close()
		return nil, fmt.Errorf("unexpected frame %q before hello", hello.Type)
	}
	if hello.Error != "" {
		conn.Close()
		return nil, fmt.Errorf("auth rejected: %s", hello.Error)
	}
	var hd helloData
	if err := json.Unmarshal(hello.Data, &hd); err != nil {
		conn.Close()
		return nil, fmt.Errorf("decode hello: %w", err)
	}
	c.me = hd.Me
	c.settings = hd.Settings

	go c.readLoop()
	go c.pingLoop()
	return c, nil
}

// Events implements Client.
func (c *WSClient) Events() <-chan Event { return c.events }

// Me implements Client.
func (c *WSClient) Me() types.User { return c.me }

// Settings implements Client.
func (c *WSClient) Settings() types.UpdateSettings { return c.settings }

// FetchConversations implements Client.
func (c *WSClient) FetchConversations(ctx context.Context, req FetchRequest) ([]types.ConversationRecord, error) {
	payload, _ := json.Marshal(map[string]any{
		"limit":           req.Limit,
		"include_blocked": req.IncludeBlocked,
	})
	resp, err := c.request(ctx, frameConvList, payload)
	if err != nil {
		return nil, err
	}
	var recs []types.ConversationRecord
	if err := json.Unmarshal(resp.Data, &recs); err != nil {
		return nil, fmt.Errorf("decode conversation page: %w", err)
	}
	return recs, nil
}

// ConversationFromMessage implements Client.
func (c *WSClient) ConversationFromMessage(ctx context.Context, msg types.Message) (types.ConversationRecord, error) {
	payload, _ := json.Marshal(msg)
	resp, err := c.request(ctx, frameConvFromMsg, payload)
	if err != nil {
		return types.ConversationRecord{}, err
	}
	var rec types.ConversationRecord
	if err := json.Unmarshal(resp.Data, &rec); err != nil {
		return types.ConversationRecord{}, fmt.Errorf("decode conversation: %w", err)
	}
	return rec, nil
}

// DeleteConversation implements Client.
func (c *WSClient) DeleteConversation(ctx context.Context, withID string, kind types.ConversationKind) error {
	payload, _ := json.Marshal(map[string]string{"with": withID, "kind": string(kind)})
	_, err := c.request(ctx, frameConvDelete, payload)
	return err
}

// MarkDelivered implements Client. Fire and forget: failures are logged only.
func (c *WSClient) MarkDelivered(msg types.Message) {
	payload, _ := json.Marshal(map[string]string{"message_id": msg.ID})
	if err := c.writeFrame(frame{Type: frameDelivered, Data: payload}); err != nil {
		log.Debug().Err(err).Str("message", msg.ID).Msg("mark delivered failed")
	}
}

// Close implements Client.
func (c *WSClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *WSClient) writeFrame(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(f)
}

// request sends a correlated frame and waits for the matching response.
func (c *WSClient) request(ctx context.Context, typ string, data json.RawMessage) (frame, error) {
	id := uuid.NewString()
	ch := make(chan frame, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.writeFrame(frame{Type: typ, ID: id, Data: data}); err != nil {
		return frame{}, err
	}

	timer := time.NewTimer(requestWait)
	defer timer.Stop()
	select {
	case resp := <-ch:
		if resp.Error != "" {
			return frame{}, errors.New(resp.Error)
		}
		return resp, nil
	case <-ctx.Done():
		return frame{}, ctx.Err()
	case <-timer.C:
		return frame{}, fmt.Errorf("%s: request timed out", typ)
	case <-c.done:
		return frame{}, errors.New("connection closed")
	}
}

// readLoop decodes frames into events or pending responses until the
// connection drops, then closes the event feed.
func (c *WSClient) readLoop() {
	defer close(c.events)
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			select {
			case <-c.done:
			default:
				log.Warn().Err(err).Msg("gateway connection lost")
			}
			return
		}

		if f.ID != "" {
			c.mu.Lock()
			ch, ok := c.pending[f.ID]
			c.mu.Unlock()
			if ok {
				ch <- f
			}
			continue
		}

		ev, err := decodeEvent(f)
		if err != nil {
			log.Debug().Err(err).Str("frame", f.Type).Msg("dropping malformed event")
			continue
		}
		if ev == nil {
			continue
		}
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

func (c *WSClient) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func decodeEvent(f frame) (Event, error) {
	switch f.Type {
	case framePresence:
		var ev PresenceEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case frameTyping:
		var ev TypingEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case frameMessage:
		var ev MessageEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case frameReceipt:
		var ev ReceiptEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case frameGroup:
		var ev GroupEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case frameCall:
		var ev CallEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		if ev.Source == "" {
			ev.Source = CallSourcePush
		}
		return ev, nil
	case frameBlock:
		var ev BlockEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	}
	// Unknown frame types are ignored for forward compatibility.
	return nil, nil
}
