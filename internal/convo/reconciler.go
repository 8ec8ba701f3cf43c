// Package convo keeps an ordered in-memory conversation list consistent with
// the gateway's asynchronous event feeds. All store mutations happen on one
// goroutine; async conversation derivations overlap but post their
// completions back to that goroutine, which re-checks store state before
// applying them.
package convo

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// DefaultMemberAddDelay coalesces bursty member-added events.
const DefaultMemberAddDelay = 50 * time.Millisecond

// Options configure a Reconciler.
type Options struct {
	Client gateway.Client

	// IncludeBlocked mirrors the active fetch filter: when false, blocking a
	// user removes their conversation instead of updating it.
	IncludeBlocked bool

	// Settings overrides the gateway-reported update settings (locally
	// configured toggles win); nil falls back to the client.
	Settings *types.UpdateSettings

	// OnChange fires after every visible store mutation.
	OnChange func()

	// OnError receives derivation failures.
	OnError func(error)

	// OnIncoming fires for freshly received, not-yet-delivered, non-deleted
	// messages from other users (notification sound hook).
	OnIncoming func(types.Message)

	// OnDeleted fires after a locally requested delete succeeds, so other
	// mounted collaborators can react.
	OnDeleted func(conversationID string)

	// OnPress receives item presses while selection mode is none.
	OnPress func(types.ConversationRecord)

	// MemberAddDelay overrides DefaultMemberAddDelay (tests use a shorter
	// window).
	MemberAddDelay time.Duration
}

// Reconciler owns the conversation store and applies gateway events to it.
type Reconciler struct {
	client gateway.Client
	self   types.User

	store     *Store
	selection *Selection

	includeBlocked bool
	settings       func() types.UpdateSettings

	onChange   func()
	onError    func(error)
	onIncoming func(types.Message)
	onDeleted  func(string)
	onPress    func(types.ConversationRecord)

	memberAdd *Debounce
	seenCalls map[string]struct{}

	// completions carries closures posted by async work back onto the loop.
	completions chan func()
	stop        chan struct{}
	done        chan struct{}
	started     bool
}

// New creates a reconciler over the given gateway client.
func New(opts Options) *Reconciler {
	delay := opts.MemberAddDelay
	if delay <= 0 {
		delay = DefaultMemberAddDelay
	}
	settings := opts.Client.Settings
	if opts.Settings != nil {
		s := *opts.Settings
		settings = func() types.UpdateSettings { return s }
	}
	return &Reconciler{
		client:         opts.Client,
		self:           opts.Client.Me(),
		store:          NewStore(),
		selection:      NewSelection(),
		includeBlocked: opts.IncludeBlocked,
		settings:       settings,
		onChange:       opts.OnChange,
		onError:        opts.OnError,
		onIncoming:     opts.OnIncoming,
		onDeleted:      opts.OnDeleted,
		onPress:        opts.OnPress,
		memberAdd:      NewDebounce(delay),
		seenCalls:      make(map[string]struct{}),
		completions:    make(chan func(), 16),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Store exposes the conversation store for read-only snapshots.
func (r *Reconciler) Store() *Store {
	return r.store
}

// Selection exposes the selection state.
func (r *Reconciler) Selection() *Selection {
	return r.selection
}

// Load fetches the initial conversation page into the store.
func (r *Reconciler) Load(ctx context.Context, limit int) error {
	recs, err := r.client.FetchConversations(ctx, gateway.FetchRequest{
		Limit:          limit,
		IncludeBlocked: r.includeBlocked,
	})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, ok := r.store.Get(rec.ID); ok {
			continue
		}
		r.store.Add(rec, r.store.Len())
	}
	r.changed()
	return nil
}

// Start runs the event loop until the feed closes or Stop is called. Start
// and Stop belong to the goroutine that owns the reconciler.
func (r *Reconciler) Start() {
	r.started = true
	go r.run()
}

// Stop tears down the loop and cancels the pending debounce task. In-flight
// derivations finish but their completions are dropped. Safe to call without
// a prior Start.
func (r *Reconciler) Stop() {
	r.memberAdd.Stop()
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
	if !r.started {
		return
	}
	<-r.done
}

func (r *Reconciler) run() {
	defer close(r.done)
	events := r.client.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.dispatch(ev)
		case fn := <-r.completions:
			fn()
		case <-r.stop:
			return
		}
	}
}

func (r *Reconciler) dispatch(ev gateway.Event) {
	switch e := ev.(type) {
	case gateway.PresenceEvent:
		r.handlePresence(e)
	case gateway.TypingEvent:
		r.handleTyping(e)
	case gateway.MessageEvent:
		r.handleMessage(e)
	case gateway.ReceiptEvent:
		r.handleReceipt(e)
	case gateway.GroupEvent:
		r.handleGroup(e)
	case gateway.CallEvent:
		r.handleCall(e)
	case gateway.BlockEvent:
		r.handleBlock(e)
	}
}

// post schedules fn on the reconciler loop; dropped once stopped.
func (r *Reconciler) post(fn func()) {
	select {
	case r.completions <- fn:
	case <-r.stop:
	}
}

func (r *Reconciler) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}

func (r *Reconciler) fail(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}

// lookupDirect resolves a direct conversation by trying both id orderings;
// the gateway does not guarantee which side comes first.
func (r *Reconciler) lookupDirect(otherUID string) (types.ConversationRecord, bool) {
	for _, id := range DirectIDOrderings(r.self.UID, otherUID) {
		if rec, ok := r.store.Get(id); ok {
			return rec, true
		}
	}
	return types.ConversationRecord{}, false
}

// lookupMessage resolves the conversation a message belongs to.
func (r *Reconciler) lookupMessage(msg types.Message) (types.ConversationRecord, bool) {
	if msg.ReceiverType == types.ReceiverGroup {
		return r.store.Get(GroupID(msg.ReceiverID))
	}
	return r.lookupDirect(messagePeer(msg, r.self.UID))
}

// derive asynchronously synthesizes the conversation for msg and posts the
// result back to the loop. Failures go to the error callback; the store is
// left untouched and the next relevant event re-attempts naturally.
func (r *Reconciler) derive(msg types.Message, apply func(types.ConversationRecord)) {
	go func() {
		rec, err := r.client.ConversationFromMessage(context.Background(), msg)
		if err != nil {
			log.Debug().Err(err).Str("message", msg.ID).Msg("conversation derivation failed")
			r.fail(err)
			return
		}
		r.post(func() { apply(rec) })
	}()
}

// removeConversation drops a record from the store and the selection.
func (r *Reconciler) removeConversation(id string) {
	r.store.Remove(id)
	r.selection.Drop(id)
}

// Press handles an item press. In none mode the press is forwarded to the
// external handler; otherwise it toggles selection.
func (r *Reconciler) Press(rec types.ConversationRecord) {
	if r.selection.Mode() == SelectNone {
		if r.onPress != nil {
			r.onPress(rec)
		}
		return
	}
	r.selection.Toggle(rec.ID)
	r.changed()
}

// Delete runs the gateway delete command and, only on success, removes the
// record from the store and selection and emits the deletion notification.
// Failures are logged and leave the record in place.
func (r *Reconciler) Delete(ctx context.Context, rec types.ConversationRecord) {
	go func() {
		if err := r.client.DeleteConversation(ctx, rec.WithID(), rec.Kind); err != nil {
			log.Error().Err(err).Str("conversation", rec.ID).Msg("delete conversation failed")
			return
		}
		r.post(func() {
			r.removeConversation(rec.ID)
			if r.onDeleted != nil {
				r.onDeleted(rec.ID)
			}
			r.changed()
		})
	}()
}
