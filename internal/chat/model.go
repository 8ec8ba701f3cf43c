package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/convo"
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/types"
)

// Options configure the conversation list screen.
type Options struct {
	Client gateway.Client
	Config config.Config
}

// Run starts the conversation list UI and blocks until exit.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	fmt.Printf("\033]0;parley\007")

	program := tea.NewProgram(model, tea.WithMouseCellMotion())
	_, err = program.Run()
	model.Close()
	return err
}

// confirmState tracks a pending delete confirmation.
type confirmState struct {
	rec types.ConversationRecord
}

// Model implements the conversation list UI.
type Model struct {
	client gateway.Client
	cfg    config.Config
	self   types.User
	rec    *convo.Reconciler

	rows     []types.ConversationRecord
	cursor   int
	width    int
	height   int
	status   string
	confirm  *confirmState
	viewport viewport.Model

	zoneManager *zone.Manager

	// changes is pulsed by the reconciler on every store mutation.
	changes chan struct{}
	sounds  chan types.Message
}

// NewModel connects the reconciler, loads the first conversation page, and
// prepares the UI.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		client:      opts.Client,
		cfg:         opts.Config,
		self:        opts.Client.Me(),
		zoneManager: zone.New(),
		viewport:    viewport.New(0, 0),
		changes:     make(chan struct{}, 1),
		sounds:      make(chan types.Message, 8),
	}

	settings := opts.Config.Updates.Settings()
	m.rec = convo.New(convo.Options{
		Client:         opts.Client,
		IncludeBlocked: opts.Config.Chat.IncludeBlocked,
		Settings:       &settings,
		OnChange:       m.signalChange,
		OnError:        func(error) { m.signalChange() },
		OnIncoming:     m.queueSound,
		OnDeleted:      func(string) { m.signalChange() },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.rec.Load(ctx, opts.Config.Chat.PageSize); err != nil {
		return nil, fmt.Errorf("load conversations: %w", err)
	}
	m.rows = m.rec.Store().All()
	m.rec.Start()
	return m, nil
}

// Close tears down the reconciler and the gateway connection.
func (m *Model) Close() {
	m.rec.Stop()
	_ = m.client.Close()
}

func (m *Model) signalChange() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) queueSound(msg types.Message) {
	if !m.cfg.Chat.Sounds {
		return
	}
	select {
	case m.sounds <- msg:
	default:
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.waitForSound())
}

type changeMsg struct{}

type soundMsg struct {
	msg types.Message
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return changeMsg{}
	}
}

func (m *Model) waitForSound() tea.Cmd {
	return func() tea.Msg {
		msg := <-m.sounds
		return soundMsg{msg: msg}
	}
}

// refreshRows re-snapshots the store and clamps the cursor.
func (m *Model) refreshRows() {
	m.rows = m.rec.Store().All()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) current() (types.ConversationRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return types.ConversationRecord{}, false
	}
	return m.rows[m.cursor], true
}
