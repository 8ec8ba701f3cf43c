package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/convo"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		// Header plus footer line.
		m.viewport.Height = msg.Height - 2
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		return m, nil

	case changeMsg:
		m.refreshRows()
		return m, m.waitForChange()

	case soundMsg:
		notifyIncoming(msg.msg)
		return m, m.waitForSound()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch msg.String() {
		case "y", "enter":
			rec := m.confirm.rec
			m.confirm = nil
			m.status = "Deleting " + rec.Name() + "..."
			m.rec.Delete(context.Background(), rec)
		case "n", "esc":
			m.confirm = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.scrollToCursor()

	case "pgup":
		m.viewport.ViewUp()

	case "pgdown":
		m.viewport.ViewDown()

	case "enter":
		if rec, ok := m.current(); ok {
			m.rec.Press(rec)
			m.refreshRows()
		}

	case " ":
		if rec, ok := m.current(); ok && m.rec.Selection().Mode() != convo.SelectNone {
			m.rec.Press(rec)
			m.refreshRows()
		}

	case "s":
		m.cycleSelectionMode()

	case "d":
		if rec, ok := m.current(); ok {
			m.confirm = &confirmState{rec: rec}
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(1)
		return m, nil
	}
	for i, rec := range m.rows {
		if !m.zoneManager.Get(rowZoneID(i)).InBounds(msg) {
			continue
		}
		m.cursor = i
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.confirm == nil {
				m.rec.Press(rec)
				m.refreshRows()
			}
		case tea.MouseButtonRight:
			// Long-press equivalent: open the delete confirmation for the
			// row under the pointer.
			m.confirm = &confirmState{rec: rec}
		}
		break
	}
	return m, nil
}

// scrollToCursor keeps the cursor row inside the visible window.
func (m *Model) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) cycleSelectionMode() {
	sel := m.rec.Selection()
	switch sel.Mode() {
	case convo.SelectNone:
		sel.SetMode(convo.SelectSingle)
		m.status = "selection: single"
	case convo.SelectSingle:
		sel.SetMode(convo.SelectMultiple)
		m.status = "selection: multiple"
	default:
		sel.SetMode(convo.SelectNone)
		m.status = ""
	}
}
