package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/parleychat/parley/internal/convo"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	confirmStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")).Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	title := "parley"
	if mode := m.rec.Selection().Mode(); mode != convo.SelectNone {
		title += fmt.Sprintf(" · selection: %s (%d)", mode, len(m.rec.Selection().IDs()))
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(statusStyle.Render("No conversations yet."))
		b.WriteString("\n")
	} else {
		var list strings.Builder
		for i, rec := range m.rows {
			line := m.renderRow(i, rec)
			if i == m.cursor {
				line = cursorStyle.Render(line)
			} else if m.rec.Selection().Contains(rec.ID) {
				line = selectedStyle.Render(line)
			}
			list.WriteString(m.zoneManager.Mark(rowZoneID(i), line))
			if i < len(m.rows)-1 {
				list.WriteString("\n")
			}
		}
		m.viewport.SetContent(list.String())
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	if m.confirm != nil {
		b.WriteString(confirmStyle.Render(
			fmt.Sprintf("Delete conversation with %s? (y/n)", m.confirm.rec.Name())))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	return m.zoneManager.Scan(b.String())
}

func rowZoneID(i int) string {
	return fmt.Sprintf("row-%d", i)
}
