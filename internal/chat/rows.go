package chat

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/parleychat/parley/internal/convo"
	"github.com/parleychat/parley/internal/types"
)

var (
	onlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offlineStyle  = lipgloss.NewStyle().Faint(true)
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	readStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// renderRow derives and styles one conversation line:
// indicator title receipt subtitle ... timestamp badge.
func (m *Model) renderRow(i int, rec types.ConversationRecord) string {
	ind := indicatorGlyph(convo.StatusIndicator(rec, m.cfg.Chat.ShowStatus))
	title := convo.Title(rec)
	receipt := receiptGlyph(convo.Receipt(rec, m.self, m.cfg.Chat.ShowReceipts))
	subtitle := convo.Subtitle(rec, m.self, convo.PreviewOptions{})

	ts, badge := convo.Trailing(rec, relativeTimestamp)
	trailing := ts
	if badge > 0 {
		trailing += " " + badgeStyle.Render(fmt.Sprintf("(%d)", badge))
	}

	left := fmt.Sprintf("%s %s%s", ind, runewidth.Truncate(title, 20, "…"), receipt)
	mid := subtitleStyle.Render(runewidth.Truncate(subtitle, 42, "…"))
	return fmt.Sprintf("%-26s %-44s %s", left, mid, trailing)
}

// relativeTimestamp is the TUI's trailing pattern; the long-form default is
// for contexts without a clock nearby.
func relativeTimestamp(t time.Time) string {
	return humanize.Time(t)
}

func indicatorGlyph(ind convo.Indicator) string {
	switch ind {
	case convo.IndicatorOnline:
		return onlineStyle.Render("●")
	case convo.IndicatorOffline:
		return offlineStyle.Render("○")
	case convo.IndicatorPassword:
		return "⚷"
	case convo.IndicatorPrivate:
		return "⛉"
	}
	return " "
}

func receiptGlyph(state convo.ReceiptState) string {
	switch state {
	case convo.ReceiptSent:
		return " ✓"
	case convo.ReceiptDelivered:
		return " ✓✓"
	case convo.ReceiptRead:
		return readStyle.Render(" ✓✓")
	case convo.ReceiptError:
		return errStyle.Render(" !")
	}
	return ""
}
