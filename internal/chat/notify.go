package chat

import (
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog/log"

	"github.com/parleychat/parley/internal/types"
)

// notifyIncoming plays the notification sound and posts an OS notification
// for a freshly received message.
func notifyIncoming(msg types.Message) {
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		log.Debug().Err(err).Msg("notification sound failed")
	}

	title := msg.Sender.Name
	if title == "" {
		title = msg.Sender.UID
	}
	body := truncateNotification(msg.Text, 100)
	if body == "" {
		body = "New message"
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		log.Debug().Err(err).Msg("notification failed")
	}
}

func truncateNotification(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
