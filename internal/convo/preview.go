package convo

import (
	"fmt"
	"regexp"

	"github.com/parleychat/parley/internal/types"
)

// Formatter transforms subtitle text. Formatters run as an accumulating
// chain: each consumes the previous one's output.
type Formatter func(string) string

// PreviewOptions configure subtitle derivation.
type PreviewOptions struct {
	// Formatters run after the built-in mentions formatter.
	Formatters []Formatter

	// LinkLabel replaces raw URL text; defaults to "Link".
	LinkLabel string
}

// urlRe matches a URL anywhere in the scanned prefix of the message text.
var urlRe = regexp.MustCompile(`(?i)\bhttps?://[^\s]+|\bwww\.[^\s]+`)

// linkScanLimit bounds how far into the text the URL check looks.
const linkScanLimit = 50

// mentionRe matches inline mention tokens of the form <@uid>.
var mentionRe = regexp.MustCompile(`<@([^>\s]+)>`)

// Title returns the opposing party's display name.
func Title(rec types.ConversationRecord) string {
	return rec.Name()
}

// Subtitle derives the preview line for a record. Precedence: the typing
// annotation replaces everything; a URL in the first 50 characters of a text
// message becomes the link label and bypasses the formatter chain; otherwise
// the text runs through mentions formatting and then the supplied formatters.
func Subtitle(rec types.ConversationRecord, self types.User, opts PreviewOptions) string {
	if rec.TypingBy != "" {
		return typingLabel(rec)
	}
	lm := rec.LastMessage
	if lm == nil {
		return ""
	}

	prefix := ""
	if rec.Kind == types.ConversationGroup && lm.Category != types.CategoryAction {
		if lm.Sender.UID == self.UID {
			prefix = "You: "
		} else if lm.Sender.Name != "" {
			prefix = lm.Sender.Name + ": "
		}
	}

	return prefix + previewBody(*lm, opts)
}

func previewBody(lm types.Message, opts PreviewOptions) string {
	if lm.IsDeleted() {
		return "This message was deleted"
	}
	switch lm.Category {
	case types.CategoryAction:
		return lm.Text
	case types.CategoryCall:
		return callLabel(lm)
	}
	switch lm.Type {
	case types.TypeImage:
		return "Image"
	case types.TypeVideo:
		return "Video"
	case types.TypeAudio:
		return "Audio"
	case types.TypeFile:
		return "File"
	}

	text := lm.Text
	if hasLeadingLink(text) {
		label := opts.LinkLabel
		if label == "" {
			label = "Link"
		}
		return label
	}

	chain := opts.Formatters
	if len(lm.Mentions) > 0 {
		chain = append([]Formatter{MentionsFormatter(lm.Mentions)}, chain...)
	}
	for _, f := range chain {
		text = f(text)
	}
	return text
}

// hasLeadingLink reports whether the first linkScanLimit characters contain a
// URL. The limit counts runes, not bytes, so multi-byte text is never split
// mid-character.
func hasLeadingLink(text string) bool {
	head := []rune(text)
	if len(head) > linkScanLimit {
		head = head[:linkScanLimit]
	}
	return urlRe.MatchString(string(head))
}

// MentionsFormatter replaces <@uid> tokens with the mentioned user's display
// name, prefixed with @.
func MentionsFormatter(mentions []types.User) Formatter {
	byUID := make(map[string]types.User, len(mentions))
	for _, u := range mentions {
		byUID[u.UID] = u
	}
	return func(text string) string {
		return mentionRe.ReplaceAllStringFunc(text, func(tok string) string {
			uid := mentionRe.FindStringSubmatch(tok)[1]
			if u, ok := byUID[uid]; ok && u.Name != "" {
				return "@" + u.Name
			}
			return tok
		})
	}
}

func typingLabel(rec types.ConversationRecord) string {
	if rec.Kind == types.ConversationGroup {
		name := rec.TypingBy
		if rec.LastMessage != nil && rec.LastMessage.Sender.UID == rec.TypingBy && rec.LastMessage.Sender.Name != "" {
			name = rec.LastMessage.Sender.Name
		}
		return fmt.Sprintf("%s is typing...", name)
	}
	return "typing..."
}

func callLabel(lm types.Message) string {
	switch lm.CallStatus {
	case types.CallInitiated:
		return "Incoming call"
	case types.CallOngoing, types.CallAccepted:
		return "Ongoing call"
	case types.CallRejected:
		return "Call rejected"
	case types.CallCancelled:
		return "Call cancelled"
	case types.CallEnded:
		return "Call ended"
	case types.CallUnanswered:
		return "Missed call"
	}
	return "Call"
}
