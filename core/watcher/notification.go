package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/common/i18n/i18nk"
)

// Notification describes one keyword match. It is rendered and sent once.
type Notification struct {
	ID       string
	Keywords []string
	Chat     Chat
	Sender   SenderInfo
	Message  int
	Text     string
	Time     time.Time
}

// Link points at the message for chats that have public or c/ links.
func (n Notification) Link() string {
	if n.Message == 0 {
		return ""
	}
	switch n.Chat.Kind {
	case ChatSupergroup, ChatChannel:
		if n.Chat.Username != "" {
			return fmt.Sprintf("https://t.me/%s/%d", n.Chat.Username, n.Message)
		}
		return fmt.Sprintf("https://t.me/c/%d/%d", n.Chat.ID, n.Message)
	default:
		return ""
	}
}

func (n Notification) Render() string {
	unknown := i18n.T(i18nk.Unknown)
	handle := n.Sender.Handle()
	if handle == "" {
		handle = i18n.T(i18nk.NoHandle)
	}
	contact := n.Sender.ContactLink()
	if contact == "" {
		contact = unknown
	}
	link := n.Link()
	if link == "" {
		link = i18n.T(i18nk.NoLink)
	}
	return i18n.T(i18nk.NotifyMatch, map[string]any{
		"ChatTitle":    orDefault(n.Chat.Title, unknown),
		"SenderName":   orDefault(n.Sender.DisplayName(), unknown),
		"SenderHandle": handle,
		"Keywords":     strings.Join(n.Keywords, ", "),
		"Time":         n.Time.Format(time.DateTime),
		"Text":         n.Text,
		"Contact":      contact,
		"Link":         link,
	})
}

// RenderPlain is the reduced form tried after the full one could not be sent.
func (n Notification) RenderPlain() string {
	return i18n.T(i18nk.NotifyMatchPlain, map[string]any{
		"Keywords":  strings.Join(n.Keywords, ", "),
		"ChatTitle": orDefault(n.Chat.Title, i18n.T(i18nk.Unknown)),
	})
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
