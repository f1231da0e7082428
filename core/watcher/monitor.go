package watcher

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rs/xid"
	"github.com/watchword/watchword/pkg/keyword"
)

// OnMessage scans one inbound message and notifies the operator at most once.
func (s *Service) OnMessage(ctx context.Context, msg InboundMessage) {
	if s.selfID != 0 && msg.SenderID == s.selfID {
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	if s.groupsOnly && !msg.Chat.Kind.IsGroup() {
		return
	}
	logger := log.FromContext(ctx).WithPrefix("monitor")
	s.scanned.Add(1)
	if s.trackGroup(ctx, msg.Chat) {
		logger.Debug("New group", "chat_id", msg.Chat.ID, "title", msg.Chat.Title)
	}

	matched := keyword.Match(s.Keywords(), msg.Text)
	if len(matched) == 0 {
		return
	}
	s.matched.Add(1)

	// a zero sender id means no user wrote the message
	info := &SenderInfo{}
	if msg.SenderID != 0 {
		resolved, err := s.platform.SenderInfo(ctx, msg.SenderID)
		if err != nil || resolved == nil {
			logger.Warn("Failed to resolve sender", "sender_id", msg.SenderID, "error", err)
			resolved = &SenderInfo{ID: msg.SenderID}
		}
		info = resolved
	}
	at := msg.Date
	if at.IsZero() {
		at = s.now()
	}
	n := Notification{
		ID:       xid.New().String(),
		Keywords: matched,
		Chat:     msg.Chat,
		Sender:   *info,
		Message:  msg.ID,
		Text:     msg.Text,
		Time:     at,
	}
	logger = logger.With("id", n.ID, "chat_id", msg.Chat.ID, "keywords", matched)
	logger.Info("Keyword match")

	err := s.sender.Deliver(ctx, n.Render())
	if err == nil {
		s.delivered.Add(1)
		return
	}
	logger.Warn("Notification not delivered, sending plain form", "error", err)
	if err := s.sender.DeliverPlain(ctx, n.RenderPlain()); err != nil {
		s.failed.Add(1)
		logger.Error("Dropped notification", "error", err)
		return
	}
	s.delivered.Add(1)
}
