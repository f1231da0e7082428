package user

import (
	"strings"
	"time"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/dispatcher/handlers"
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/ext"
	"github.com/gotd/td/tg"
	"github.com/watchword/watchword/common/utils/tgutil"
	"github.com/watchword/watchword/core/watcher"
)

// Register routes new text messages: Saved Messages go to the command
// interpreter, everything else to the monitor.
func Register(client *gotgproto.Client, svc *watcher.Service, p *Platform) {
	client.Dispatcher.AddHandler(handlers.NewMessage(filters.Message.Text, func(ctx *ext.Context, u *ext.Update) error {
		switch u.UpdateClass.(type) {
		case *tg.UpdateEditChannelMessage, *tg.UpdateEditMessage:
			return dispatcher.EndGroups
		}
		msg := u.EffectiveMessage
		if msg == nil || msg.Message == nil {
			return dispatcher.ContinueGroups
		}
		selfID := p.SelfID()
		hctx := tgutil.WithExt(ctx, ctx)
		p.remember(hctx, u.Entities)

		if tgutil.IsSavedMessages(msg.Message, selfID) {
			svc.OnSelfMessage(hctx, msg.Text)
			return dispatcher.EndGroups
		}
		svc.OnMessage(hctx, InboundFromMessage(msg.Message, msg.Text, u.Entities, selfID))
		return dispatcher.EndGroups
	}))
}

func InboundFromMessage(msg *tg.Message, text string, e *tg.Entities, selfID int64) watcher.InboundMessage {
	if strings.TrimSpace(text) == "" {
		text = msg.Message
	}
	return watcher.InboundMessage{
		ID:       msg.ID,
		Chat:     tgutil.ChatFromPeer(msg.PeerID, e),
		SenderID: tgutil.SenderID(msg, selfID),
		Text:     text,
		Date:     time.Unix(int64(msg.Date), 0),
	}
}
