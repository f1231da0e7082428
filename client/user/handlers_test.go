package user

import (
	"testing"
	"time"

	"github.com/gotd/td/tg"
	"github.com/watchword/watchword/core/watcher"
)

func TestInboundFromMessage(t *testing.T) {
	e := &tg.Entities{
		Channels: map[int64]*tg.Channel{30: {ID: 30, Title: "Jobs", Megagroup: true}},
	}
	msg := &tg.Message{ID: 12, PeerID: &tg.PeerChannel{ChannelID: 30}, Message: "need a driver", Date: 1700000000}
	msg.SetFromID(&tg.PeerUser{UserID: 7})

	got := InboundFromMessage(msg, "", e, 1)
	want := watcher.InboundMessage{
		ID:       12,
		Chat:     watcher.Chat{ID: 30, Kind: watcher.ChatSupergroup, Title: "Jobs"},
		SenderID: 7,
		Text:     "need a driver",
		Date:     time.Unix(1700000000, 0),
	}
	if got != want {
		t.Fatalf("InboundFromMessage() = %+v, want %+v", got, want)
	}
}
