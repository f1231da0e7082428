package tgutil

import (
	"github.com/gotd/td/tg"
	"github.com/watchword/watchword/core/watcher"
)

// ChatFromPeer describes peer with whatever the update's entities carry.
// Unknown peers keep their id and an empty title.
func ChatFromPeer(peer tg.PeerClass, e *tg.Entities) watcher.Chat {
	switch p := peer.(type) {
	case *tg.PeerUser:
		chat := watcher.Chat{ID: p.UserID, Kind: watcher.ChatPrivate}
		if e != nil {
			if u, ok := e.Users[p.UserID]; ok {
				info := SenderFromUser(u)
				chat.Title = info.DisplayName()
				chat.Username = info.Username
			}
		}
		return chat
	case *tg.PeerChat:
		chat := watcher.Chat{ID: p.ChatID, Kind: watcher.ChatGroup}
		if e != nil {
			if c, ok := e.Chats[p.ChatID]; ok {
				chat.Title = c.Title
			}
		}
		return chat
	case *tg.PeerChannel:
		// without the entity the flavour is unknown, a supergroup is the common case
		chat := watcher.Chat{ID: p.ChannelID, Kind: watcher.ChatSupergroup}
		if e != nil {
			if c, ok := e.Channels[p.ChannelID]; ok {
				chat.Title = c.Title
				chat.Username = c.Username
				if c.Broadcast && !c.Megagroup {
					chat.Kind = watcher.ChatChannel
				}
			}
		}
		return chat
	default:
		return watcher.Chat{}
	}
}

func SenderFromUser(u *tg.User) watcher.SenderInfo {
	if u == nil {
		return watcher.SenderInfo{}
	}
	return watcher.SenderInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

// SenderID is the user who wrote msg: selfID for outgoing messages, the from
// peer when set, otherwise the peer of a private chat. It is 0 when no user
// wrote the message, as with channel posts or posts sent as a channel.
func SenderID(msg *tg.Message, selfID int64) int64 {
	if msg.Out {
		return selfID
	}
	peer := msg.PeerID
	if from, ok := msg.GetFromID(); ok {
		peer = from
	}
	if user, ok := peer.(*tg.PeerUser); ok {
		return user.UserID
	}
	return 0
}

func PeerID(peer tg.PeerClass) int64 {
	switch p := peer.(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return p.ChatID
	case *tg.PeerChannel:
		return p.ChannelID
	default:
		return 0
	}
}

// IsSavedMessages reports whether msg was written by the operator into their
// own Saved Messages chat.
func IsSavedMessages(msg *tg.Message, selfID int64) bool {
	p, ok := msg.PeerID.(*tg.PeerUser)
	if !ok || p.UserID != selfID {
		return false
	}
	if msg.Out {
		return true
	}
	from, ok := msg.GetFromID()
	return !ok || PeerID(from) == selfID
}
