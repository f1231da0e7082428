// Package watcher scans group messages for keywords, notifies the operator
// and interprets the control commands the operator writes to Saved Messages.
package watcher

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type ChatKind int

const (
	ChatUnknown ChatKind = iota
	ChatPrivate
	ChatGroup
	ChatSupergroup
	ChatChannel
)

func (k ChatKind) String() string {
	switch k {
	case ChatPrivate:
		return "private"
	case ChatGroup:
		return "group"
	case ChatSupergroup:
		return "supergroup"
	case ChatChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// IsGroup reports whether messages from this kind of chat are scanned when
// monitoring is restricted to groups and channels.
func (k ChatKind) IsGroup() bool {
	return k == ChatGroup || k == ChatSupergroup || k == ChatChannel
}

// Chat describes where an inbound message came from. Missing fields are left
// empty; rendering substitutes placeholders.
type Chat struct {
	ID       int64
	Kind     ChatKind
	Title    string
	Username string
}

type InboundMessage struct {
	ID       int
	Chat     Chat
	SenderID int64
	Text     string
	Date     time.Time
}

// SenderInfo is the sender metadata the platform could resolve.
type SenderInfo struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

func (s SenderInfo) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Handle is "@username" when the sender has one, empty otherwise.
func (s SenderInfo) Handle() string {
	if s.Username == "" {
		return ""
	}
	return "@" + s.Username
}

func (s SenderInfo) ContactLink() string {
	if s.ID == 0 {
		return ""
	}
	return fmt.Sprintf("tg://user?id=%d", s.ID)
}

// Platform is the part of the messaging client the watcher needs.
type Platform interface {
	SenderInfo(ctx context.Context, userID int64) (*SenderInfo, error)
	SendText(ctx context.Context, target Target, text string) error
}

// Store keeps keywords and monitored groups across restarts. Implementations
// must be safe for concurrent use.
type Store interface {
	SaveKeywords(ctx context.Context, keywords []string) error
	AddGroup(ctx context.Context, chat Chat) error
}
