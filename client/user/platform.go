package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/watchword/watchword/common/cache"
	"github.com/watchword/watchword/common/utils/tgutil"
	"github.com/watchword/watchword/core/watcher"
	"golang.org/x/sync/singleflight"
)

var ErrPeerNotFound = errors.New("peer not found in storage")

// Platform implements watcher.Platform on top of a logged in gotgproto client.
type Platform struct {
	client  *gotgproto.Client
	senders *cache.Cache[int64, watcher.SenderInfo]
	lookups singleflight.Group

	once sync.Once
	ectx *ext.Context
}

func NewPlatform(client *gotgproto.Client, senders *cache.Cache[int64, watcher.SenderInfo]) *Platform {
	return &Platform{client: client, senders: senders}
}

// extContext prefers the handler's context carried in ctx.
func (p *Platform) extContext(ctx context.Context) *ext.Context {
	if ectx := tgutil.ExtFrom(ctx); ectx != nil {
		return ectx
	}
	p.once.Do(func() {
		p.ectx = p.client.CreateContext()
	})
	return p.ectx
}

func (p *Platform) SelfID() int64 {
	return p.client.Self.ID
}

// remember caches the users shipped with an update so most sender lookups
// need no request.
func (p *Platform) remember(ctx context.Context, e *tg.Entities) {
	if e == nil {
		return
	}
	for _, u := range e.Users {
		if u.Min {
			continue
		}
		if err := p.senders.Set(u.ID, tgutil.SenderFromUser(u)); err != nil {
			log.FromContext(ctx).Debug("Sender not cached", "user_id", u.ID, "error", err)
		}
	}
}

func (p *Platform) SenderInfo(ctx context.Context, userID int64) (*watcher.SenderInfo, error) {
	if info, ok := p.senders.Get(userID); ok {
		return &info, nil
	}
	v, err, _ := p.lookups.Do(strconv.FormatInt(userID, 10), func() (any, error) {
		return p.fetchSender(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*watcher.SenderInfo), nil
}

func (p *Platform) fetchSender(ctx context.Context, userID int64) (*watcher.SenderInfo, error) {
	ectx := p.extContext(ctx)
	peer := ectx.PeerStorage.GetPeerById(userID)
	if peer == nil || peer.ID == 0 {
		return nil, fmt.Errorf("sender %d: %w", userID, ErrPeerNotFound)
	}
	users, err := ectx.Raw.UsersGetUsers(ctx, []tg.InputUserClass{
		&tg.InputUser{UserID: userID, AccessHash: peer.AccessHash},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	for _, uc := range users {
		if u, ok := uc.(*tg.User); ok && u.ID == userID {
			info := tgutil.SenderFromUser(u)
			_ = p.senders.Set(userID, info)
			return &info, nil
		}
	}
	return nil, fmt.Errorf("sender %d: %w", userID, ErrPeerNotFound)
}

func (p *Platform) SendText(ctx context.Context, target watcher.Target, text string) error {
	ectx := p.extContext(ctx)
	var err error
	switch target.Kind {
	case watcher.TargetSelf:
		_, err = ectx.Sender.Self().Text(ctx, text)
	case watcher.TargetUser:
		peer := ectx.PeerStorage.GetInputPeerById(target.ID)
		if peer == nil {
			return fmt.Errorf("target %s: %w", target, ErrPeerNotFound)
		}
		if _, empty := peer.(*tg.InputPeerEmpty); empty {
			return fmt.Errorf("target %s: %w", target, ErrPeerNotFound)
		}
		_, err = ectx.Sender.To(peer).Text(ctx, text)
	case watcher.TargetUsername:
		_, err = ectx.Sender.Resolve(target.Username).Text(ctx, text)
	default:
		return fmt.Errorf("unknown target kind %d", target.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to send to %s: %w", target, err)
	}
	return nil
}
