package user

import (
	"context"
	"time"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/charmbracelet/log"
	"github.com/watchword/watchword/client/middleware"
	"github.com/watchword/watchword/common/utils/tgutil"
	"github.com/watchword/watchword/config"
	"github.com/watchword/watchword/database"
)

type loginResult struct {
	client *gotgproto.Client
	err    error
}

// Login connects the operator's account, asking for the phone code and 2FA
// password on the terminal when the session is new.
func Login(ctx context.Context) (*gotgproto.Client, error) {
	logger := log.FromContext(ctx)
	logger.Debug("Logging in user client")
	res := make(chan loginResult, 1)
	go func() {
		client, err := newClient(ctx)
		res <- loginResult{client, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-res:
		if r.err != nil {
			return nil, r.err
		}
		logger.Info("User client logged in", "name", r.client.Self.FirstName+" "+r.client.Self.LastName, "id", r.client.Self.ID)
		return r.client, nil
	}
}

func newClient(ctx context.Context) (*gotgproto.Client, error) {
	tgc := config.C().Telegram
	resolver, err := tgutil.NewConfigProxyResolver()
	if err != nil {
		return nil, err
	}
	var session sessionMaker.SessionConstructor
	if tgc.SessionString != "" {
		session = sessionMaker.TelethonSession(tgc.SessionString)
	} else {
		session = sessionMaker.SqlSession(database.GetDialect(tgc.Session))
	}
	return gotgproto.NewClient(
		tgc.AppID,
		tgc.AppHash,
		gotgproto.ClientTypePhone(tgc.Phone),
		&gotgproto.ClientOpts{
			Session:          session,
			AuthConversator:  newTerminalPrompt(tgc.Phone),
			Context:          ctx,
			DisableCopyright: true,
			Resolver:         resolver,
			MaxRetries:       tgc.RpcRetry,
			Middlewares:      middleware.NewDefaultMiddlewares(ctx, 5*time.Minute),
			ErrorHandler: func(ctx *ext.Context, u *ext.Update, s string) error {
				log.FromContext(ctx).Errorf("Unhandled error: %s", s)
				return dispatcher.EndGroups
			},
		},
	)
}
