package middleware

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gotd/td/telegram"
	"github.com/watchword/watchword/client/middleware/recovery"
	"github.com/watchword/watchword/client/middleware/retry"
	"github.com/watchword/watchword/config"
)

// NewDefaultMiddlewares is the chain every client call goes through:
// connection recovery, retry of internal server errors, then flood control.
// https://github.com/iyear/tdl/blob/master/core/tclient/tclient.go
func NewDefaultMiddlewares(ctx context.Context, timeout time.Duration) []telegram.Middleware {
	tgc := config.C().Telegram
	mws := []telegram.Middleware{
		recovery.New(ctx, func() backoff.BackOff { return newBackoff(timeout) }),
		retry.New(tgc.RpcRetry),
	}
	return append(mws, NewFloodWaitMiddlewares(tgc.FloodRetry, tgc.RateLimit.Enable, tgc.RateLimit.IntervalMS, tgc.RateLimit.Burst)...)
}

func newBackoff(timeout time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.Multiplier = 1.1
	b.MaxElapsedTime = timeout
	b.MaxInterval = 10 * time.Second
	return b
}
