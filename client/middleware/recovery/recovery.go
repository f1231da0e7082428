package recovery

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

type recovery struct {
	ctx        context.Context
	newBackoff func() backoff.BackOff
}

// New returns middleware that keeps retrying requests which failed below the
// RPC layer (dead connection, reconnect in progress) until newBackoff gives
// up. ctx stops the recovery, e.g. on shutdown.
func New(ctx context.Context, newBackoff func() backoff.BackOff) telegram.Middleware {
	return &recovery{ctx: ctx, newBackoff: newBackoff}
}

func (r *recovery) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		logger := log.FromContext(r.ctx).WithPrefix("recovery")
		b := backoff.WithContext(r.newBackoff(), ctx)
		return backoff.RetryNotify(func() error {
			if err := next.Invoke(ctx, input, output); err != nil {
				if r.shouldRecover(ctx, err) {
					return fmt.Errorf("recover: %w", err)
				}
				return backoff.Permanent(err)
			}
			return nil
		}, b, func(err error, d time.Duration) {
			logger.Debug("Waiting for connection recovery", "error", err, "wait", d)
		})
	}
}

func (r *recovery) shouldRecover(ctx context.Context, err error) bool {
	if r.ctx.Err() != nil || ctx.Err() != nil {
		return false
	}
	// RPC errors are answers from the server, not connection problems
	_, ok := tgerr.As(err)
	return !ok
}
