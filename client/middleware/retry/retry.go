package retry

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

var internalErrors = []string{
	"Timedout",
	"No workers running",
	"RPC_CALL_FAIL",
	"RPC_MCGET_FAIL",
	"WORKER_BUSY_TOO_LONG_RETRY",
	"memory limit exit",
}

type retry struct {
	max    int
	errors []string
}

func (r retry) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		retries := 0
		var lastErr error

		for retries < r.max {
			if err := next.Invoke(ctx, input, output); err != nil {
				if tgerr.Is(err, r.errors...) {
					lastErr = err
					log.FromContext(ctx).WithPrefix("retry").Debug("Retrying internal error", "attempt", retries+1, "error", err)
					retries++
					continue
				}
				return err
			}

			return nil
		}

		return fmt.Errorf("retry limit reached after %d attempts: %w", r.max, lastErr)
	}
}

// New returns middleware that retries a request up to max times while it
// fails with one of errors or a known internal server error.
func New(max int, errors ...string) telegram.Middleware {
	return retry{
		max:    max,
		errors: append(errors, internalErrors...),
	}
}
