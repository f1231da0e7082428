package middleware

import (
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/telegram"
	"golang.org/x/time/rate"
)

// NewFloodWaitMiddlewares waits out FLOOD_WAIT answers and, when limit is
// set, spaces requests to one per intervalMS with the given burst.
func NewFloodWaitMiddlewares(maxRetries uint, limit bool, intervalMS, burst int) []telegram.Middleware {
	mws := []telegram.Middleware{
		floodwait.NewSimpleWaiter().WithMaxRetries(maxRetries),
	}
	if limit && intervalMS > 0 {
		if burst < 1 {
			burst = 1
		}
		mws = append(mws, ratelimit.New(rate.Every(time.Duration(intervalMS)*time.Millisecond), burst))
	}
	return mws
}
