package tgutil

import (
	"context"

	"github.com/celestix/gotgproto/ext"
)

type extKey struct{}

// WithExt attaches the dispatcher context of the update being handled, so
// code below the watcher can resolve peers through the same peer storage.
func WithExt(ctx context.Context, ectx *ext.Context) context.Context {
	return context.WithValue(ctx, extKey{}, ectx)
}

// ExtFrom returns the context stored by WithExt, or nil outside a handler.
func ExtFrom(ctx context.Context) *ext.Context {
	ectx, _ := ctx.Value(extKey{}).(*ext.Context)
	return ectx
}
