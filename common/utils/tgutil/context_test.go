package tgutil

import (
	"context"
	"testing"

	"github.com/celestix/gotgproto/ext"
)

func TestExtContext(t *testing.T) {
	if got := ExtFrom(context.Background()); got != nil {
		t.Fatalf("ExtFrom(empty) = %v, want nil", got)
	}
	ectx := &ext.Context{}
	if got := ExtFrom(WithExt(context.Background(), ectx)); got != ectx {
		t.Fatalf("ExtFrom() = %p, want %p", got, ectx)
	}
}
