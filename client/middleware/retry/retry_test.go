package retry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tgerr"
	"github.com/watchword/watchword/client/middleware/retry"
)

func TestRetryInternalErrors(t *testing.T) {
	calls := 0
	next := telegram.InvokeFunc(func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		calls++
		if calls < 3 {
			return tgerr.New(500, "RPC_CALL_FAIL")
		}
		return nil
	})
	if err := retry.New(5).Handle(next).Invoke(context.Background(), nil, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryLimit(t *testing.T) {
	calls := 0
	next := telegram.InvokeFunc(func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		calls++
		return tgerr.New(500, "RPC_CALL_FAIL")
	})
	err := retry.New(2).Handle(next).Invoke(context.Background(), nil, nil)
	if err == nil || !tgerr.Is(err, "RPC_CALL_FAIL") {
		t.Fatalf("Invoke() error = %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestRetrySkipsOtherErrors(t *testing.T) {
	calls := 0
	want := tgerr.New(400, "PEER_ID_INVALID")
	next := telegram.InvokeFunc(func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		calls++
		return want
	})
	err := retry.New(5).Handle(next).Invoke(context.Background(), nil, nil)
	if !errors.Is(err, want) || calls != 1 {
		t.Fatalf("Invoke() error = %v after %d calls", err, calls)
	}
}
