package watcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/watchword/watchword/core/watcher"
)

func TestDeliverPrimary(t *testing.T) {
	p := newFakePlatform()
	s := watcher.NewSender(p, watcher.SelfTarget, watcher.UserTarget(1))
	if err := s.Deliver(newTestContext(), "hi"); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if sent := p.messages(); len(sent) != 1 || sent[0].target != watcher.SelfTarget {
		t.Fatalf("sent = %+v", sent)
	}
}

func TestDeliverFallsBackOnce(t *testing.T) {
	p := newFakePlatform()
	fallback := watcher.UserTarget(1)
	p.fail[watcher.SelfTarget] = -1
	p.fail[fallback] = -1
	s := watcher.NewSender(p, watcher.SelfTarget, fallback)

	err := s.Deliver(newTestContext(), "hi")
	if err == nil {
		t.Fatal("Deliver() error = nil")
	}
	var de *watcher.DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not a DeliveryError", err)
	}
	if de.Primary != watcher.SelfTarget || de.Fallback != fallback {
		t.Fatalf("targets = %s, %s", de.Primary, de.Fallback)
	}
	if !errors.Is(err, errSend) {
		t.Fatalf("error does not wrap the send error")
	}
	if !watcher.IsDeliveryError(err) {
		t.Fatal("IsDeliveryError() = false")
	}
	if p.attempts != 2 {
		t.Fatalf("attempts = %d, want 2", p.attempts)
	}
}

func TestDeliverCancelledSkipsFallback(t *testing.T) {
	p := newFakePlatform()
	p.fail[watcher.SelfTarget] = -1
	s := watcher.NewSender(p, watcher.SelfTarget, watcher.UserTarget(1))
	ctx, cancel := context.WithCancel(newTestContext())
	cancel()

	err := s.Deliver(ctx, "hi")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Deliver() error = %v, want context.Canceled", err)
	}
	if p.attempts != 1 {
		t.Fatalf("attempts = %d, want 1", p.attempts)
	}
}

func TestDeliverExtraTargets(t *testing.T) {
	p := newFakePlatform()
	channel := watcher.Target{Kind: watcher.TargetUsername, Username: "alerts"}
	broken := watcher.UserTarget(9)
	p.fail[broken] = -1
	s := watcher.NewSender(p, watcher.SelfTarget, watcher.UserTarget(1), broken, channel)

	if err := s.Deliver(newTestContext(), "hi"); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	sent := p.messages()
	if len(sent) != 2 || sent[0].target != watcher.SelfTarget || sent[1].target != channel {
		t.Fatalf("sent = %+v", sent)
	}
}

func TestDeliverExtraTargetsSkippedOnFailure(t *testing.T) {
	p := newFakePlatform()
	p.fail[watcher.SelfTarget] = -1
	p.fail[watcher.UserTarget(1)] = -1
	s := watcher.NewSender(p, watcher.SelfTarget, watcher.UserTarget(1), watcher.UserTarget(2))
	_ = s.Deliver(newTestContext(), "hi")
	if got := len(p.messages()); got != 0 {
		t.Fatalf("extra target got a copy of an undelivered message")
	}
}

func TestDeliverPlain(t *testing.T) {
	p := newFakePlatform()
	p.fail[watcher.SelfTarget] = 1
	s := watcher.NewSender(p, watcher.SelfTarget, watcher.UserTarget(1), watcher.UserTarget(2))

	if err := s.DeliverPlain(newTestContext(), "MATCH"); err != nil {
		t.Fatalf("DeliverPlain() error = %v", err)
	}
	sent := p.messages()
	if len(sent) != 1 || sent[0].target != watcher.UserTarget(1) {
		t.Fatalf("sent = %+v, want fallback only", sent)
	}

	p = newFakePlatform()
	p.fail[watcher.SelfTarget] = -1
	p.fail[watcher.UserTarget(1)] = -1
	s = watcher.NewSender(p, watcher.SelfTarget, watcher.UserTarget(1))
	if err := s.DeliverPlain(newTestContext(), "MATCH"); !watcher.IsDeliveryError(err) {
		t.Fatalf("DeliverPlain() error = %v, want DeliveryError", err)
	}
}
