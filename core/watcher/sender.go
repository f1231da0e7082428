package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// DeliveryError is returned when both the primary and the fallback target
// refused a message.
type DeliveryError struct {
	Primary     Target
	Fallback    Target
	PrimaryErr  error
	FallbackErr error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v; fallback %s failed: %v", e.Primary, e.PrimaryErr, e.Fallback, e.FallbackErr)
}

func (e *DeliveryError) Unwrap() []error {
	return []error{e.PrimaryErr, e.FallbackErr}
}

// Sender is the single outgoing path shared by the monitor and the command
// interpreter. Each message is tried on the primary target and then exactly
// once on the fallback target.
type Sender struct {
	platform Platform
	primary  Target
	fallback Target
	extra    []Target
}

func NewSender(platform Platform, primary, fallback Target, extra ...Target) *Sender {
	return &Sender{
		platform: platform,
		primary:  primary,
		fallback: fallback,
		extra:    extra,
	}
}

// Deliver sends text to the primary target, falling back once. Extra targets
// get a best-effort copy after a successful delivery.
func (s *Sender) Deliver(ctx context.Context, text string) error {
	return s.deliver(ctx, text, true)
}

// DeliverPlain takes the same primary then fallback path as Deliver but
// never copies text to the extra targets.
func (s *Sender) DeliverPlain(ctx context.Context, text string) error {
	return s.deliver(ctx, text, false)
}

func (s *Sender) deliver(ctx context.Context, text string, fanOut bool) error {
	logger := log.FromContext(ctx).WithPrefix("sender")
	err := s.platform.SendText(ctx, s.primary, text)
	if err == nil {
		logger.Debug("Delivered", "target", s.primary)
		if fanOut {
			s.fanOut(ctx, text)
		}
		return nil
	}
	logger.Warn("Primary delivery failed", "target", s.primary, "error", err)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &DeliveryError{Primary: s.primary, Fallback: s.fallback, PrimaryErr: err, FallbackErr: ctxErr}
	}
	ferr := s.platform.SendText(ctx, s.fallback, text)
	if ferr == nil {
		logger.Info("Delivered through fallback", "target", s.fallback)
		if fanOut {
			s.fanOut(ctx, text)
		}
		return nil
	}
	logger.Error("Fallback delivery failed", "target", s.fallback, "error", ferr)
	return &DeliveryError{Primary: s.primary, Fallback: s.fallback, PrimaryErr: err, FallbackErr: ferr}
}

func (s *Sender) fanOut(ctx context.Context, text string) {
	for _, t := range s.extra {
		if err := s.platform.SendText(ctx, t, text); err != nil {
			log.FromContext(ctx).WithPrefix("sender").Warn("Extra delivery failed", "target", t, "error", err)
		}
	}
}

// IsDeliveryError reports whether err came from a failed Deliver.
func IsDeliveryError(err error) bool {
	var de *DeliveryError
	return errors.As(err, &de)
}
