package scheduler

import (
	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// gocronLogger routes gocron's own messages to a charmbracelet logger.
type gocronLogger struct {
	l *log.Logger
}

func newGocronLogger(l *log.Logger) gocron.Logger {
	return &gocronLogger{l: l}
}

func (g *gocronLogger) Debug(msg string, args ...any) { g.l.Debug(msg, args...) }
func (g *gocronLogger) Error(msg string, args ...any) { g.l.Error(msg, args...) }
func (g *gocronLogger) Info(msg string, args ...any)  { g.l.Info(msg, args...) }
func (g *gocronLogger) Warn(msg string, args ...any)  { g.l.Warn(msg, args...) }
