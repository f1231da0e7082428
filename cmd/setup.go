package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/watchword/watchword/common/i18n"
	"github.com/watchword/watchword/config"
	"github.com/watchword/watchword/logger"
)

// setup loads the configuration and returns a context carrying the
// configured logger. cleanup is never nil.
func setup(cmd *cobra.Command) (ctx context.Context, cleanup func(), err error) {
	ctx = cmd.Context()
	cleanup = func() {}
	if err := config.Init(ctx, config.GetConfigFile(cmd)); err != nil {
		return ctx, cleanup, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyFlagOverrides(cmd)
	l, closeLog, err := logger.New(config.C().Log.Level, config.C().Log.File)
	if err != nil {
		return ctx, cleanup, err
	}
	cleanup = func() {
		if err := closeLog(); err != nil {
			l.Warn("Failed to close log file", "error", err)
		}
	}
	i18n.Init(config.C().Lang)
	return log.WithContext(ctx, l), cleanup, nil
}
