package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/watchword/watchword/config"
)

var rootCmd = &cobra.Command{
	Use:          "watchword",
	Short:        "watch Telegram groups for keywords and notify Saved Messages",
	SilenceUsage: true,
	RunE:         Run,
}

func Execute(ctx context.Context) {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	ctx = log.WithContext(ctx, logger)
	config.RegisterFlags(rootCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Exiting", "error", err)
		os.Exit(1)
	}
}
