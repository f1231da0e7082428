package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/watchword/watchword/api"
	"github.com/watchword/watchword/client/user"
	"github.com/watchword/watchword/common/cache"
	"github.com/watchword/watchword/config"
	"github.com/watchword/watchword/core/scheduler"
	"github.com/watchword/watchword/core/watcher"
	"github.com/watchword/watchword/database"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "log in and start monitoring (default)",
	RunE:  Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func Run(cmd *cobra.Command, _ []string) error {
	ctx, cleanup, err := setup(cmd)
	defer cleanup()
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx)
	cfg := config.C()
	logger.Info("Starting watchword", "version", config.Version)

	var store database.Store
	if cfg.DB.Persist {
		store, err = database.Open(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
	}
	state, err := loadState(ctx, store)
	if err != nil {
		return err
	}
	logger.Info("Keywords loaded", "count", len(state.keywords), "source", state.source, "groups", len(state.groups))

	targets, err := parseTargets(cfg.Notify.Target, cfg.Notify.Fallback, cfg.Notify.ExtraTargets)
	if err != nil {
		return err
	}

	senders, err := cache.New[int64, watcher.SenderInfo](ctx, cfg.Cache.NumCounters, cfg.Cache.MaxCost, time.Duration(cfg.Cache.TTL)*time.Second)
	if err != nil {
		return err
	}
	defer senders.Close()

	client, err := user.Login(ctx)
	if err != nil {
		return fmt.Errorf("user client login failed: %w", err)
	}
	defer client.Stop()
	platform := user.NewPlatform(client, senders)

	opts := watcher.Options{
		SelfID:     client.Self.ID,
		GroupsOnly: cfg.Monitor.GroupsOnly,
		Keywords:   state.keywords,
		Groups:     state.groups,
		Target:     targets.primary,
		Fallback:   targets.fallback,
		Extra:      targets.extra,
	}
	if store != nil {
		opts.Store = store
	}
	svc := watcher.NewService(platform, opts)
	user.Register(client, svc, platform)

	if err := api.Init(ctx, svc); err != nil {
		return err
	}

	sched, err := scheduler.New(ctx)
	if err != nil {
		return err
	}
	if err := sched.AddStatsJob(cfg.Schedule.StatsCron, svc); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			logger.Warn("Scheduler stop", "error", err)
		}
	}()

	if cfg.Monitor.StartupNotice {
		if err := svc.Announce(ctx); err != nil {
			logger.Warn("Startup notice not delivered", "error", err)
		}
	}
	logger.Info("Monitoring", "keywords", len(state.keywords), "target", targets.primary)

	<-ctx.Done()
	logger.Info("Shutting down")
	scheduler.LogStats(logger, svc.Stats())
	return nil
}
