// Package scheduler runs the periodic jobs of a running monitor.
package scheduler

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/watchword/watchword/core/watcher"
)

type Scheduler struct {
	s      gocron.Scheduler
	logger *log.Logger
}

func New(ctx context.Context) (*Scheduler, error) {
	logger := log.FromContext(ctx).WithPrefix("scheduler")
	s, err := gocron.NewScheduler(gocron.WithLogger(newGocronLogger(logger)))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{s: s, logger: logger}, nil
}

// AddJob schedules job on a five field cron expression.
func (s *Scheduler) AddJob(name, cronExpr string, job func()) error {
	_, err := s.s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(job),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", name, err)
	}
	s.logger.Debug("Job scheduled", "name", name, "cron", cronExpr)
	return nil
}

func (s *Scheduler) Jobs() int {
	return len(s.s.Jobs())
}

func (s *Scheduler) Start() {
	s.s.Start()
}

func (s *Scheduler) Stop() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	return nil
}

// StatsReporter is satisfied by *watcher.Service.
type StatsReporter interface {
	Stats() watcher.Stats
}

// AddStatsJob logs the monitor counters on cronExpr. An empty expression
// disables the job.
func (s *Scheduler) AddStatsJob(cronExpr string, svc StatsReporter) error {
	if cronExpr == "" {
		return nil
	}
	return s.AddJob("stats", cronExpr, func() {
		LogStats(s.logger, svc.Stats())
	})
}

func LogStats(logger *log.Logger, st watcher.Stats) {
	logger.Info("Monitor stats",
		"keywords", st.Keywords,
		"groups", st.Groups,
		"scanned", st.Scanned,
		"matched", st.Matched,
		"delivered", st.Delivered,
		"failed", st.Failed,
	)
}
