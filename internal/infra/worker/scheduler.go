package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron instance that triggers digest runs. It is
// constructed explicitly and carries its own lifecycle: no package-level
// state, no jobs registered at init time. The caller decides when
// dispatch starts and stops.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates a stopped scheduler whose cron expressions are
// evaluated in loc.
func NewScheduler(loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		logger: logger,
	}
}

// AddJob registers a named job under a five-field cron schedule. Jobs run
// with panic recovery, so one bad run cannot take the scheduler down.
func (s *Scheduler) AddJob(schedule, name string, run func()) error {
	_, err := s.cron.AddFunc(schedule, func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled job panicked",
					slog.String("job", name),
					slog.Any("panic", r))
			}
		}()
		s.logger.Info("scheduled job starting", slog.String("job", name))
		run()
	})
	if err != nil {
		return fmt.Errorf("AddJob: %s: %w", name, err)
	}
	return nil
}

// Start begins dispatching jobs in a background goroutine. Safe to call
// once; jobs added after Start are picked up on their next schedule.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts dispatch and waits for running jobs to finish or ctx to
// expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("scheduler stop abandoned with jobs still running")
		return ctx.Err()
	}
}

// NextRun returns the earliest upcoming activation across registered
// jobs, or the zero time when nothing is scheduled. Used for startup
// logging.
func (s *Scheduler) NextRun() time.Time {
	var next time.Time
	for _, entry := range s.cron.Entries() {
		if entry.Next.IsZero() {
			continue
		}
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}
