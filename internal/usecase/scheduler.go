package usecase

import (
	"context"
	"fmt"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/pkg/logger"
)

// Scheduler re-runs the pipeline once per day at a fixed wall-clock time.
// Runs are single-flight: the next trigger is armed only after the previous
// run has fully completed, so overlapping runs cannot happen. A run's error
// or panic is logged and the loop keeps going; the daemon must survive
// transient scraping failures indefinitely.
type Scheduler struct {
	run    func(ctx context.Context) error
	hour   int
	minute int
	logger logger.Logger
}

// NewScheduler validates the "15:04" trigger time and builds the scheduler.
func NewScheduler(run func(ctx context.Context) error, at string, logger logger.Logger) (*Scheduler, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule time %q is not HH:MM", entity.ErrInvalidConfig, at)
	}
	return &Scheduler{
		run:    run,
		hour:   t.Hour(),
		minute: t.Minute(),
		logger: logger,
	}, nil
}

// Start blocks until the context is cancelled, firing one run per day.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Scheduler started", "at", fmt.Sprintf("%02d:%02d", s.hour, s.minute))
	for {
		wait := time.Until(s.nextTrigger(time.Now()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Scheduler stopped")
			return
		case <-timer.C:
		}
		s.runOnce(ctx)
	}
}

// nextTrigger returns the next occurrence of the configured wall-clock time
// strictly after now.
func (s *Scheduler) nextTrigger(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// runOnce executes one pipeline run, containing errors and panics so the
// scheduling loop never dies.
func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduled run panicked", "panic", r)
		}
	}()

	started := time.Now()
	s.logger.Info("Scheduled run starting")
	if err := s.run(ctx); err != nil {
		s.logger.Error("Scheduled run failed", "error", err, "duration", time.Since(started).String())
		return
	}
	s.logger.Info("Scheduled run finished", "duration", time.Since(started).String())
}
