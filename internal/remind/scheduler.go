package remind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Checker on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	checker *Checker
	logger  *slog.Logger
}

// NewScheduler validates spec (standard five-field cron) and registers the
// check job. Times are interpreted in the local zone.
func NewScheduler(spec string, checker *Checker, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cron:    cron.New(),
		checker: checker,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid remind schedule %q: %w", spec, err)
	}
	return s, nil
}

// Entries lists the scheduled jobs. Next times are set once Run starts.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runOnce() {
	res, err := s.checker.Check(context.Background())
	if err != nil {
		s.logger.Error("reminder check failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("reminder check",
		slog.Bool("sent", res.Sent),
		slog.String("reason", res.Reason),
		slog.Int("current_streak", res.Stats.Current),
	)
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("reminder scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
}
