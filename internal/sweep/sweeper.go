// Package sweep runs the scheduled expiry sweep that deactivates weeklists
// past their active lifetime.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/weeklisthq/weeklist-api/internal/service"
)

const sweepTimeout = 30 * time.Second

// Sweeper schedules the expiry sweep with a cron expression.
type Sweeper struct {
	weeklistService service.WeeklistService
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewSweeper creates a Sweeper that will run on the given standard five-field
// cron spec (e.g. "0 0 * * *" for midnight UTC).
func NewSweeper(weeklistService service.WeeklistService, spec string, log *slog.Logger) (*Sweeper, error) {
	if log == nil {
		log = slog.Default()
	}

	s := &Sweeper{
		weeklistService: weeklistService,
		cron:            cron.New(cron.WithLocation(time.UTC)),
		logger:          log.With("component", "sweeper"),
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the schedule and runs one sweep immediately so a service
// that was down over a boundary catches up on startup.
func (s *Sweeper) Start() {
	s.run()
	s.cron.Start()
	s.logger.Info("expiry sweeper started")
}

// Stop halts the schedule and waits for any in-flight sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("expiry sweeper stopped")
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := s.weeklistService.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("expiry sweep run failed", "error", err)
		return
	}
	s.logger.Debug("expiry sweep run finished", "deactivated", count)
}
