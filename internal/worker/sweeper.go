package worker

import (
	"context"
	"log/slog"
	"time"

	"pluralink/internal/infra/repository"
	"pluralink/internal/pkg/clock"
	"pluralink/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// Sweeper closes out confirmed bookings whose appointment end has passed,
// so review eligibility does not depend on providers pressing complete.
type Sweeper struct {
	repo  *repository.BookingRepository
	clock clock.Clock
	cfg   config.SweepConfig
	cron  *cron.Cron
}

func NewSweeper(pool *pgxpool.Pool, clk clock.Clock, cfg config.SweepConfig) *Sweeper {
	return &Sweeper{
		repo:  repository.NewBookingRepository(pool),
		clock: clk,
		cfg:   cfg,
	}
}

func (s *Sweeper) Start() error {
	if !s.cfg.Enabled {
		slog.Info("booking sweep disabled")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("booking sweep started", "schedule", s.cfg.Schedule)
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce is exposed for tests and manual triggering.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	return s.repo.CompleteOverdue(ctx, s.clock.Now().UTC())
}

func (s *Sweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		slog.Error("booking sweep failed", "error", err.Error())
		return
	}
	if n > 0 {
		slog.Info("booking sweep completed bookings", "count", n)
	}
}
