// Package scheduler registers the recurring ledger jobs: the nightly
// earnings aggregation and the half-hourly payout reconciliation. Jobs
// are also exposed as callable entrypoints so admins can trigger them
// manually over the API.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"plume/internal/ledger"
)

// Scheduler owns the cron runner for the ledger's recurring jobs.
type Scheduler struct {
	cron   *cron.Cron
	ledger *ledger.Service
}

// New creates a scheduler with the earnings job at 00:05 UTC daily and
// payout reconciliation every 30 minutes. Jobs do not run until Start.
func New(svc *ledger.Service) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ledger: svc,
	}

	if _, err := s.cron.AddFunc("5 0 * * *", s.runEarnings); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc("*/30 * * * *", s.runReconcile); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

// runEarnings is the cron entrypoint for the daily earnings job.
func (s *Scheduler) runEarnings() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.ledger.RunDailyEarnings(ctx, time.Now()); err != nil {
		slog.Error("scheduled earnings run failed", "error", err)
	}
}

// runReconcile is the cron entrypoint for payout reconciliation.
func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.ledger.Reconcile(ctx); err != nil {
		slog.Error("scheduled reconciliation failed", "error", err)
	}
}
