// Package scheduler runs the periodic jobs: the daily objective alert
// evaluation and the daily recurring-transaction advancement.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fintrack/fintrack-backend/internal/config"
	"github.com/fintrack/fintrack-backend/internal/service"
)

// Scheduler wraps a cron runner around the batch services.
type Scheduler struct {
	cron             *cron.Cron
	objectiveService *service.ObjectiveService
	recurringService *service.RecurringService
}

// New creates a Scheduler. Jobs are not registered until Start.
func New(objectiveService *service.ObjectiveService, recurringService *service.RecurringService) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		objectiveService: objectiveService,
		recurringService: recurringService,
	}
}

// Start registers the jobs on the configured schedules and starts the
// cron runner in its own goroutine.
func (s *Scheduler) Start(cfg config.SchedulerConfig) error {
	if _, err := s.cron.AddFunc(cfg.AdvanceSchedule, s.runAdvance); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cfg.EvaluateSchedule, s.runEvaluate); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started: advance=%q evaluate=%q", cfg.AdvanceSchedule, cfg.EvaluateSchedule)
	return nil
}

// Stop stops the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runEvaluate() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := s.objectiveService.EvaluateAll(ctx)
	if err != nil {
		log.Printf("Scheduled objective evaluation failed: %v", err)
		return
	}
	log.Printf("Scheduled objective evaluation: evaluated=%d notified=%d failures=%d",
		summary.Evaluated, summary.Notified, len(summary.Failures))
}

func (s *Scheduler) runAdvance() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := s.recurringService.AdvanceDue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Scheduled recurring advancement failed: %v", err)
		return
	}
	log.Printf("Scheduled recurring advancement: processed=%d materialized=%d exhausted=%d failures=%d",
		summary.Processed, summary.Materialized, summary.Exhausted, len(summary.Failures))
}
