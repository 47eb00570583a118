// Package jobs runs the scheduled background work: the daily price refresh.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lotledger/lotledger/internal/service"
)

// Scheduler manages background cron jobs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler using standard 5-field cron expressions.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddPriceRefresh registers the price refresh job on the given cron
// schedule (e.g. "30 22 * * MON-FRI" for after US market close).
func (s *Scheduler) AddPriceRefresh(schedule string, prices *service.PriceService) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		result, err := prices.RefreshAll(ctx)
		if err != nil {
			log.Printf("Scheduled price refresh failed: %v", err)
			return
		}
		log.Printf("Scheduled price refresh: %d symbols, %d new rows persisted",
			len(result.Symbols), result.NewRows)
	})
	if err != nil {
		return err
	}
	log.Printf("Registered price refresh job on schedule %q", schedule)
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Scheduler started")
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("Scheduler stopped")
}
