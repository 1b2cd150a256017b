// Package scheduler runs the periodic market-data refresh. One cron entry
// fetches the latest quote and any newly announced distributions after the
// close on trading days.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mphinance/ulty-tracker/internal/service"
)

// refreshTimeout bounds one refresh run so a hung upstream call cannot pile
// up cron invocations.
const refreshTimeout = 2 * time.Minute

// Scheduler owns the cron instance and the refresh job.
type Scheduler struct {
	cron            *cron.Cron
	priceService    *service.PriceService
	dividendService *service.DividendService
}

// New creates a Scheduler running the refresh job on the given cron schedule
// (standard 5-field syntax, evaluated in UTC).
func New(
	schedule string,
	priceService *service.PriceService,
	dividendService *service.DividendService,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		priceService:    priceService,
		dividendService: dividendService,
	}

	if _, err := s.cron.AddFunc(schedule, s.refresh); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// refresh updates the price and distribution table. The two refreshes are
// independent; a quote failure does not block the distribution merge.
func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if price, err := s.priceService.RefreshPrice(ctx); err != nil {
		log.Printf("scheduled price refresh failed: %v", err)
	} else {
		log.Printf("scheduled price refresh: %.4f", price)
	}

	if merged, err := s.dividendService.RefreshDistributions(ctx); err != nil {
		log.Printf("scheduled distribution refresh failed: %v", err)
	} else if merged > 0 {
		log.Printf("scheduled distribution refresh: %d new entries", merged)
	}
}
