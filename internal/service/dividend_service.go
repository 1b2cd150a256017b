package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mphinance/ulty-tracker/internal/ledger"
	"github.com/mphinance/ulty-tracker/internal/model"
	"github.com/mphinance/ulty-tracker/internal/repository"
	"github.com/mphinance/ulty-tracker/internal/yahoo"
)

// DividendService handles distribution-schedule business logic: reading the
// historical table, extending it with estimated entries, and merging newly
// announced distributions fetched from the quote API.
type DividendService struct {
	dividendRepo *repository.DividendRepository
	yahooClient  yahoo.Client
	symbol       string
	horizonEnd   time.Time
}

// NewDividendService creates a new DividendService with the provided repository dependencies.
func NewDividendService(
	dividendRepo *repository.DividendRepository,
	yahooClient yahoo.Client,
	symbol string,
	horizonEnd time.Time,
) *DividendService {
	return &DividendService{
		dividendRepo: dividendRepo,
		yahooClient:  yahooClient,
		symbol:       symbol,
		horizonEnd:   horizonEnd,
	}
}

// GetHistoricalRates returns the stored distribution table, ascending by date.
func (s *DividendService) GetHistoricalRates(ctx context.Context) ([]model.DividendRate, error) {
	return s.dividendRepo.GetRates(ctx)
}

// GetSchedule returns the full distribution schedule: the historical table
// extended with weekly estimated entries through the configured horizon.
// Estimated entries are recomputed on every call, never persisted.
func (s *DividendService) GetSchedule(ctx context.Context) ([]model.DividendRate, error) {
	historical, err := s.dividendRepo.GetRates(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.BuildSchedule(historical, s.horizonEnd)
}

// RefreshDistributions fetches distribution events announced since the last
// stored entry and merges the new ones into the historical table. Existing
// rows are never rewritten, and a failed fetch leaves the table untouched.
// Fetched entries default to 100% ROC, matching the fund's classification;
// the stored value can be corrected later without being clobbered.
//
// Returns the number of newly recorded distributions.
func (s *DividendService) RefreshDistributions(ctx context.Context) (int, error) {
	historical, err := s.dividendRepo.GetRates(ctx)
	if err != nil {
		return 0, err
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if len(historical) > 0 {
		start = historical[len(historical)-1].Date.AddDate(0, 0, 1)
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if !start.Before(end) {
		return 0, nil
	}

	events, err := s.yahooClient.QueryDividends(ctx, s.symbol, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch distributions for %s: %w", s.symbol, err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	rates := make([]model.DividendRate, len(events))
	for i, ev := range events {
		rates[i] = model.DividendRate{
			Date:           ev.Date,
			PerShareAmount: ev.Amount,
			ROCPercentage:  100,
		}
	}

	return s.dividendRepo.MergeRates(ctx, rates)
}
