package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/mphinance/ulty-tracker/internal/repository"
	"github.com/mphinance/ulty-tracker/internal/yahoo"
)

// PriceService manages the single current-price scalar: manual entry and
// refresh from the quote API. A failed refresh never touches the stored
// price, so the ledger keeps evaluating against the last known good value.
type PriceService struct {
	settingRepo *repository.SettingRepository
	yahooClient yahoo.Client
	symbol      string

	// Concurrent refresh calls (UI + cron) collapse into one upstream fetch.
	refreshGroup singleflight.Group
}

// NewPriceService creates a new PriceService with the provided repository dependencies.
func NewPriceService(
	settingRepo *repository.SettingRepository,
	yahooClient yahoo.Client,
	symbol string,
) *PriceService {
	return &PriceService{
		settingRepo: settingRepo,
		yahooClient: yahooClient,
		symbol:      symbol,
	}
}

// GetCurrentPrice returns the stored current price.
// Returns apperrors.ErrNoCurrentPrice when none has been set or fetched yet.
func (s *PriceService) GetCurrentPrice(ctx context.Context) (float64, error) {
	return s.settingRepo.GetCurrentPrice(ctx)
}

// SetCurrentPrice stores a manually entered price.
func (s *PriceService) SetCurrentPrice(ctx context.Context, price float64) error {
	return s.settingRepo.SetCurrentPrice(ctx, price)
}

// RefreshPrice fetches the latest quote and stores it.
// Returns the fetched price.
func (s *PriceService) RefreshPrice(ctx context.Context) (float64, error) {
	value, err, _ := s.refreshGroup.Do("price", func() (interface{}, error) {
		quote, err := s.yahooClient.QueryLatestQuote(ctx, s.symbol)
		if err != nil {
			return 0.0, fmt.Errorf("failed to fetch quote for %s: %w", s.symbol, err)
		}
		if err := s.settingRepo.SetCurrentPrice(ctx, quote.Price); err != nil {
			return 0.0, err
		}
		return quote.Price, nil
	})
	if err != nil {
		return 0, err
	}
	return value.(float64), nil
}
