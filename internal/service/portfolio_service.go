package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/ledger"
	"github.com/mphinance/ulty-tracker/internal/model"
)

// PortfolioService is the recompute-on-change entry point: it assembles the
// evaluator's inputs (transaction history, distribution schedule, current
// price) and runs a full evaluation. There is no incremental state to keep
// in sync; every call recomputes from scratch, and identical stored data
// yields identical results.
type PortfolioService struct {
	transactionService *TransactionService
	dividendService    *DividendService
	priceService       *PriceService
}

// NewPortfolioService creates a new PortfolioService with the provided service dependencies.
func NewPortfolioService(
	transactionService *TransactionService,
	dividendService *DividendService,
	priceService *PriceService,
) *PortfolioService {
	return &PortfolioService{
		transactionService: transactionService,
		dividendService:    dividendService,
		priceService:       priceService,
	}
}

// Evaluate loads the stored ledger inputs and computes the snapshot sequence
// and aggregate investment view as of now. Investment is nil when no
// transactions exist.
func (s *PortfolioService) Evaluate(ctx context.Context) (ledger.Result, error) {
	var (
		transactions []model.Transaction
		schedule     []model.DividendRate
		price        float64
	)

	// The three inputs are independent reads.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionService.GetTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		schedule, err = s.dividendService.GetSchedule(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		price, err = s.priceService.GetCurrentPrice(gctx)
		if errors.Is(err, apperrors.ErrNoCurrentPrice) {
			// Evaluation still works without a quote; market-value fields
			// just read as zero until a price arrives.
			price = 0
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return ledger.Result{}, err
	}

	return ledger.Evaluate(transactions, schedule, price, time.Now().UTC()), nil
}
