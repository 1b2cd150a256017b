package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/testutil"
)

func TestPortfolioEvaluate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mock := testutil.NewMockYahooClient()
	svc := testutil.NewTestPortfolioService(t, db, mock)
	ctx := context.Background()

	// Dates sit relative to today so the single historical distribution is
	// realized and every generated estimate lands in the future.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	testutil.CreateBuy(t, db, today.AddDate(0, 0, -10), 100, 6.00)
	testutil.CreateDividendRate(t, db, today.AddDate(0, 0, -5), 0.4653)
	testutil.SetSetting(t, db, "current_price", "6.23")

	result, err := svc.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Investment == nil {
		t.Fatal("Expected non-nil investment for a held position")
	}
	if result.Investment.Shares != 100 {
		t.Errorf("Expected 100 shares, got %d", result.Investment.Shares)
	}
	if math.Abs(result.Investment.CurrentPrice-6.23) > 1e-9 {
		t.Errorf("Expected current price 6.23, got %v", result.Investment.CurrentPrice)
	}
	if math.Abs(result.Investment.CumulativeROC-46.53) > 1e-9 {
		t.Errorf("Expected cumulative ROC 46.53, got %v", result.Investment.CumulativeROC)
	}

	// Snapshots cover the historical entry plus the estimated tail
	if len(result.Snapshots) < 2 {
		t.Fatalf("Expected estimated snapshots beyond the historical entry, got %d", len(result.Snapshots))
	}
	if result.Snapshots[0].IsEstimated {
		t.Error("Expected first snapshot to be historical")
	}
	if !result.Snapshots[len(result.Snapshots)-1].IsEstimated {
		t.Error("Expected last snapshot to be estimated")
	}
}

func TestPortfolioEvaluateWithoutPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockYahooClient())

	today := time.Now().UTC().Truncate(24 * time.Hour)
	testutil.CreateBuy(t, db, today.AddDate(0, 0, -10), 100, 6.00)
	testutil.CreateDividendRate(t, db, today.AddDate(0, 0, -5), 0.4653)

	// No current price stored; evaluation proceeds with zeroed market fields
	result, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed without a stored price: %v", err)
	}
	if result.Investment == nil {
		t.Fatal("Expected non-nil investment")
	}
	if result.Investment.CurrentPrice != 0 || result.Investment.MarketValue != 0 {
		t.Errorf("Expected zero market fields, got price=%v value=%v",
			result.Investment.CurrentPrice, result.Investment.MarketValue)
	}
}

func TestPortfolioEvaluateEmptyLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockYahooClient())

	testutil.CreateDividendRate(t, db, testutil.Day(2025, time.March, 7), 0.4653)

	result, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed on empty ledger: %v", err)
	}
	if result.Investment != nil {
		t.Error("Expected nil investment with no transactions")
	}
	if result.Snapshots == nil {
		t.Error("Expected non-nil empty snapshots")
	}
	if len(result.Snapshots) != 0 {
		t.Errorf("Expected no snapshots, got %d", len(result.Snapshots))
	}
}

func TestPortfolioEvaluateNoScheduleData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockYahooClient())

	testutil.CreateBuy(t, db, testutil.Day(2025, time.March, 1), 100, 6.00)

	_, err := svc.Evaluate(context.Background())
	if !errors.Is(err, apperrors.ErrInsufficientDividendData) {
		t.Errorf("Expected ErrInsufficientDividendData, got %v", err)
	}
}
