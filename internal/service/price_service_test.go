package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/testutil"
)

func TestPriceService(t *testing.T) {
	ctx := context.Background()

	t.Run("no price stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db, testutil.NewMockYahooClient())

		_, err := svc.GetCurrentPrice(ctx)
		if !errors.Is(err, apperrors.ErrNoCurrentPrice) {
			t.Errorf("Expected ErrNoCurrentPrice, got %v", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db, testutil.NewMockYahooClient())

		if err := svc.SetCurrentPrice(ctx, 6.10); err != nil {
			t.Fatalf("SetCurrentPrice failed: %v", err)
		}

		price, err := svc.GetCurrentPrice(ctx)
		if err != nil {
			t.Fatalf("GetCurrentPrice failed: %v", err)
		}
		if math.Abs(price-6.10) > 1e-9 {
			t.Errorf("Expected 6.10, got %v", price)
		}

		// Setting again overwrites
		if err := svc.SetCurrentPrice(ctx, 6.25); err != nil {
			t.Fatalf("SetCurrentPrice failed: %v", err)
		}
		price, err = svc.GetCurrentPrice(ctx)
		if err != nil {
			t.Fatalf("GetCurrentPrice failed: %v", err)
		}
		if math.Abs(price-6.25) > 1e-9 {
			t.Errorf("Expected 6.25 after overwrite, got %v", price)
		}
		testutil.AssertRowCount(t, db, "setting", 1)
	})

	t.Run("refresh stores fetched quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithPrice(6.42)
		svc := testutil.NewTestPriceService(t, db, mock)

		price, err := svc.RefreshPrice(ctx)
		if err != nil {
			t.Fatalf("RefreshPrice failed: %v", err)
		}
		if math.Abs(price-6.42) > 1e-9 {
			t.Errorf("Expected fetched price 6.42, got %v", price)
		}

		stored, err := svc.GetCurrentPrice(ctx)
		if err != nil {
			t.Fatalf("GetCurrentPrice failed: %v", err)
		}
		if math.Abs(stored-6.42) > 1e-9 {
			t.Errorf("Expected stored price 6.42, got %v", stored)
		}
	})

	t.Run("failed refresh keeps last good price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient()
		svc := testutil.NewTestPriceService(t, db, mock)

		if err := svc.SetCurrentPrice(ctx, 6.10); err != nil {
			t.Fatalf("SetCurrentPrice failed: %v", err)
		}

		mock.WithError(errors.New("upstream down"))
		if _, err := svc.RefreshPrice(ctx); err == nil {
			t.Fatal("Expected error from failed refresh")
		}

		price, err := svc.GetCurrentPrice(ctx)
		if err != nil {
			t.Fatalf("GetCurrentPrice failed: %v", err)
		}
		if math.Abs(price-6.10) > 1e-9 {
			t.Errorf("Expected last good price 6.10, got %v", price)
		}
	})
}
