package handlers_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mphinance/ulty-tracker/internal/api/handlers"
	"github.com/mphinance/ulty-tracker/internal/testutil"
)

func TestPriceHandlers(t *testing.T) {
	t.Run("get without stored price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, testutil.NewMockYahooClient()))

		req := httptest.NewRequest(http.MethodGet, "/api/price", nil)
		w := httptest.NewRecorder()

		handler.GetPrice(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, testutil.NewMockYahooClient()))

		req := httptest.NewRequest(http.MethodPut, "/api/price", strings.NewReader(`{"price":6.15}`))
		w := httptest.NewRecorder()
		handler.SetPrice(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		req = httptest.NewRequest(http.MethodGet, "/api/price", nil)
		w = httptest.NewRecorder()
		handler.GetPrice(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var resp handlers.PriceResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if math.Abs(resp.Price-6.15) > 1e-9 {
			t.Errorf("Expected 6.15, got %v", resp.Price)
		}
	})

	t.Run("set rejects non-positive price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, testutil.NewMockYahooClient()))

		req := httptest.NewRequest(http.MethodPut, "/api/price", strings.NewReader(`{"price":0}`))
		w := httptest.NewRecorder()
		handler.SetPrice(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("refresh stores fetched quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithPrice(6.42)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, mock))

		req := httptest.NewRequest(http.MethodPost, "/api/price/refresh", nil)
		w := httptest.NewRecorder()
		handler.RefreshPrice(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp handlers.PriceResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if math.Abs(resp.Price-6.42) > 1e-9 {
			t.Errorf("Expected 6.42, got %v", resp.Price)
		}
	})

	t.Run("refresh upstream failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithError(errors.New("upstream down"))
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, mock))

		req := httptest.NewRequest(http.MethodPost, "/api/price/refresh", nil)
		w := httptest.NewRecorder()
		handler.RefreshPrice(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("Expected 502, got %d", w.Code)
		}
	})
}
