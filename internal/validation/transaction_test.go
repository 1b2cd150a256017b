package validation_test

import (
	"testing"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/validation"
)

func TestValidateCreateTransaction(t *testing.T) {
	valid := request.CreateTransactionRequest{
		Date:     "2025-01-01",
		Type:     "buy",
		Quantity: 100,
		Price:    6.00,
	}

	tests := []struct {
		name      string
		mutate    func(r *request.CreateTransactionRequest)
		wantField string
	}{
		{
			name:   "valid request passes",
			mutate: nil,
		},
		{
			name:      "missing date",
			mutate:    func(r *request.CreateTransactionRequest) { r.Date = "" },
			wantField: "date",
		},
		{
			name:      "unparseable date",
			mutate:    func(r *request.CreateTransactionRequest) { r.Date = "01/02/2025" },
			wantField: "date",
		},
		{
			name:      "unknown type",
			mutate:    func(r *request.CreateTransactionRequest) { r.Type = "dividend" },
			wantField: "transactionType",
		},
		{
			name:      "zero quantity",
			mutate:    func(r *request.CreateTransactionRequest) { r.Quantity = 0 },
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			mutate:    func(r *request.CreateTransactionRequest) { r.Quantity = -5 },
			wantField: "quantity",
		},
		{
			name:      "zero price",
			mutate:    func(r *request.CreateTransactionRequest) { r.Price = 0 },
			wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			err := validation.ValidateCreateTransaction(req)

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			verr, ok := err.(*validation.Error)
			if !ok {
				t.Fatalf("Expected *validation.Error, got %T", err)
			}
			if _, found := verr.Fields[tt.wantField]; !found {
				t.Errorf("Expected error on field %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestValidateReplaceHoldings(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		err := validation.ValidateReplaceHoldings(request.ReplaceHoldingsRequest{Shares: 100, AvgPrice: 6.00})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects non-positive values", func(t *testing.T) {
		err := validation.ValidateReplaceHoldings(request.ReplaceHoldingsRequest{Shares: 0, AvgPrice: -1})
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
		verr := err.(*validation.Error)
		if len(verr.Fields) != 2 {
			t.Errorf("Expected 2 field errors, got %v", verr.Fields)
		}
	})
}

func TestValidateSetPrice(t *testing.T) {
	if err := validation.ValidateSetPrice(request.SetPriceRequest{Price: 6.23}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := validation.ValidateSetPrice(request.SetPriceRequest{Price: 0}); err == nil {
		t.Error("Expected validation error for zero price")
	}
}
