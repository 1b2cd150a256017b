package model

import (
	"fmt"
	"time"
)

// Transaction types.
const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// Transaction represents a single buy or sell of the tracked security.
// Dates carry day granularity only (midnight UTC); Amount is derived and
// never stored.
type Transaction struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Amount returns the total value of the transaction (quantity times price).
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.Price
}

// Validate checks the structural invariants every stored transaction must
// satisfy, regardless of where it came from.
func (t Transaction) Validate() error {
	if t.Type != TransactionTypeBuy && t.Type != TransactionTypeSell {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", t.Quantity)
	}
	if t.Price <= 0 {
		return fmt.Errorf("price must be positive, got %g", t.Price)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}
