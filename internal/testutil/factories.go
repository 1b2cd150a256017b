package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mphinance/ulty-tracker/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)).
//	    Sell().
//	    WithQuantity(50).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Date      time.Time
	Type      string
	Quantity  int64
	Price     float64
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Date:      time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
		Type:      model.TransactionTypeBuy,
		Quantity:  100,
		Price:     6.00,
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// Sell marks the transaction as a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionTypeSell
	return b
}

// WithQuantity sets the share count.
func (b *TransactionBuilder) WithQuantity(quantity int64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the per-share price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithCreatedAt sets the insertion timestamp, used to order same-day rows.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, date, type, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Date.Format("2006-01-02"), b.Type, b.Quantity, b.Price,
		b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Date:      b.Date,
		Type:      b.Type,
		Quantity:  b.Quantity,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
	}
}

// Convenience functions

// CreateBuy creates a buy transaction on the given date.
//
// Example usage:
//
//	tx := testutil.CreateBuy(t, db, testutil.Day(2025, 1, 2), 100, 6.00)
func CreateBuy(t *testing.T, db *sql.DB, date time.Time, quantity int64, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithDate(date).WithQuantity(quantity).WithPrice(price).Build(t, db)
}

// CreateSell creates a sell transaction on the given date.
func CreateSell(t *testing.T, db *sql.DB, date time.Time, quantity int64, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithDate(date).Sell().WithQuantity(quantity).WithPrice(price).Build(t, db)
}

// DividendRateBuilder provides a fluent interface for creating distribution entries.
//
// Example usage:
//
//	rate := testutil.NewDividendRate().
//	    WithDate(testutil.Day(2025, 3, 7)).
//	    WithPerShareAmount(0.4653).
//	    Build(t, db)
type DividendRateBuilder struct {
	Date           time.Time
	PerShareAmount float64
	ROCPercentage  float64
}

// NewDividendRate creates a DividendRateBuilder with sensible defaults.
func NewDividendRate() *DividendRateBuilder {
	return &DividendRateBuilder{
		Date:           time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
		PerShareAmount: 0.4653,
		ROCPercentage:  100,
	}
}

// WithDate sets the pay date.
func (b *DividendRateBuilder) WithDate(date time.Time) *DividendRateBuilder {
	b.Date = date
	return b
}

// WithPerShareAmount sets the per-share distribution.
func (b *DividendRateBuilder) WithPerShareAmount(amount float64) *DividendRateBuilder {
	b.PerShareAmount = amount
	return b
}

// WithROCPercentage sets the return-of-capital share of the distribution.
func (b *DividendRateBuilder) WithROCPercentage(pct float64) *DividendRateBuilder {
	b.ROCPercentage = pct
	return b
}

// Build creates the distribution entry in the database and returns it.
func (b *DividendRateBuilder) Build(t *testing.T, db *sql.DB) model.DividendRate {
	t.Helper()

	query := `
		INSERT INTO dividend_rate (date, per_share_amount, roc_percentage)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.Date.Format("2006-01-02"), b.PerShareAmount, b.ROCPercentage)
	if err != nil {
		t.Fatalf("Failed to create test dividend rate: %v", err)
	}

	return model.DividendRate{
		Date:           b.Date,
		PerShareAmount: b.PerShareAmount,
		ROCPercentage:  b.ROCPercentage,
	}
}

// CreateDividendRate creates a 100% ROC distribution entry on the given date.
func CreateDividendRate(t *testing.T, db *sql.DB, date time.Time, amount float64) model.DividendRate {
	t.Helper()
	return NewDividendRate().WithDate(date).WithPerShareAmount(amount).Build(t, db)
}

// CreateWeeklyRates creates count weekly distribution entries starting at
// start, all with the same per-share amount.
func CreateWeeklyRates(t *testing.T, db *sql.DB, start time.Time, count int, amount float64) []model.DividendRate {
	t.Helper()

	rates := make([]model.DividendRate, count)
	for i := 0; i < count; i++ {
		rates[i] = CreateDividendRate(t, db, start.AddDate(0, 0, 7*i), amount)
	}
	return rates
}

// SetSetting stores a key-value setting directly.
func SetSetting(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()

	query := `INSERT INTO setting ("key", value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := db.Exec(query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		t.Fatalf("Failed to set setting %s: %v", key, err)
	}
}

// Day returns a date at midnight UTC, the granularity every ledger date uses.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
