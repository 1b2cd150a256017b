package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mphinance/ulty-tracker/internal/model"
)

// DividendRepository provides data access methods for the historical
// distribution table. Estimated entries never touch this table; they are
// generated by the schedule builder at read time.
type DividendRepository struct {
	db *sql.DB
}

// NewDividendRepository creates a new DividendRepository with the provided database connection.
func NewDividendRepository(db *sql.DB) *DividendRepository {
	return &DividendRepository{db: db}
}

// GetRates retrieves all historical distribution entries sorted ascending by date.
func (s *DividendRepository) GetRates(ctx context.Context) ([]model.DividendRate, error) {
	query := `
		SELECT date, per_share_amount, roc_percentage
		FROM dividend_rate
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend_rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.DividendRate{}

	for rows.Next() {
		var dateStr string
		var r model.DividendRate

		if err := rows.Scan(&dateStr, &r.PerShareAmount, &r.ROCPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan dividend_rate table results: %w", err)
		}

		r.Date, err = ParseTime(dateStr)
		if err != nil || r.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		rates = append(rates, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend_rate table: %w", err)
	}

	return rates, nil
}

// MergeRates inserts distribution entries that are not yet present, keyed by
// date. Existing rows win: a refresh never rewrites recorded history.
// Returns the number of newly inserted entries.
func (s *DividendRepository) MergeRates(ctx context.Context, rates []model.DividendRate) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO dividend_rate (date, per_share_amount, roc_percentage)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO NOTHING
	`

	inserted := 0
	for _, r := range rates {
		result, err := tx.ExecContext(ctx, query,
			r.Date.Format("2006-01-02"),
			r.PerShareAmount,
			r.ROCPercentage,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to merge dividend rate: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check merge result: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit dividend rate merge: %w", err)
	}

	return inserted, nil
}
