package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
)

// Setting keys.
const (
	SettingCurrentPrice = "current_price"
	SettingSymbol       = "symbol"
)

// SettingRepository provides access to the key-value setting table. The core
// never talks to it directly; services read plain values out and hand them to
// the ledger.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for a key, or sql.ErrNoRows when unset.
func (s *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores a value under a key, replacing any existing value.
func (s *SettingRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO setting (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format("2006-01-02T15:04:05Z07:00")
	if _, err := s.db.ExecContext(ctx, query, key, value, now); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *SettingRepository) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM setting WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// GetCurrentPrice returns the stored current price.
// Returns ErrNoCurrentPrice when no price has been stored yet.
func (s *SettingRepository) GetCurrentPrice(ctx context.Context) (float64, error) {
	value, err := s.Get(ctx, SettingCurrentPrice)
	if err == sql.ErrNoRows {
		return 0, apperrors.ErrNoCurrentPrice
	}
	if err != nil {
		return 0, err
	}

	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse stored price %q: %w", value, err)
	}
	return price, nil
}

// SetCurrentPrice stores the current price.
func (s *SettingRepository) SetCurrentPrice(ctx context.Context, price float64) error {
	return s.Set(ctx, SettingCurrentPrice, strconv.FormatFloat(price, 'f', -1, 64))
}
