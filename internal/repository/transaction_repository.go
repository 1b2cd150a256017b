package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mphinance/ulty-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all transactions sorted ascending by date, with
// insertion time as tie-break so same-day transactions stay deterministic.
func (s *TransactionRepository) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT id, date, type, quantity, price, created_at
		FROM "transaction"
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&dateStr,
			&t.Type,
			&t.Quantity,
			&t.Price,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns sql.ErrNoRows when no transaction with the given ID exists.
func (s *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	query := `
		SELECT id, date, type, quantity, price, created_at
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var dateStr, createdAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&dateStr,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// InsertTransaction stores a new transaction.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, date, type, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Quantity,
		t.Price,
		t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ReplaceTransaction overwrites an existing transaction in full, keeping its
// ID and creation time. Transactions are immutable facts; an edit is a
// delete-and-recreate under the same ID.
// Returns sql.ErrNoRows when no transaction with the given ID exists.
func (s *TransactionRepository) ReplaceTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET date = ?, type = ?, quantity = ?, price = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Quantity,
		t.Price,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteTransaction removes a transaction by ID.
// Returns sql.ErrNoRows when no transaction with the given ID exists.
func (s *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteAllTransactions clears the entire transaction history (bulk clear).
func (s *TransactionRepository) DeleteAllTransactions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM "transaction"`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return nil
}

// ReplaceAll atomically swaps the full transaction history for the given
// list. Used by session restore and replace-holdings, where a partial write
// would corrupt the ledger.
func (s *TransactionRepository) ReplaceAll(ctx context.Context, transactions []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM "transaction"`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	query := `
		INSERT INTO "transaction" (id, date, type, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, t := range transactions {
		_, err := tx.ExecContext(ctx, query,
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Type,
			t.Quantity,
			t.Price,
			t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction swap: %w", err)
	}

	return nil
}
