package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/model"
	"github.com/mphinance/ulty-tracker/internal/repository"
	"github.com/mphinance/ulty-tracker/internal/validation"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// GetTransactions retrieves the full transaction history, sorted ascending by date.
func (s *TransactionService) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ctx)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return transaction, nil
}

// CreateTransaction stores a new transaction from a validated request.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// ReplaceTransaction overwrites every field of an existing transaction.
// Transactions are immutable records, so editing is modeled as a full
// replacement under the same ID rather than a partial update.
func (s *TransactionService) ReplaceTransaction(ctx context.Context, id string, req request.ReplaceTransactionRequest) (*model.Transaction, error) {
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:       id,
		Date:     date,
		Type:     req.Type,
		Quantity: req.Quantity,
		Price:    req.Price,
	}

	err = s.transactionRepo.ReplaceTransaction(ctx, transaction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to replace transaction: %w", err)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	err := s.transactionRepo.DeleteTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrTransactionNotFound
	}
	return err
}

// DeleteAllTransactions clears the entire history (bulk clear).
func (s *TransactionService) DeleteAllTransactions(ctx context.Context) error {
	return s.transactionRepo.DeleteAllTransactions(ctx)
}

// ReplaceHoldings collapses the transaction history into a single synthetic
// buy dated today with the given share count and average price.
//
// This is a deliberate, lossy simplification: per-lot history is discarded,
// so distributions that predate the synthetic buy no longer see any held
// shares and drop out of the realized totals.
func (s *TransactionService) ReplaceHoldings(ctx context.Context, shares int64, avgPrice float64) (*model.Transaction, error) {
	now := time.Now().UTC()
	transaction := model.Transaction{
		ID:        uuid.New().String(),
		Date:      now.Truncate(24 * time.Hour),
		Type:      model.TransactionTypeBuy,
		Quantity:  shares,
		Price:     avgPrice,
		CreatedAt: now,
	}

	if err := s.transactionRepo.ReplaceAll(ctx, []model.Transaction{transaction}); err != nil {
		return nil, fmt.Errorf("failed to replace holdings: %w", err)
	}

	return &transaction, nil
}

// ReplaceAll atomically swaps the full history. Used by session restore.
func (s *TransactionService) ReplaceAll(ctx context.Context, transactions []model.Transaction) error {
	return s.transactionRepo.ReplaceAll(ctx, transactions)
}
