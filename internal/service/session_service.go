package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/session"
)

// SessionService packages the tracker state into share tokens and restores
// it from them. Restore replaces the stored history wholesale; the incoming
// payload is validated before anything is written.
type SessionService struct {
	codec              *session.Codec
	transactionService *TransactionService
	priceService       *PriceService
}

// NewSessionService creates a new SessionService with the provided service dependencies.
func NewSessionService(
	codec *session.Codec,
	transactionService *TransactionService,
	priceService *PriceService,
) *SessionService {
	return &SessionService{
		codec:              codec,
		transactionService: transactionService,
		priceService:       priceService,
	}
}

// Share encodes the current transaction history and price into a token.
func (s *SessionService) Share(ctx context.Context) (string, error) {
	transactions, err := s.transactionService.GetTransactions(ctx)
	if err != nil {
		return "", err
	}

	price, err := s.priceService.GetCurrentPrice(ctx)
	if errors.Is(err, apperrors.ErrNoCurrentPrice) {
		price = 0
	} else if err != nil {
		return "", err
	}

	return s.codec.Encode(session.Payload{
		Transactions: transactions,
		CurrentPrice: price,
	})
}

// Restore decodes a share token and replaces the stored state with its
// contents. The decoded transactions are sanity-checked first so a token
// from a newer client cannot write rows the evaluator would choke on.
func (s *SessionService) Restore(ctx context.Context, token string) (int, error) {
	payload, err := s.codec.Decode(token)
	if err != nil {
		return 0, err
	}

	for _, transaction := range payload.Transactions {
		if err := transaction.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidShareToken, err)
		}
	}

	if err := s.transactionService.ReplaceAll(ctx, payload.Transactions); err != nil {
		return 0, fmt.Errorf("failed to restore session: %w", err)
	}

	if payload.CurrentPrice > 0 {
		if err := s.priceService.SetCurrentPrice(ctx, payload.CurrentPrice); err != nil {
			return 0, err
		}
	}

	return len(payload.Transactions), nil
}
