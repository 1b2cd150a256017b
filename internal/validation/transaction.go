package validation

import (
	"fmt"
	"strings"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionTypeBuy: true, model.TransactionTypeSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: buy, sell
//   - quantity: Must be a positive integer
//   - price: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := transactionFieldErrors(req.Date, req.Type, req.Quantity, req.Price)
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateReplaceTransaction validates a transaction edit. Edits replace
// every field, so the constraints match creation.
func ValidateReplaceTransaction(req request.ReplaceTransactionRequest) error {
	errors := transactionFieldErrors(req.Date, req.Type, req.Quantity, req.Price)
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateReplaceHoldings validates a replace-holdings request.
func ValidateReplaceHoldings(req request.ReplaceHoldingsRequest) error {
	errors := make(map[string]string)

	if req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}
	if req.AvgPrice <= 0 {
		errors["avgPrice"] = "avgPrice must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSetPrice validates a manual price update.
func ValidateSetPrice(req request.SetPriceRequest) error {
	if req.Price <= 0 {
		return &Error{Fields: map[string]string{"price": "price must be positive"}}
	}
	return nil
}

func transactionFieldErrors(date, txType string, quantity int64, price float64) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(date) == "" {
		errors["date"] = "date is required"
	} else if _, err := ParseDate(date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(txType) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[txType] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", txType)
	}

	if quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	return errors
}
