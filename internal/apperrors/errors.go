package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNoCurrentPrice indicates that no current price has been stored or fetched yet.
	ErrNoCurrentPrice = errors.New("no current price available")

	// ErrSymbolNotFound indicates that a quote lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInsufficientDividendData indicates the schedule builder was given zero
	// historical distribution entries and cannot compute a trailing average.
	ErrInsufficientDividendData = errors.New("insufficient dividend data to build schedule")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidShareToken indicates a session share token failed verification or decoding.
	ErrInvalidShareToken = errors.New("invalid share token")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, as opposed to missing entities or validation issues.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveSchedule     = errors.New("failed to retrieve distribution schedule")
	ErrFailedToRetrievePrice        = errors.New("failed to retrieve current price")
	ErrFailedToEvaluateInvestment   = errors.New("failed to evaluate investment")
	ErrFailedToRefreshPrice         = errors.New("failed to refresh price")
	ErrFailedToRefreshDistributions = errors.New("failed to refresh distributions")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
	ErrInvalidCSVHeaders            = errors.New("invalid CSV headers")
)
