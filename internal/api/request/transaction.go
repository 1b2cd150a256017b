package request

// CreateTransactionRequest is the body for creating a transaction.
type CreateTransactionRequest struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// ReplaceTransactionRequest is the body for editing a transaction.
// Transactions are immutable facts, so an edit replaces every field; the ID
// in the URL is kept.
type ReplaceTransactionRequest struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// ReplaceHoldingsRequest collapses the transaction history into a single
// synthetic buy of Shares at AvgPrice dated today.
type ReplaceHoldingsRequest struct {
	Shares   int64   `json:"shares"`
	AvgPrice float64 `json:"avgPrice"`
}
