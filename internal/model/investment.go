package model

// Investment is the aggregate present-day view of the position.
//
// TotalDividendsReceived and CumulativeROC cover realized distributions only:
// entries whose pay date is not in the future and that were paid on a non-zero
// holding. AdjustedCostBasis may go negative when cumulative ROC exceeds the
// original cost basis; that is a valid state, not an error.
type Investment struct {
	Shares                  int64   `json:"shares"`
	AvgPrice                float64 `json:"avgPrice"`
	CostBasis               float64 `json:"costBasis"`
	AdjustedCostBasis       float64 `json:"adjustedCostBasis"`
	CurrentPrice            float64 `json:"currentPrice"`
	MarketValue             float64 `json:"marketValue"`
	CapitalGainLoss         float64 `json:"capitalGainLoss"`
	AdjustedCapitalGainLoss float64 `json:"adjustedCapitalGainLoss"`
	TotalDividendsReceived  float64 `json:"totalDividendsReceived"`
	CumulativeROC           float64 `json:"cumulativeRoc"`
	TotalProfitLoss         float64 `json:"totalProfitLoss"`
	AdjustedTotalProfitLoss float64 `json:"adjustedTotalProfitLoss"`
	ROI                     float64 `json:"roi"`
	AdjustedROI             float64 `json:"adjustedRoi"`
	BreakEvenPrice          float64 `json:"breakEvenPrice"`
}
