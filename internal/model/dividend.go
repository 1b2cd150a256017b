package model

import "time"

// DividendRate represents one distribution entry: a per-share amount paid on
// a given date, with the portion treated as return of capital.
// Historical entries come from the dividend_rate table; estimated entries are
// generated by the schedule builder and never persisted.
type DividendRate struct {
	Date           time.Time `json:"date"`
	PerShareAmount float64   `json:"perShareAmount"`
	ROCPercentage  float64   `json:"rocPercentage"`
	IsEstimated    bool      `json:"isEstimated"`
}

// DividendSnapshot is the derived portfolio state at a single distribution's
// pay date. One snapshot exists per schedule entry, including estimated ones.
//
// SharesHeldAtDate reflects only transactions dated strictly before PayDate;
// a purchase on the pay date itself does not qualify for that distribution.
// CumulativeROC is a running sum across the ascending-date snapshot sequence,
// carried through estimated entries so the projection display stays continuous.
type DividendSnapshot struct {
	PayDate            time.Time `json:"payDate"`
	DistributionRate   float64   `json:"distributionRate"`
	SharesHeldAtDate   int64     `json:"sharesHeldAtDate"`
	DistributionAmount float64   `json:"distributionAmount"`
	ROCPortion         float64   `json:"rocPortion"`
	CumulativeROC      float64   `json:"cumulativeRoc"`
	CostBasisAtDate    float64   `json:"costBasisAtDate"`
	AdjustedCostBasis  float64   `json:"adjustedCostBasis"`
	BreakEvenPrice     float64   `json:"breakEvenPrice"`
	IsEstimated        bool      `json:"isEstimated"`
}
