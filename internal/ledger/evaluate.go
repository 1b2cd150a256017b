package ledger

import (
	"sort"
	"time"

	"github.com/mphinance/ulty-tracker/internal/model"
)

// Result bundles the outputs of a full evaluation: the per-distribution
// snapshot sequence (including estimated entries, for projection display)
// and the aggregate present-day investment view. Investment is nil when the
// transaction list is empty: no transactions means no position, and callers
// branch on that.
type Result struct {
	Snapshots  []model.DividendSnapshot `json:"snapshots"`
	Investment *model.Investment        `json:"investment"`
}

// Evaluate walks the distribution schedule in ascending date order against
// the transaction history and derives the snapshot sequence and aggregate
// metrics. It is a pure function: identical inputs yield identical outputs,
// and no input slice is mutated.
//
// Shares held at a pay date reflect only transactions dated strictly before
// it; a same-day purchase does not qualify for that distribution. The
// snapshot running CumulativeROC accumulates across every entry, estimated
// ones included, but the Investment aggregates count only realized entries:
// pay date not after now, paid on a non-zero holding.
//
// Zero shares and a negative adjusted cost basis are valid states, not
// errors; Evaluate never fails on validated input.
func Evaluate(transactions []model.Transaction, schedule []model.DividendRate, currentPrice float64, now time.Time) Result {
	if len(transactions) == 0 {
		return Result{Snapshots: []model.DividendSnapshot{}}
	}

	txs := make([]model.Transaction, len(transactions))
	copy(txs, transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})

	snapshots := make([]model.DividendSnapshot, 0, len(schedule))

	// Both sequences are sorted ascending, so shares and cost basis at each
	// pay date come from a single forward merge pass instead of rescanning
	// the transaction list per entry.
	var (
		next          int
		sharesHeld    int64
		costBasis     float64
		cumulativeROC float64

		realizedDividends float64
		realizedROC       float64
	)

	for _, rate := range schedule {
		for next < len(txs) && txs[next].Date.Before(rate.Date) {
			sharesHeld += signedQuantity(txs[next])
			costBasis += signedAmount(txs[next])
			next++
		}

		amount := float64(sharesHeld) * rate.PerShareAmount
		rocPortion := amount * rate.ROCPercentage / 100
		cumulativeROC += rocPortion

		if sharesHeld > 0 && !rate.Date.After(now) {
			realizedDividends += amount
			realizedROC += rocPortion
		}

		adjusted := costBasis - cumulativeROC
		var breakEven float64
		if sharesHeld > 0 {
			breakEven = adjusted / float64(sharesHeld)
		}

		snapshots = append(snapshots, model.DividendSnapshot{
			PayDate:            rate.Date,
			DistributionRate:   rate.PerShareAmount,
			SharesHeldAtDate:   sharesHeld,
			DistributionAmount: amount,
			ROCPortion:         rocPortion,
			CumulativeROC:      cumulativeROC,
			CostBasisAtDate:    costBasis,
			AdjustedCostBasis:  adjusted,
			BreakEvenPrice:     breakEven,
			IsEstimated:        rate.IsEstimated,
		})
	}

	// Present-day holding sums every transaction, unbounded by any pay date.
	var totalShares int64
	var totalCost float64
	for _, tx := range txs {
		totalShares += signedQuantity(tx)
		totalCost += signedAmount(tx)
	}

	inv := deriveInvestment(totalShares, totalCost, currentPrice, realizedDividends, realizedROC)
	return Result{Snapshots: snapshots, Investment: &inv}
}

// UpdateCurrentPrice recomputes only the price-dependent fields of an
// investment. The result is identical to a full re-evaluation at the same
// share count, cost basis, and realized distribution state.
func UpdateCurrentPrice(inv model.Investment, price float64) model.Investment {
	inv.CurrentPrice = price
	inv.MarketValue = float64(inv.Shares) * price
	inv.CapitalGainLoss = inv.MarketValue - inv.CostBasis
	inv.AdjustedCapitalGainLoss = inv.MarketValue - inv.AdjustedCostBasis
	inv.TotalProfitLoss = inv.CapitalGainLoss + inv.TotalDividendsReceived

	nonROC := inv.TotalDividendsReceived - inv.CumulativeROC
	inv.AdjustedTotalProfitLoss = inv.AdjustedCapitalGainLoss + nonROC

	inv.ROI = 0
	if inv.CostBasis > 0 {
		inv.ROI = inv.TotalProfitLoss / inv.CostBasis * 100
	}
	inv.AdjustedROI = 0
	if inv.AdjustedCostBasis > 0 {
		inv.AdjustedROI = inv.AdjustedTotalProfitLoss / inv.AdjustedCostBasis * 100
	}
	return inv
}

// deriveInvestment computes the aggregate view from the present-day totals
// and the realized distribution sums.
//
// The adjusted P&L keeps ROC out of the dividend term because it already
// flows in through the reduced cost basis; reworking this into the more
// obvious formula double-counts ROC.
func deriveInvestment(totalShares int64, totalCost, currentPrice, realizedDividends, realizedROC float64) model.Investment {
	inv := model.Investment{
		Shares:                 totalShares,
		CostBasis:              totalCost,
		AdjustedCostBasis:      totalCost - realizedROC,
		TotalDividendsReceived: realizedDividends,
		CumulativeROC:          realizedROC,
	}
	if totalShares > 0 {
		inv.AvgPrice = totalCost / float64(totalShares)
		inv.BreakEvenPrice = inv.AdjustedCostBasis / float64(totalShares)
	}
	return UpdateCurrentPrice(inv, currentPrice)
}

func signedQuantity(tx model.Transaction) int64 {
	if tx.Type == model.TransactionTypeSell {
		return -tx.Quantity
	}
	return tx.Quantity
}

func signedAmount(tx model.Transaction) float64 {
	if tx.Type == model.TransactionTypeSell {
		return -tx.Amount()
	}
	return tx.Amount()
}
