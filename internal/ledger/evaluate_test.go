package ledger_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/mphinance/ulty-tracker/internal/ledger"
	"github.com/mphinance/ulty-tracker/internal/model"
)

func buy(date time.Time, qty int64, price float64) model.Transaction {
	return model.Transaction{
		ID:       "tx-buy",
		Date:     date,
		Type:     model.TransactionTypeBuy,
		Quantity: qty,
		Price:    price,
	}
}

func sell(date time.Time, qty int64, price float64) model.Transaction {
	return model.Transaction{
		ID:       "tx-sell",
		Date:     date,
		Type:     model.TransactionTypeSell,
		Quantity: qty,
		Price:    price,
	}
}

func TestEvaluate_SingleDistribution(t *testing.T) {
	// 100 shares at 6.00 bought 2025-01-01; 0.4653 per share paid 2025-03-07
	// as 100% ROC.
	transactions := []model.Transaction{buy(day(2025, time.January, 1), 100, 6.00)}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.4653, ROCPercentage: 100},
	}
	now := day(2025, time.June, 1)

	result := ledger.Evaluate(transactions, schedule, 6.10, now)

	if len(result.Snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(result.Snapshots))
	}
	snap := result.Snapshots[0]

	if snap.SharesHeldAtDate != 100 {
		t.Errorf("Expected 100 shares held, got %d", snap.SharesHeldAtDate)
	}
	if !almostEqual(snap.DistributionAmount, 46.53) {
		t.Errorf("Expected distribution amount 46.53, got %v", snap.DistributionAmount)
	}
	if !almostEqual(snap.ROCPortion, 46.53) {
		t.Errorf("Expected ROC portion 46.53, got %v", snap.ROCPortion)
	}
	if !almostEqual(snap.CumulativeROC, 46.53) {
		t.Errorf("Expected cumulative ROC 46.53, got %v", snap.CumulativeROC)
	}
	if !almostEqual(snap.AdjustedCostBasis, 553.47) {
		t.Errorf("Expected adjusted cost basis 553.47, got %v", snap.AdjustedCostBasis)
	}
	if !almostEqual(snap.BreakEvenPrice, 5.5347) {
		t.Errorf("Expected breakeven price 5.5347, got %v", snap.BreakEvenPrice)
	}

	inv := result.Investment
	if inv == nil {
		t.Fatal("Expected non-nil investment")
	}
	if inv.Shares != 100 {
		t.Errorf("Expected 100 shares, got %d", inv.Shares)
	}
	if !almostEqual(inv.TotalDividendsReceived, 46.53) {
		t.Errorf("Expected total dividends 46.53, got %v", inv.TotalDividendsReceived)
	}
	if !almostEqual(inv.AdjustedCostBasis, 553.47) {
		t.Errorf("Expected adjusted cost basis 553.47, got %v", inv.AdjustedCostBasis)
	}
	if !almostEqual(inv.BreakEvenPrice, 5.5347) {
		t.Errorf("Expected breakeven 5.5347, got %v", inv.BreakEvenPrice)
	}
}

func TestEvaluate_SameDayPurchaseExcluded(t *testing.T) {
	// A purchase dated exactly on the pay date must not qualify.
	transactions := []model.Transaction{buy(day(2025, time.January, 1), 100, 6.00)}
	schedule := []model.DividendRate{
		{Date: day(2025, time.January, 1), PerShareAmount: 0.4653, ROCPercentage: 100},
	}

	result := ledger.Evaluate(transactions, schedule, 6.00, day(2025, time.June, 1))

	snap := result.Snapshots[0]
	if snap.SharesHeldAtDate != 0 {
		t.Errorf("Expected 0 shares held on same-day purchase, got %d", snap.SharesHeldAtDate)
	}
	if snap.DistributionAmount != 0 {
		t.Errorf("Expected 0 distribution amount, got %v", snap.DistributionAmount)
	}
	if result.Investment.TotalDividendsReceived != 0 {
		t.Errorf("Expected no realized dividends, got %v", result.Investment.TotalDividendsReceived)
	}
}

func TestEvaluate_SellToZeroBeforePayDate(t *testing.T) {
	transactions := []model.Transaction{
		buy(day(2025, time.January, 1), 100, 6.00),
		sell(day(2025, time.February, 1), 100, 6.20),
	}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.4653, ROCPercentage: 100},
	}

	result := ledger.Evaluate(transactions, schedule, 6.10, day(2025, time.June, 1))

	snap := result.Snapshots[0]
	if snap.SharesHeldAtDate != 0 {
		t.Errorf("Expected 0 shares held after sell-out, got %d", snap.SharesHeldAtDate)
	}
	if snap.CumulativeROC != 0 {
		t.Errorf("Expected no ROC contribution on zero holding, got %v", snap.CumulativeROC)
	}
	if result.Investment.CumulativeROC != 0 {
		t.Errorf("Expected no realized ROC, got %v", result.Investment.CumulativeROC)
	}
}

func TestEvaluate_FutureEntriesProjectedNotRealized(t *testing.T) {
	transactions := []model.Transaction{buy(day(2025, time.January, 1), 100, 6.00)}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.4653, ROCPercentage: 100},
		{Date: day(2025, time.September, 5), PerShareAmount: 0.09, ROCPercentage: 100, IsEstimated: true},
	}
	now := day(2025, time.June, 1)

	result := ledger.Evaluate(transactions, schedule, 6.10, now)

	if len(result.Snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(result.Snapshots))
	}

	// The projection keeps accumulating through the estimated entry.
	future := result.Snapshots[1]
	if !almostEqual(future.CumulativeROC, 46.53+9.00) {
		t.Errorf("Expected projected cumulative ROC 55.53, got %v", future.CumulativeROC)
	}
	if !future.IsEstimated {
		t.Error("Expected future snapshot to be flagged estimated")
	}

	// The aggregates count realized entries only, so they differ from the
	// final snapshot's running totals.
	inv := result.Investment
	if !almostEqual(inv.TotalDividendsReceived, 46.53) {
		t.Errorf("Expected realized dividends 46.53, got %v", inv.TotalDividendsReceived)
	}
	if !almostEqual(inv.CumulativeROC, 46.53) {
		t.Errorf("Expected realized ROC 46.53, got %v", inv.CumulativeROC)
	}
}

func TestEvaluate_PayDateOnNowIsRealized(t *testing.T) {
	transactions := []model.Transaction{buy(day(2025, time.January, 1), 100, 6.00)}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.09, ROCPercentage: 100},
	}

	result := ledger.Evaluate(transactions, schedule, 6.00, day(2025, time.March, 7))

	if !almostEqual(result.Investment.TotalDividendsReceived, 9.00) {
		t.Errorf("Expected distribution paying today to be realized, got %v",
			result.Investment.TotalDividendsReceived)
	}
}

func TestEvaluate_OrderingStrictlyBefore(t *testing.T) {
	// Shares held at each pay date reflect only strictly earlier transactions.
	transactions := []model.Transaction{
		buy(day(2025, time.January, 1), 50, 6.00),
		buy(day(2025, time.March, 7), 50, 5.80),
		buy(day(2025, time.April, 1), 25, 5.90),
	}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.10, ROCPercentage: 100},
		{Date: day(2025, time.April, 4), PerShareAmount: 0.10, ROCPercentage: 100},
	}

	result := ledger.Evaluate(transactions, schedule, 6.00, day(2025, time.June, 1))

	if result.Snapshots[0].SharesHeldAtDate != 50 {
		t.Errorf("Expected 50 shares at first pay date, got %d", result.Snapshots[0].SharesHeldAtDate)
	}
	if result.Snapshots[1].SharesHeldAtDate != 125 {
		t.Errorf("Expected 125 shares at second pay date, got %d", result.Snapshots[1].SharesHeldAtDate)
	}
	if result.Investment.Shares != 125 {
		t.Errorf("Expected present-day holding of 125 shares, got %d", result.Investment.Shares)
	}
}

func TestEvaluate_ROCMonotonicity(t *testing.T) {
	transactions := []model.Transaction{
		buy(day(2025, time.January, 1), 100, 6.00),
		sell(day(2025, time.April, 15), 100, 6.20),
		buy(day(2025, time.May, 20), 40, 5.50),
	}
	var schedule []model.DividendRate
	for i := 0; i < 30; i++ {
		schedule = append(schedule, model.DividendRate{
			Date:           day(2025, time.March, 7).AddDate(0, 0, 7*i),
			PerShareAmount: 0.09,
			ROCPercentage:  95,
			IsEstimated:    i > 15,
		})
	}

	result := ledger.Evaluate(transactions, schedule, 6.00, day(2025, time.July, 1))

	prev := -1.0
	for i, snap := range result.Snapshots {
		if snap.CumulativeROC < prev {
			t.Fatalf("Cumulative ROC decreased at snapshot %d: %v -> %v", i, prev, snap.CumulativeROC)
		}
		prev = snap.CumulativeROC
	}
}

func TestEvaluate_Idempotence(t *testing.T) {
	transactions := []model.Transaction{
		buy(day(2025, time.January, 1), 100, 6.00),
		sell(day(2025, time.April, 15), 30, 6.20),
	}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.4653, ROCPercentage: 100},
		{Date: day(2025, time.April, 18), PerShareAmount: 0.0935, ROCPercentage: 100},
		{Date: day(2025, time.September, 5), PerShareAmount: 0.09, ROCPercentage: 100, IsEstimated: true},
	}
	now := day(2025, time.June, 1)

	first := ledger.Evaluate(transactions, schedule, 6.10, now)
	second := ledger.Evaluate(transactions, schedule, 6.10, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results from identical inputs")
	}
}

func TestEvaluate_EmptyTransactionList(t *testing.T) {
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.4653, ROCPercentage: 100},
	}

	result := ledger.Evaluate(nil, schedule, 6.00, day(2025, time.June, 1))

	if result.Investment != nil {
		t.Errorf("Expected nil investment for empty ledger, got %+v", result.Investment)
	}
	if result.Snapshots == nil {
		t.Error("Expected empty, non-nil snapshot slice")
	}
	if len(result.Snapshots) != 0 {
		t.Errorf("Expected no snapshots, got %d", len(result.Snapshots))
	}
}

func TestEvaluate_NegativeAdjustedCostBasis(t *testing.T) {
	// Enough ROC to overshoot the original cost basis; the result must not
	// be clamped at zero.
	transactions := []model.Transaction{buy(day(2024, time.January, 1), 100, 1.00)}
	var schedule []model.DividendRate
	for i := 0; i < 20; i++ {
		schedule = append(schedule, model.DividendRate{
			Date:           day(2024, time.February, 2).AddDate(0, 0, 7*i),
			PerShareAmount: 0.10,
			ROCPercentage:  100,
		})
	}

	result := ledger.Evaluate(transactions, schedule, 1.00, day(2025, time.January, 1))

	inv := result.Investment
	if inv.AdjustedCostBasis >= 0 {
		t.Errorf("Expected negative adjusted cost basis, got %v", inv.AdjustedCostBasis)
	}
	// A non-positive adjusted basis makes the adjusted ROI denominator
	// meaningless, so it reports zero.
	if inv.AdjustedROI != 0 {
		t.Errorf("Expected adjusted ROI 0 for negative basis, got %v", inv.AdjustedROI)
	}
	last := result.Snapshots[len(result.Snapshots)-1]
	if last.AdjustedCostBasis >= 0 {
		t.Errorf("Expected negative snapshot adjusted basis, got %v", last.AdjustedCostBasis)
	}
}

func TestEvaluate_InvestmentDerivation(t *testing.T) {
	transactions := []model.Transaction{buy(day(2025, time.January, 1), 100, 6.00)}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.50, ROCPercentage: 80},
	}

	result := ledger.Evaluate(transactions, schedule, 6.50, day(2025, time.June, 1))

	inv := result.Investment
	if !almostEqual(inv.AvgPrice, 6.00) {
		t.Errorf("Expected avg price 6.00, got %v", inv.AvgPrice)
	}
	if !almostEqual(inv.MarketValue, 650) {
		t.Errorf("Expected market value 650, got %v", inv.MarketValue)
	}
	if !almostEqual(inv.CapitalGainLoss, 50) {
		t.Errorf("Expected capital gain 50, got %v", inv.CapitalGainLoss)
	}
	// 50.00 paid, 40.00 of it ROC.
	if !almostEqual(inv.CumulativeROC, 40) {
		t.Errorf("Expected cumulative ROC 40, got %v", inv.CumulativeROC)
	}
	if !almostEqual(inv.AdjustedCostBasis, 560) {
		t.Errorf("Expected adjusted cost basis 560, got %v", inv.AdjustedCostBasis)
	}
	if !almostEqual(inv.AdjustedCapitalGainLoss, 90) {
		t.Errorf("Expected adjusted capital gain 90, got %v", inv.AdjustedCapitalGainLoss)
	}
	if !almostEqual(inv.TotalProfitLoss, 100) {
		t.Errorf("Expected total P&L 100, got %v", inv.TotalProfitLoss)
	}
	// Adjusted P&L adds only the non-ROC dividend portion: 90 + 10.
	if !almostEqual(inv.AdjustedTotalProfitLoss, 100) {
		t.Errorf("Expected adjusted total P&L 100, got %v", inv.AdjustedTotalProfitLoss)
	}
	if !almostEqual(inv.ROI, 100.0/600*100) {
		t.Errorf("Expected ROI %v, got %v", 100.0/600*100, inv.ROI)
	}
	if !almostEqual(inv.AdjustedROI, 100.0/560*100) {
		t.Errorf("Expected adjusted ROI %v, got %v", 100.0/560*100, inv.AdjustedROI)
	}
	if !almostEqual(inv.BreakEvenPrice, 5.60) {
		t.Errorf("Expected breakeven 5.60, got %v", inv.BreakEvenPrice)
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	transactions := []model.Transaction{
		buy(day(2025, time.March, 1), 10, 6.00),
		buy(day(2025, time.January, 1), 10, 6.00),
	}
	schedule := []model.DividendRate{
		{Date: day(2025, time.February, 7), PerShareAmount: 0.09, ROCPercentage: 100},
	}

	ledger.Evaluate(transactions, schedule, 6.00, day(2025, time.June, 1))

	if !transactions[0].Date.Equal(day(2025, time.March, 1)) {
		t.Error("Expected input transaction order to be preserved")
	}
}

func TestUpdateCurrentPrice_MatchesFullEvaluation(t *testing.T) {
	transactions := []model.Transaction{
		buy(day(2025, time.January, 1), 100, 6.00),
		sell(day(2025, time.April, 15), 30, 6.20),
	}
	schedule := []model.DividendRate{
		{Date: day(2025, time.March, 7), PerShareAmount: 0.4653, ROCPercentage: 100},
		{Date: day(2025, time.April, 18), PerShareAmount: 0.0935, ROCPercentage: 90},
	}
	now := day(2025, time.June, 1)

	base := ledger.Evaluate(transactions, schedule, 6.00, now)

	for _, price := range []float64{0, 4.25, 6.00, 7.777} {
		updated := ledger.UpdateCurrentPrice(*base.Investment, price)
		full := ledger.Evaluate(transactions, schedule, price, now)

		if !reflect.DeepEqual(updated, *full.Investment) {
			t.Errorf("Price update at %v diverged from full evaluation:\nupdate: %+v\nfull:   %+v",
				price, updated, *full.Investment)
		}
	}
}
