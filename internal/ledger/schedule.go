// Package ledger implements the temporal accounting engine: building the
// forward distribution schedule and evaluating the transaction history
// against it. Everything in this package is pure computation over in-memory
// data; persistence and transport live elsewhere.
package ledger

import (
	"sort"
	"time"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/model"
)

// trailingWindow is the number of most recent historical entries averaged to
// estimate forward distribution amounts.
const trailingWindow = 6

// BuildSchedule extends the historical distribution table with estimated
// forward entries on a weekly cadence through horizonEnd inclusive.
//
// The estimated per-share amount is the arithmetic mean of the most recent
// trailingWindow historical entries (or however many exist, if fewer).
// Estimated entries start seven days after the last historical date, recur
// every seven days, and inherit a 100% ROC percentage. Generated dates that
// land in a skipped holiday window are omitted entirely; the cadence
// continues from the next seven-day tick.
//
// The input is expected to be sorted ascending by date; a copy is sorted
// defensively so a misordered table cannot corrupt the trailing average.
// Returns ErrInsufficientDividendData when no historical entries exist.
func BuildSchedule(historical []model.DividendRate, horizonEnd time.Time) ([]model.DividendRate, error) {
	if len(historical) == 0 {
		return nil, apperrors.ErrInsufficientDividendData
	}

	schedule := make([]model.DividendRate, len(historical))
	copy(schedule, historical)
	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].Date.Before(schedule[j].Date)
	})

	window := trailingWindow
	if len(schedule) < window {
		window = len(schedule)
	}
	var sum float64
	for _, rate := range schedule[len(schedule)-window:] {
		sum += rate.PerShareAmount
	}
	estimate := sum / float64(window)

	last := schedule[len(schedule)-1].Date
	for next := last.AddDate(0, 0, 7); !next.After(horizonEnd); next = next.AddDate(0, 0, 7) {
		if inHolidayWindow(next) {
			continue
		}
		schedule = append(schedule, model.DividendRate{
			Date:           next,
			PerShareAmount: estimate,
			ROCPercentage:  100,
			IsEstimated:    true,
		})
	}

	return schedule, nil
}

// inHolidayWindow reports whether the fund skips a distribution dated on d.
// The windows are fixed calendar approximations of the Independence Day,
// Thanksgiving, and year-end holiday breaks, not observed-holiday lookups.
// Known limitation: a distribution actually paid inside one of these windows
// will be missing from the projection until the historical table catches up.
func inHolidayWindow(d time.Time) bool {
	switch d.Month() {
	case time.July:
		return d.Day() == 4
	case time.November:
		return d.Day() >= 25 && d.Day() <= 30
	case time.December:
		return d.Day() >= 23
	default:
		return false
	}
}
