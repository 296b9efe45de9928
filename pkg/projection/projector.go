package projection

import (
	"time"

	"github.com/budgetviz/budgetviz/pkg/budget"
)

// ProjectBalance produces the chronological balance timeline for a budget:
// one point per purchase and one point per month-end contribution, walking
// day by day from min(today, first purchase) through the end of the month
// three months past max(today, last purchase).
//
// With no purchases it returns a synthetic one-year projection: today's
// balance followed by twelve month-end contribution points.
//
// The result is deterministic for a given budget and today; full decimal
// precision is carried between steps.
func ProjectBalance(b budget.Budget, today time.Time, opts Options) []BudgetDataPoint {
	today = dateOnly(today)
	purchases := budget.SortedByDate(b.IncludedPurchases(opts.IncludeDisabled))

	if len(purchases) == 0 {
		points := make([]BudgetDataPoint, 0, 13)
		balance := b.InitialValue
		points = append(points, BudgetDataPoint{Date: today, Balance: balance})

		year, month, _ := today.Date()
		for i := 1; i <= 12; i++ {
			// Day 0 of the following month is this month's last day.
			monthEnd := time.Date(year, month+time.Month(i), 0, 0, 0, 0, 0, time.UTC)
			balance = balance.Add(b.MonthlyContribution)
			points = append(points, BudgetDataPoint{Date: monthEnd, Balance: balance})
		}
		return points
	}

	start := purchases[0].Date
	if today.Before(start) {
		start = today
	}
	horizon := purchases[len(purchases)-1].Date
	if today.After(horizon) {
		horizon = today
	}
	// Lookahead buffer: run through the month-end three months past the horizon.
	end := endOfMonth(horizon.AddDate(0, 3, 0))

	balance := b.InitialValue
	points := []BudgetDataPoint{{Date: start, Balance: balance}}
	purchaseIdx := 0

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		// Drain all purchases dated today, in sorted order.
		for purchaseIdx < len(purchases) {
			purchaseDate := purchases[purchaseIdx].Date
			if purchaseDate.Equal(day) {
				balance = balance.Sub(purchases[purchaseIdx].Amount)
				points = append(points, BudgetDataPoint{Date: day, Balance: balance})
				purchaseIdx++
			} else if purchaseDate.After(day) {
				break
			} else {
				// Dated before the window start; skipped, never applied.
				purchaseIdx++
			}
		}

		// A month boundary after this day means this is the month's last
		// day: apply the contribution after any same-day purchases.
		next := day.AddDate(0, 0, 1)
		if next.Month() != day.Month() {
			balance = balance.Add(b.MonthlyContribution)
			points = append(points, BudgetDataPoint{Date: day, Balance: balance})
		}
	}

	return points
}
