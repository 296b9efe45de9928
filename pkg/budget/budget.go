package budget

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a one-time dated withdrawal against a budget. Date carries no
// time component (UTC midnight).
type Purchase struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	// Enabled governs whether the purchase participates in calculations.
	Enabled bool
}

// Budget is a named container of a starting balance, a recurring monthly
// contribution, and the purchase history. Name is also the storage key.
type Budget struct {
	Name                string
	InitialValue        decimal.Decimal
	MonthlyContribution decimal.Decimal
	Purchases           []Purchase
}

// IncludedPurchases returns the purchases that participate in calculations.
// Disabled purchases are filtered out unless includeDisabled is set.
func (b Budget) IncludedPurchases(includeDisabled bool) []Purchase {
	if includeDisabled {
		return b.Purchases
	}
	included := make([]Purchase, 0, len(b.Purchases))
	for _, p := range b.Purchases {
		if p.Enabled {
			included = append(included, p)
		}
	}
	return included
}

// SortedByDate returns a copy of purchases ordered by date ascending.
// The sort is stable: purchases on the same day keep their original order.
func SortedByDate(purchases []Purchase) []Purchase {
	sorted := make([]Purchase, len(purchases))
	copy(sorted, purchases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// TotalAmount sums the amounts of the given purchases.
func TotalAmount(purchases []Purchase) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		total = total.Add(p.Amount)
	}
	return total
}
