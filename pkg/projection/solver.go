package projection

import (
	"time"

	"github.com/budgetviz/budgetviz/pkg/budget"
	"github.com/shopspring/decimal"
)

// SuggestContribution solves for the flat monthly contribution that zeroes
// the balance by the month of the last purchase:
//
//	initialValue + monthlyAmount*totalMonths - totalPurchases = 0
//
// totalMonths counts the current month as month one and is floored at 1, so
// budgets whose last purchase is this month or already past still get a
// one-month plan. A negative solution means the balance already covers all
// purchases; the suggestion is clamped to zero and the final balance is
// recomputed from the clamped amount.
func SuggestContribution(b budget.Budget, today time.Time, opts Options) SuggestedContribution {
	purchases := budget.SortedByDate(b.IncludedPurchases(opts.IncludeDisabled))

	if len(purchases) == 0 {
		return SuggestedContribution{
			MonthlyAmount: decimal.Zero,
			TotalMonths:   0,
			FinalBalance:  b.InitialValue,
		}
	}

	today = dateOnly(today)
	lastPurchaseDate := purchases[len(purchases)-1].Date
	totalPurchases := budget.TotalAmount(purchases)

	monthsDiff := (lastPurchaseDate.Year()-today.Year())*12 +
		int(lastPurchaseDate.Month()) - int(today.Month())
	totalMonths := monthsDiff + 1
	if totalMonths < 1 {
		totalMonths = 1
	}

	months := decimal.NewFromInt(int64(totalMonths))
	monthlyAmount := totalPurchases.Sub(b.InitialValue).Div(months)
	if monthlyAmount.IsNegative() {
		monthlyAmount = decimal.Zero
	}

	finalBalance := b.InitialValue.Add(monthlyAmount.Mul(months)).Sub(totalPurchases)

	return SuggestedContribution{
		MonthlyAmount: monthlyAmount,
		TotalMonths:   totalMonths,
		FinalBalance:  finalBalance,
	}
}
