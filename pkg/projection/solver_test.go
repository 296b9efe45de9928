package projection

import (
	"testing"
	"time"

	"github.com/budgetviz/budgetviz/pkg/budget"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSuggestContribution_NoPurchases(t *testing.T) {
	b := budget.Budget{
		InitialValue:        decimal.NewFromInt(1000),
		MonthlyContribution: decimal.NewFromInt(100),
	}

	suggestion := SuggestContribution(b, date(2024, time.January, 1), Options{})

	assert.Equal(t, "0", suggestion.MonthlyAmount.String())
	assert.Equal(t, 0, suggestion.TotalMonths)
	assert.Equal(t, "1000", suggestion.FinalBalance.String())
}

func TestSuggestContribution_AlreadyCovered(t *testing.T) {
	// Initial balance exceeds the purchases: the algebraic solution is
	// negative and must be clamped to zero, with the final balance
	// recomputed from the clamped amount.
	b := budget.Budget{
		InitialValue: decimal.NewFromInt(1000),
		Purchases: []budget.Purchase{
			{Date: date(2024, time.March, 15), Amount: decimal.NewFromInt(200), Enabled: true},
		},
	}

	suggestion := SuggestContribution(b, date(2024, time.January, 1), Options{})

	// Jan, Feb, Mar
	assert.Equal(t, 3, suggestion.TotalMonths)
	assert.Equal(t, "0", suggestion.MonthlyAmount.String())
	assert.False(t, suggestion.MonthlyAmount.IsNegative())
	assert.Equal(t, "800", suggestion.FinalBalance.String())
}

func TestSuggestContribution_ExactPlan(t *testing.T) {
	b := budget.Budget{
		InitialValue: decimal.Zero,
		Purchases: []budget.Purchase{
			{Date: date(2024, time.February, 10), Amount: decimal.NewFromInt(150), Enabled: true},
			{Date: date(2024, time.March, 15), Amount: decimal.NewFromInt(150), Enabled: true},
		},
	}

	suggestion := SuggestContribution(b, date(2024, time.January, 1), Options{})

	assert.Equal(t, 3, suggestion.TotalMonths)
	assert.Equal(t, "100", suggestion.MonthlyAmount.String())
	assert.Equal(t, "0", suggestion.FinalBalance.String())
}

func TestSuggestContribution_LastPurchaseInPast(t *testing.T) {
	b := budget.Budget{
		InitialValue: decimal.NewFromInt(200),
		Purchases: []budget.Purchase{
			{Date: date(2024, time.January, 10), Amount: decimal.NewFromInt(500), Enabled: true},
		},
	}

	suggestion := SuggestContribution(b, date(2024, time.May, 1), Options{})

	// The month difference is negative; the plan is floored at one month.
	assert.Equal(t, 1, suggestion.TotalMonths)
	assert.Equal(t, "300", suggestion.MonthlyAmount.String())
	assert.Equal(t, "0", suggestion.FinalBalance.String())
}

func TestSuggestContribution_LastPurchaseThisMonth(t *testing.T) {
	b := budget.Budget{
		InitialValue: decimal.Zero,
		Purchases: []budget.Purchase{
			{Date: date(2024, time.January, 20), Amount: decimal.NewFromInt(75), Enabled: true},
		},
	}

	suggestion := SuggestContribution(b, date(2024, time.January, 1), Options{})

	assert.Equal(t, 1, suggestion.TotalMonths)
	assert.Equal(t, "75", suggestion.MonthlyAmount.String())
	assert.Equal(t, "0", suggestion.FinalBalance.String())
}

func TestSuggestContribution_DisabledPurchasesExcluded(t *testing.T) {
	b := budget.Budget{
		InitialValue: decimal.NewFromInt(50),
		Purchases: []budget.Purchase{
			{Date: date(2024, time.March, 15), Amount: decimal.NewFromInt(200), Enabled: false},
		},
	}

	suggestion := SuggestContribution(b, date(2024, time.January, 1), Options{})
	assert.Equal(t, 0, suggestion.TotalMonths)
	assert.Equal(t, "50", suggestion.FinalBalance.String())

	legacy := SuggestContribution(b, date(2024, time.January, 1), Options{IncludeDisabled: true})
	assert.Equal(t, 3, legacy.TotalMonths)
	assert.Equal(t, "50", legacy.MonthlyAmount.String())
}

func TestSuggestContribution_YearBoundary(t *testing.T) {
	b := budget.Budget{
		InitialValue: decimal.Zero,
		Purchases: []budget.Purchase{
			{Date: date(2025, time.February, 5), Amount: decimal.NewFromInt(400), Enabled: true},
		},
	}

	suggestion := SuggestContribution(b, date(2024, time.November, 20), Options{})

	// Nov, Dec, Jan, Feb
	assert.Equal(t, 4, suggestion.TotalMonths)
	assert.Equal(t, "100", suggestion.MonthlyAmount.String())
	assert.Equal(t, "0", suggestion.FinalBalance.String())
}
