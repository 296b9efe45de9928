package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetDataPoint is one (date, balance) snapshot in the projected timeline.
type BudgetDataPoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// SuggestedContribution is the flat monthly deposit that offsets all
// purchases by the horizon of the last one.
type SuggestedContribution struct {
	MonthlyAmount decimal.Decimal
	TotalMonths   int
	FinalBalance  decimal.Decimal
}

// Options tune how the engine reads a budget's purchase list.
type Options struct {
	// IncludeDisabled feeds disabled purchases into the calculations
	// (the legacy behavior).
	IncludeDisabled bool
}

// dateOnly strips the time component, keeping the calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfMonth returns the last calendar day of t's month.
func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
