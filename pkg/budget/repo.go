package budget

import (
	"context"
	"errors"
)

// ErrBudgetNotFound is returned when no budget with the requested name exists.
var ErrBudgetNotFound = errors.New("budget not found")

type BudgetRepo interface {
	// Store persists the budget, replacing any existing budget with the same name.
	Store(ctx context.Context, budget Budget) error
	// Load returns the budget with the given name, or ErrBudgetNotFound.
	Load(ctx context.Context, name string) (Budget, error)
	// List returns the names of all stored budgets.
	List(ctx context.Context) ([]string, error)
	// Delete removes the budget with the given name, or returns ErrBudgetNotFound.
	Delete(ctx context.Context, name string) error
}
