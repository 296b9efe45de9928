package budget

import (
	"context"
	"fmt"
	"sync"
)

// StubBudgetRepo is an in-memory BudgetRepo for tests.
type StubBudgetRepo struct {
	mu      sync.Mutex
	budgets map[string]Budget
	order   []string
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{budgets: map[string]Budget{}}
}

func (r *StubBudgetRepo) Store(ctx context.Context, budget Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[budget.Name]; !ok {
		r.order = append(r.order, budget.Name)
	}
	r.budgets[budget.Name] = budget
	return nil
}

func (r *StubBudgetRepo) Load(ctx context.Context, name string) (Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	budget, ok := r.budgets[name]
	if !ok {
		return Budget{}, fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
	}
	return budget, nil
}

func (r *StubBudgetRepo) List(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names, nil
}

func (r *StubBudgetRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[name]; !ok {
		return fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
	}
	delete(r.budgets, name)
	remaining := make([]string, 0, len(r.order))
	for _, n := range r.order {
		if n != name {
			remaining = append(remaining, n)
		}
	}
	r.order = remaining
	return nil
}

// Cleanup resets the stub between tests.
func (r *StubBudgetRepo) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets = map[string]Budget{}
	r.order = nil
}
