package budget

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type BudgetService interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (Budget, error)
	Save(ctx context.Context, budget Budget) error
	Delete(ctx context.Context, name string) error
}

type BudgetServiceImpl struct {
	repo BudgetRepo
}

func NewBudgetServiceImpl(repo BudgetRepo) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo}
}

func (s *BudgetServiceImpl) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

func (s *BudgetServiceImpl) Get(ctx context.Context, name string) (Budget, error) {
	return s.repo.Load(ctx, name)
}

func (s *BudgetServiceImpl) Save(ctx context.Context, budget Budget) error {
	if budget.Name == "" {
		return fmt.Errorf("budget name must not be empty")
	}
	if err := s.repo.Store(ctx, budget); err != nil {
		return fmt.Errorf("failed to save budget %q: %w", budget.Name, err)
	}
	log.Debugf("saved budget %q with %d purchases", budget.Name, len(budget.Purchases))
	return nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}
