package projection

import (
	"context"

	"github.com/budgetviz/budgetviz/internal/utils"
	"github.com/budgetviz/budgetviz/pkg/budget"
)

type Service interface {
	ProjectBalance(ctx context.Context, b budget.Budget) []BudgetDataPoint
	SuggestContribution(ctx context.Context, b budget.Budget) SuggestedContribution
}

// ServiceImpl binds the pure projection engine to a clock so that "today" is
// injected rather than read from the system inside the algorithms.
type ServiceImpl struct {
	clock utils.Clock
	opts  Options
}

func NewService(clock utils.Clock, opts Options) *ServiceImpl {
	return &ServiceImpl{clock: clock, opts: opts}
}

func (s *ServiceImpl) ProjectBalance(ctx context.Context, b budget.Budget) []BudgetDataPoint {
	return ProjectBalance(b, s.clock.Now(), s.opts)
}

func (s *ServiceImpl) SuggestContribution(ctx context.Context, b budget.Budget) SuggestedContribution {
	return SuggestContribution(b, s.clock.Now(), s.opts)
}
