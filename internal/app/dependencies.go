package app

import (
	"fmt"

	"github.com/budgetviz/budgetviz/internal/config"
	"github.com/budgetviz/budgetviz/internal/database"
	"github.com/budgetviz/budgetviz/internal/utils"
	"github.com/budgetviz/budgetviz/pkg/budget"
	"github.com/budgetviz/budgetviz/pkg/projection"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	Clock                 utils.Clock
	ProjectionService     *projection.ServiceImpl
	CsvProjectionRenderer *projection.CsvProjectionRendererImpl
	ProjectionHandler     *projection.Handler
}

// BuildDependencies initializes the selected budget store and wires all
// services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	switch cfg.Storage.Type {
	case "csv":
		deps.BudgetRepo = budget.NewCsvBudgetRepo(cfg.Storage.Dir)
	case "postgres":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		deps.BudgetRepo = budget.NewPostgresBudgetRepo(db)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.Clock = &utils.SystemClock{}
	deps.ProjectionService = projection.NewService(deps.Clock, projection.Options{
		IncludeDisabled: cfg.Projection.IncludeDisabledPurchases,
	})
	deps.CsvProjectionRenderer = projection.NewCsvProjectionRenderer()
	deps.ProjectionHandler = projection.NewHandler(deps.ProjectionService, deps.CsvProjectionRenderer)

	return deps, nil
}
