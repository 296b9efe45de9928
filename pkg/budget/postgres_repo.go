package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// PostgresBudgetRepo stores budgets in Postgres. The budget name is a unique
// column; purchases keep their stored order through a position column.
type PostgresBudgetRepo struct {
	db *pgxpool.Pool
}

func NewPostgresBudgetRepo(db *pgxpool.Pool) *PostgresBudgetRepo {
	return &PostgresBudgetRepo{db: db}
}

func (r *PostgresBudgetRepo) Store(ctx context.Context, budget Budget) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback(ctx)

	var budgetId int
	err = tx.QueryRow(ctx,
		`INSERT INTO budget (name, initial_value, monthly_contribution)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE
		     SET initial_value = EXCLUDED.initial_value,
		         monthly_contribution = EXCLUDED.monthly_contribution
		 RETURNING id`,
		budget.Name, budget.InitialValue.String(), budget.MonthlyContribution.String(),
	).Scan(&budgetId)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return err
	}

	// Replace the purchase list wholesale; purchases have no stable identity.
	if _, err := tx.Exec(ctx, "DELETE FROM purchase WHERE budget_id = $1", budgetId); err != nil {
		err := fmt.Errorf("could not clear purchases: %w", err)
		log.Error(err)
		return err
	}
	for position, p := range budget.Purchases {
		_, err := tx.Exec(ctx,
			`INSERT INTO purchase (budget_id, purchase_date, amount, description, enabled, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			budgetId, p.Date, p.Amount.String(), p.Description, p.Enabled, position,
		)
		if err != nil {
			err := fmt.Errorf("could not store purchase: %w", err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresBudgetRepo) Load(ctx context.Context, name string) (Budget, error) {
	var (
		budgetId               int
		initialValueStr        string
		monthlyContributionStr string
	)
	err := r.db.QueryRow(ctx,
		"SELECT id, initial_value::text, monthly_contribution::text FROM budget WHERE name = $1",
		name,
	).Scan(&budgetId, &initialValueStr, &monthlyContributionStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Budget{}, fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
		}
		err := fmt.Errorf("could not query budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}

	initialValue, err := decimal.NewFromString(initialValueStr)
	if err != nil {
		return Budget{}, fmt.Errorf("invalid initial value %q: %w", initialValueStr, err)
	}
	monthlyContribution, err := decimal.NewFromString(monthlyContributionStr)
	if err != nil {
		return Budget{}, fmt.Errorf("invalid monthly contribution %q: %w", monthlyContributionStr, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT purchase_date, amount::text, description, enabled
		 FROM purchase WHERE budget_id = $1 ORDER BY position`,
		budgetId,
	)
	if err != nil {
		err := fmt.Errorf("could not query purchases: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var (
			date      time.Time
			amountStr string
			purchase  Purchase
		)
		if err := rows.Scan(&date, &amountStr, &purchase.Description, &purchase.Enabled); err != nil {
			err := fmt.Errorf("could not scan purchase: %w", err)
			log.Error(err)
			return Budget{}, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return Budget{}, fmt.Errorf("invalid purchase amount %q: %w", amountStr, err)
		}
		purchase.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		purchase.Amount = amount
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over purchases: %w", err)
		log.Error(err)
		return Budget{}, err
	}

	return Budget{
		Name:                name,
		InitialValue:        initialValue,
		MonthlyContribution: monthlyContribution,
		Purchases:           purchases,
	}, nil
}

func (r *PostgresBudgetRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT name FROM budget ORDER BY name")
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			err := fmt.Errorf("could not scan budget name: %w", err)
			log.Error(err)
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	return names, nil
}

func (r *PostgresBudgetRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM budget WHERE name = $1", name)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
	}
	return nil
}
