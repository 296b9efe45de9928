package budget

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/budgetviz/budgetviz/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	container, newPool := test_utils.TestWithDB()
	db = newPool()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func TestPostgresBudgetRepo_StoreAndLoad(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewPostgresBudgetRepo(db)
	amount, _ := decimal.NewFromString("19.99")
	stored := Budget{
		Name:                "pg-roundtrip",
		InitialValue:        decimal.NewFromInt(1000),
		MonthlyContribution: decimal.NewFromInt(100),
		Purchases: []Purchase{
			{Date: date(2024, time.March, 15), Amount: amount, Description: "TV", Enabled: true},
			{Date: date(2024, time.March, 15), Amount: decimal.NewFromInt(5), Description: "cables", Enabled: false},
		},
	}

	// when
	require.NoError(t, repo.Store(ctx, stored))

	// then
	loaded, err := repo.Load(ctx, "pg-roundtrip")
	require.NoError(t, err)
	assertBudgetsEqual(t, stored, loaded)
}

func TestPostgresBudgetRepo_StoreReplacesPurchases(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewPostgresBudgetRepo(db)
	b := Budget{
		Name:                "pg-update",
		InitialValue:        decimal.NewFromInt(100),
		MonthlyContribution: decimal.NewFromInt(10),
		Purchases: []Purchase{
			{Date: date(2024, time.January, 1), Amount: decimal.NewFromInt(1), Enabled: true},
			{Date: date(2024, time.February, 1), Amount: decimal.NewFromInt(2), Enabled: true},
		},
	}
	require.NoError(t, repo.Store(ctx, b))

	// when
	b.InitialValue = decimal.NewFromInt(200)
	b.Purchases = b.Purchases[:1]
	require.NoError(t, repo.Store(ctx, b))

	// then
	loaded, err := repo.Load(ctx, "pg-update")
	require.NoError(t, err)
	assert.Equal(t, "200", loaded.InitialValue.String())
	assert.Len(t, loaded.Purchases, 1)
}

func TestPostgresBudgetRepo_List(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresBudgetRepo(db)
	require.NoError(t, repo.Store(ctx, Budget{Name: "pg-list-b", InitialValue: decimal.Zero, MonthlyContribution: decimal.Zero}))
	require.NoError(t, repo.Store(ctx, Budget{Name: "pg-list-a", InitialValue: decimal.Zero, MonthlyContribution: decimal.Zero}))

	names, err := repo.List(ctx)
	require.NoError(t, err)

	// Names come back sorted.
	var listed []string
	for _, name := range names {
		if name == "pg-list-a" || name == "pg-list-b" {
			listed = append(listed, name)
		}
	}
	assert.Equal(t, []string{"pg-list-a", "pg-list-b"}, listed)
}

func TestPostgresBudgetRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresBudgetRepo(db)
	require.NoError(t, repo.Store(ctx, Budget{Name: "pg-doomed", InitialValue: decimal.Zero, MonthlyContribution: decimal.Zero}))

	require.NoError(t, repo.Delete(ctx, "pg-doomed"))

	_, err := repo.Load(ctx, "pg-doomed")
	assert.True(t, errors.Is(err, ErrBudgetNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, "pg-doomed"), ErrBudgetNotFound))
}

func TestPostgresBudgetRepo_LoadUnknown(t *testing.T) {
	repo := NewPostgresBudgetRepo(db)

	_, err := repo.Load(context.Background(), "pg-missing")

	assert.True(t, errors.Is(err, ErrBudgetNotFound))
}
