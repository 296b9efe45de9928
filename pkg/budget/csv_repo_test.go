package budget

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBudgetsEqual(t *testing.T, want Budget, got Budget) {
	t.Helper()
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.InitialValue.Equal(got.InitialValue), "initial value: want %s, got %s", want.InitialValue, got.InitialValue)
	assert.True(t, want.MonthlyContribution.Equal(got.MonthlyContribution), "monthly contribution: want %s, got %s", want.MonthlyContribution, got.MonthlyContribution)
	require.Len(t, got.Purchases, len(want.Purchases))
	for i := range want.Purchases {
		assert.True(t, want.Purchases[i].Date.Equal(got.Purchases[i].Date), "purchase %d date", i)
		assert.True(t, want.Purchases[i].Amount.Equal(got.Purchases[i].Amount), "purchase %d amount", i)
		assert.Equal(t, want.Purchases[i].Description, got.Purchases[i].Description, "purchase %d description", i)
		assert.Equal(t, want.Purchases[i].Enabled, got.Purchases[i].Enabled, "purchase %d enabled", i)
	}
}

func TestCsvBudgetRepo_RoundTrip(t *testing.T) {
	repo := NewCsvBudgetRepo(t.TempDir())
	ctx := context.Background()

	amount, _ := decimal.NewFromString("19.99")
	initial, _ := decimal.NewFromString("1000.50")
	stored := Budget{
		Name:                "TV fund",
		InitialValue:        initial,
		MonthlyContribution: decimal.NewFromInt(100),
		Purchases: []Purchase{
			{Date: date(2024, time.March, 15), Amount: amount, Description: "TV, a big one", Enabled: true},
			{Date: date(2024, time.March, 15), Amount: decimal.NewFromInt(5), Description: "cables", Enabled: false},
		},
	}

	require.NoError(t, repo.Store(ctx, stored))

	loaded, err := repo.Load(ctx, "TV fund")
	require.NoError(t, err)
	assertBudgetsEqual(t, stored, loaded)
}

func TestCsvBudgetRepo_OverwriteKeepsSingleEntry(t *testing.T) {
	repo := NewCsvBudgetRepo(t.TempDir())
	ctx := context.Background()

	b := Budget{Name: "savings", InitialValue: decimal.NewFromInt(100), MonthlyContribution: decimal.NewFromInt(10)}
	require.NoError(t, repo.Store(ctx, b))

	b.InitialValue = decimal.NewFromInt(250)
	require.NoError(t, repo.Store(ctx, b))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"savings"}, names)

	loaded, err := repo.Load(ctx, "savings")
	require.NoError(t, err)
	assert.Equal(t, "250", loaded.InitialValue.String())
}

func TestCsvBudgetRepo_SimilarNamesDoNotCollide(t *testing.T) {
	// These names would map to the same file under character substitution.
	repo := NewCsvBudgetRepo(t.TempDir())
	ctx := context.Background()

	first := Budget{Name: "My Budget / 2024", InitialValue: decimal.NewFromInt(1), MonthlyContribution: decimal.Zero}
	second := Budget{Name: "My Budget ? 2024", InitialValue: decimal.NewFromInt(2), MonthlyContribution: decimal.Zero}
	require.NoError(t, repo.Store(ctx, first))
	require.NoError(t, repo.Store(ctx, second))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"My Budget / 2024", "My Budget ? 2024"}, names)

	loadedFirst, err := repo.Load(ctx, "My Budget / 2024")
	require.NoError(t, err)
	assert.Equal(t, "1", loadedFirst.InitialValue.String())

	loadedSecond, err := repo.Load(ctx, "My Budget ? 2024")
	require.NoError(t, err)
	assert.Equal(t, "2", loadedSecond.InitialValue.String())
}

func TestCsvBudgetRepo_LegacyFileWithoutEnabledColumn(t *testing.T) {
	dir := t.TempDir()
	// A file written before the enabled column existed.
	legacyFile := "legacy.csv"
	legacyContent := "name,initialValue,monthlyContribution\n" +
		"legacy,100,10\n" +
		"\n" +
		"date,amount,description\n" +
		"2024-01-05,25,coffee machine\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, legacyFile), []byte(legacyContent), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, indexFileName), []byte("name,file\nlegacy,"+legacyFile+"\n"), 0o644))

	repo := NewCsvBudgetRepo(dir)
	loaded, err := repo.Load(context.Background(), "legacy")

	require.NoError(t, err)
	require.Len(t, loaded.Purchases, 1)
	assert.True(t, loaded.Purchases[0].Enabled, "missing enabled column must default to true")
	assert.Equal(t, "25", loaded.Purchases[0].Amount.String())
}

func TestCsvBudgetRepo_MalformedDateFailsFast(t *testing.T) {
	dir := t.TempDir()
	content := "name,initialValue,monthlyContribution\n" +
		"broken,100,10\n" +
		"\n" +
		"date,amount,description,enabled\n" +
		"not-a-date,25,coffee,true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, indexFileName), []byte("name,file\nbroken,broken.csv\n"), 0o644))

	repo := NewCsvBudgetRepo(dir)
	_, err := repo.Load(context.Background(), "broken")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid purchase date")
}

func TestCsvBudgetRepo_LoadUnknown(t *testing.T) {
	repo := NewCsvBudgetRepo(t.TempDir())

	_, err := repo.Load(context.Background(), "missing")

	assert.True(t, errors.Is(err, ErrBudgetNotFound))
}

func TestCsvBudgetRepo_Delete(t *testing.T) {
	repo := NewCsvBudgetRepo(t.TempDir())
	ctx := context.Background()

	b := Budget{Name: "gone", InitialValue: decimal.NewFromInt(1), MonthlyContribution: decimal.Zero}
	require.NoError(t, repo.Store(ctx, b))
	require.NoError(t, repo.Delete(ctx, "gone"))

	_, err := repo.Load(ctx, "gone")
	assert.True(t, errors.Is(err, ErrBudgetNotFound))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	assert.True(t, errors.Is(repo.Delete(ctx, "gone"), ErrBudgetNotFound))
}
