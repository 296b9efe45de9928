package budget

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	indexFileName = "index.csv"
	dateLayout    = "2006-01-02"
)

// CsvBudgetRepo stores one CSV file per budget in a data directory.
//
// Budget names are mapped to file names through an index file rather than by
// sanitizing the name itself, so two distinct names can never collide on disk
// and any non-empty name is storable.
//
// Budget file format:
//   - line 1: name,initialValue,monthlyContribution header
//   - line 2: budget metadata
//   - blank separator line
//   - purchase header, then one line per purchase (date,amount,description,enabled)
//
// Files written before the enabled column existed load with enabled = true.
type CsvBudgetRepo struct {
	dir string
	mu  sync.Mutex
}

func NewCsvBudgetRepo(dir string) *CsvBudgetRepo {
	return &CsvBudgetRepo{dir: dir}
}

func (r *CsvBudgetRepo) Store(ctx context.Context, budget Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		err := fmt.Errorf("could not create data directory: %w", err)
		log.Error(err)
		return err
	}

	index, order, err := r.readIndex()
	if err != nil {
		return err
	}

	fileName, ok := index[budget.Name]
	if !ok {
		fileName = uuid.NewString() + ".csv"
		index[budget.Name] = fileName
		order = append(order, budget.Name)
	}

	if err := r.writeBudgetFile(fileName, budget); err != nil {
		return err
	}
	if !ok {
		return r.writeIndex(index, order)
	}
	return nil
}

func (r *CsvBudgetRepo) Load(ctx context.Context, name string) (Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, _, err := r.readIndex()
	if err != nil {
		return Budget{}, err
	}
	fileName, ok := index[name]
	if !ok {
		return Budget{}, fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
	}

	f, err := os.Open(filepath.Join(r.dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Budget{}, fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
		}
		err := fmt.Errorf("could not open budget file: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows have different column counts
	rows, err := reader.ReadAll()
	if err != nil {
		err := fmt.Errorf("could not parse budget file for %q: %w", name, err)
		log.Error(err)
		return Budget{}, err
	}

	return parseBudgetRows(name, rows)
}

func (r *CsvBudgetRepo) List(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, order, err := r.readIndex()
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *CsvBudgetRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, order, err := r.readIndex()
	if err != nil {
		return err
	}
	fileName, ok := index[name]
	if !ok {
		return fmt.Errorf("budget %q: %w", name, ErrBudgetNotFound)
	}

	if err := os.Remove(filepath.Join(r.dir, fileName)); err != nil && !os.IsNotExist(err) {
		err := fmt.Errorf("could not remove budget file: %w", err)
		log.Error(err)
		return err
	}

	delete(index, name)
	remaining := make([]string, 0, len(order))
	for _, n := range order {
		if n != name {
			remaining = append(remaining, n)
		}
	}
	return r.writeIndex(index, remaining)
}

// readIndex returns the name-to-file mapping and the names in stored order.
// A missing index file means an empty store.
func (r *CsvBudgetRepo) readIndex() (map[string]string, []string, error) {
	f, err := os.Open(filepath.Join(r.dir, indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, []string{}, nil
		}
		err := fmt.Errorf("could not open budget index: %w", err)
		log.Error(err)
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		err := fmt.Errorf("could not parse budget index: %w", err)
		log.Error(err)
		return nil, nil, err
	}

	index := make(map[string]string)
	order := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header
		}
		index[row[0]] = row[1]
		order = append(order, row[0])
	}
	return index, order, nil
}

func (r *CsvBudgetRepo) writeIndex(index map[string]string, order []string) error {
	f, err := os.Create(filepath.Join(r.dir, indexFileName))
	if err != nil {
		err := fmt.Errorf("could not write budget index: %w", err)
		log.Error(err)
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	rows := [][]string{{"name", "file"}}
	for _, name := range order {
		rows = append(rows, []string{name, index[name]})
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing budget index: %v", err)
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (r *CsvBudgetRepo) writeBudgetFile(fileName string, budget Budget) error {
	f, err := os.Create(filepath.Join(r.dir, fileName))
	if err != nil {
		err := fmt.Errorf("could not write budget file: %w", err)
		log.Error(err)
		return err
	}
	defer f.Close()

	rows := [][]string{
		{"name", "initialValue", "monthlyContribution"},
		{budget.Name, budget.InitialValue.String(), budget.MonthlyContribution.String()},
		{},
		{"date", "amount", "description", "enabled"},
	}
	for _, p := range budget.Purchases {
		rows = append(rows, []string{
			p.Date.Format(dateLayout),
			p.Amount.String(),
			p.Description,
			strconv.FormatBool(p.Enabled),
		})
	}

	writer := csv.NewWriter(f)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing budget file: %v", err)
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func parseBudgetRows(name string, rows [][]string) (Budget, error) {
	if len(rows) < 2 || len(rows[1]) < 3 {
		return Budget{}, fmt.Errorf("invalid budget file format for %q", name)
	}

	metadata := rows[1]
	initialValue, err := decimal.NewFromString(metadata[1])
	if err != nil {
		return Budget{}, fmt.Errorf("invalid initial value %q: %w", metadata[1], err)
	}
	monthlyContribution, err := decimal.NewFromString(metadata[2])
	if err != nil {
		return Budget{}, fmt.Errorf("invalid monthly contribution %q: %w", metadata[2], err)
	}

	// Find the purchases header, then read subsequent rows.
	purchaseHeaderIdx := -1
	for i := 2; i < len(rows); i++ {
		if len(rows[i]) >= 2 && rows[i][0] == "date" && rows[i][1] == "amount" {
			purchaseHeaderIdx = i
			break
		}
	}

	var purchases []Purchase
	if purchaseHeaderIdx >= 0 {
		for _, row := range rows[purchaseHeaderIdx+1:] {
			if len(row) < 3 {
				continue
			}
			date, err := time.Parse(dateLayout, row[0])
			if err != nil {
				return Budget{}, fmt.Errorf("invalid purchase date %q: %w", row[0], err)
			}
			amount, err := decimal.NewFromString(row[1])
			if err != nil {
				return Budget{}, fmt.Errorf("invalid purchase amount %q: %w", row[1], err)
			}
			enabled := true
			if len(row) >= 4 {
				enabled = row[3] == "true"
			}
			purchases = append(purchases, Purchase{
				Date:        date,
				Amount:      amount,
				Description: row[2],
				Enabled:     enabled,
			})
		}
	}

	return Budget{
		Name:                metadata[0],
		InitialValue:        initialValue,
		MonthlyContribution: monthlyContribution,
		Purchases:           purchases,
	}, nil
}
