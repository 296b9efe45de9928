package projection

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type ProjectionRenderer interface {
	RenderProjection(points []BudgetDataPoint) (string, error)
}

// CsvProjectionRendererImpl renders a projected timeline as CSV with a
// date,balance header row.
type CsvProjectionRendererImpl struct {
}

func NewCsvProjectionRenderer() *CsvProjectionRendererImpl {
	return &CsvProjectionRendererImpl{}
}

func (t *CsvProjectionRendererImpl) RenderProjection(points []BudgetDataPoint) (string, error) {
	data := make([][]string, 0, len(points)+1)
	data = append(data, []string{"date", "balance"})
	for _, point := range points {
		data = append(data, []string{point.Date.Format("2006-01-02"), point.Balance.String()})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
