package kb

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/preclinic/triage/internal/domain"
)

// CSVSource reads condition/symptom records from a two-column CSV file
// (condition label, delimited symptom description). A header row is skipped
// when its first cell reads like one. Short or malformed rows are tolerated
// per the loader contract; only opening the file can fail.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Records(ctx context.Context) ([]domain.ConditionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []domain.ConditionRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable lines; the dataset is best-effort input.
			continue
		}
		if len(row) < 2 {
			continue
		}
		if len(records) == 0 && isHeader(row[0]) {
			continue
		}
		records = append(records, domain.ConditionRecord{
			Condition: row[0],
			Symptoms:  row[1],
		})
	}
	return records, nil
}

func isHeader(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "condition", "disease", "label", "name":
		return true
	}
	return false
}
