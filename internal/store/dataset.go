package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/preclinic/triage/internal/domain"
)

// DatasetStore loads condition/symptom rows from Postgres. Rows are ordered
// by id so the knowledge base is rebuilt with the same condition enumeration
// order on every start, which the scorer's tie-breaking depends on.
type DatasetStore struct {
	db *pgxpool.Pool
}

func NewDatasetStore(db *pgxpool.Pool) *DatasetStore {
	return &DatasetStore{db: db}
}

func (s *DatasetStore) Records(ctx context.Context) ([]domain.ConditionRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT condition, symptoms FROM conditions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query conditions: %w", err)
	}
	defer rows.Close()

	var records []domain.ConditionRecord
	for rows.Next() {
		var rec domain.ConditionRecord
		if err := rows.Scan(&rec.Condition, &rec.Symptoms); err != nil {
			return nil, fmt.Errorf("scan condition row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
