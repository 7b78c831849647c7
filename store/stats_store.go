package store

import (
	"context"

	"cupidwave/models"
)

// StatsStore reads the approximate table sizes shown on the admin dashboard.
type StatsStore struct {
	ds *DynamoService
}

func NewStatsStore(ds *DynamoService) *StatsStore {
	return &StatsStore{ds: ds}
}

// Counts returns DynamoDB's item count for every table (refreshed about every six hours).
func (s *StatsStore) Counts(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(models.AllTables))
	for _, table := range models.AllTables {
		n, err := s.ds.ItemCount(ctx, table)
		if err != nil {
			return nil, err
		}
		out[table] = n
	}
	return out, nil
}
