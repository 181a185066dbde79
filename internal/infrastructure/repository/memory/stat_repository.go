package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
)

type StatRepository struct {
	mu   sync.RWMutex
	rows map[string]playerstats.NormalizedStat
}

func NewStatRepository() *StatRepository {
	return &StatRepository{rows: make(map[string]playerstats.NormalizedStat)}
}

func (r *StatRepository) UpsertRows(_ context.Context, rows []playerstats.NormalizedStat) error {
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("upsert stat row %d: %w", i, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		r.rows[row.Key()] = row
	}

	return nil
}

func (r *StatRepository) ListByGame(_ context.Context, gameID string) ([]playerstats.NormalizedStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.NormalizedStat, 0)
	for _, row := range r.rows {
		if row.GameID == gameID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}
