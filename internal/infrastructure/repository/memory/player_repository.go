package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	nextID  int64
	players map[int64]player.Player
	now     func() time.Time
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{
		players: make(map[int64]player.Player, len(players)),
		now:     time.Now,
	}
	for _, p := range players {
		if p.ID <= 0 {
			repo.nextID++
			p.ID = repo.nextID
		} else if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
		repo.players[p.ID] = p
	}
	return repo
}

func (r *PlayerRepository) ListCandidates(_ context.Context, filter player.CandidateFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if !filter.IncludeInactive && !p.Active {
			continue
		}
		if filter.Team != "" && !strings.EqualFold(filter.Team, p.Team) {
			continue
		}
		if filter.Position != "" && !strings.EqualFold(filter.Position, p.Position) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *PlayerRepository) GetByExternalID(_ context.Context, espnID string) (player.Player, bool, error) {
	espnID = strings.TrimSpace(espnID)
	if espnID == "" {
		return player.Player{}, false, fmt.Errorf("external id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if p.ESPNID == espnID {
			return p, true, nil
		}
	}

	return player.Player{}, false, nil
}

// Upsert inserts or replaces a catalog row. The external link column is owned
// by WriteLink: updates never touch an existing link.
func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, fmt.Errorf("upsert player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.UpdatedAt = r.now()
	if item.ID > 0 {
		if existing, ok := r.players[item.ID]; ok {
			item.ESPNID = existing.ESPNID
		}
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
		r.players[item.ID] = item
		return item.ID, nil
	}

	r.nextID++
	item.ID = r.nextID
	r.players[item.ID] = item

	return item.ID, nil
}

func (r *PlayerRepository) WriteLink(_ context.Context, internalID int64, espnID string) error {
	espnID = strings.TrimSpace(espnID)
	if internalID <= 0 {
		return fmt.Errorf("write link: internal id is required")
	}
	if espnID == "" {
		return fmt.Errorf("write link: external id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.players[internalID]
	if !ok {
		return fmt.Errorf("write link: player %d not found", internalID)
	}

	// One external id maps to at most one internal player.
	for id, p := range r.players {
		if id != internalID && p.ESPNID == espnID {
			p.ESPNID = ""
			p.UpdatedAt = r.now()
			r.players[id] = p
		}
	}

	target.ESPNID = espnID
	target.UpdatedAt = r.now()
	r.players[internalID] = target

	return nil
}
