package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is an entry in the internal player catalog. ESPNID is empty until a
// link decision has been written for the player.
type Player struct {
	ID        int64
	Name      string
	Team      string
	Position  string
	Active    bool
	ESPNID    string
	UpdatedAt time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("player team is required")
	}
	if strings.TrimSpace(p.Position) == "" {
		return fmt.Errorf("player position is required")
	}
	return nil
}

// Linked reports whether the player already carries an external link.
func (p Player) Linked() bool {
	return strings.TrimSpace(p.ESPNID) != ""
}

// CandidateFilter narrows candidate loading. Zero value loads every active
// player.
type CandidateFilter struct {
	Team            string
	Position        string
	IncludeInactive bool
}
