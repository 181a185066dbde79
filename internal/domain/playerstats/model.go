package playerstats

import (
	"fmt"
	"strings"
)

// Category is the closed set of canonical stat groupings. Unrecognized
// provider keys fall through to CategoryGeneral, never dropped.
type Category string

const (
	CategoryPassing   Category = "passing"
	CategoryRushing   Category = "rushing"
	CategoryReceiving Category = "receiving"
	CategoryDefensive Category = "defensive"
	CategoryKicking   Category = "kicking"
	CategoryPunting   Category = "punting"
	CategoryGeneral   Category = "general"
)

var AllCategories = map[Category]struct{}{
	CategoryPassing:   {},
	CategoryRushing:   {},
	CategoryReceiving: {},
	CategoryDefensive: {},
	CategoryKicking:   {},
	CategoryPunting:   {},
	CategoryGeneral:   {},
}

// NormalizedStat is one canonical stat row, uniquely keyed by
// (PlayerID, GameID, Name) so repeated syncs of the same game upsert rather
// than duplicate.
type NormalizedStat struct {
	PlayerID int64
	GameID   string
	Season   int
	Week     int
	Name     string
	Category Category
	Value    float64
}

func (s NormalizedStat) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("stat player id is required")
	}
	if strings.TrimSpace(s.GameID) == "" {
		return fmt.Errorf("stat game id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("stat name is required")
	}
	if _, ok := AllCategories[s.Category]; !ok {
		return fmt.Errorf("invalid stat category: %s", s.Category)
	}
	return nil
}

// Key is the composite upsert key.
func (s NormalizedStat) Key() string {
	return fmt.Sprintf("%d|%s|%s", s.PlayerID, s.GameID, s.Name)
}
