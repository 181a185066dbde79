package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
)

// RawStat is one provider stat entry resolved to an internal player and game.
type RawStat struct {
	PlayerID int64
	GameID   string
	Season   int
	Week     int
	Name     string
	Value    string
}

// categoryByStat is the static mapping from provider stat keys to canonical
// categories. Keys not listed here resolve to CategoryGeneral.
var categoryByStat = map[string]playerstats.Category{
	"passingYards":        playerstats.CategoryPassing,
	"passingAttempts":     playerstats.CategoryPassing,
	"completions":         playerstats.CategoryPassing,
	"completionPct":       playerstats.CategoryPassing,
	"passingTouchdowns":   playerstats.CategoryPassing,
	"interceptions":       playerstats.CategoryPassing,
	"yardsPerPassAttempt": playerstats.CategoryPassing,
	"sacks":               playerstats.CategoryPassing,
	"sackYardsLost":       playerstats.CategoryPassing,
	"QBRating":            playerstats.CategoryPassing,
	"adjQBR":              playerstats.CategoryPassing,

	"rushingYards":        playerstats.CategoryRushing,
	"rushingAttempts":     playerstats.CategoryRushing,
	"rushingCarries":      playerstats.CategoryRushing,
	"yardsPerRushAttempt": playerstats.CategoryRushing,
	"rushingTouchdowns":   playerstats.CategoryRushing,
	"longRushing":         playerstats.CategoryRushing,

	"receptions":          playerstats.CategoryReceiving,
	"receivingTargets":    playerstats.CategoryReceiving,
	"receivingYards":      playerstats.CategoryReceiving,
	"yardsPerReception":   playerstats.CategoryReceiving,
	"receivingTouchdowns": playerstats.CategoryReceiving,
	"longReception":       playerstats.CategoryReceiving,

	"totalTackles":           playerstats.CategoryDefensive,
	"soloTackles":            playerstats.CategoryDefensive,
	"tacklesForLoss":         playerstats.CategoryDefensive,
	"QBHits":                 playerstats.CategoryDefensive,
	"defensiveSacks":         playerstats.CategoryDefensive,
	"passesDefended":         playerstats.CategoryDefensive,
	"defensiveInterceptions": playerstats.CategoryDefensive,
	"interceptionYards":      playerstats.CategoryDefensive,
	"interceptionTouchdowns": playerstats.CategoryDefensive,

	"fieldGoalsMade":     playerstats.CategoryKicking,
	"fieldGoalAttempts":  playerstats.CategoryKicking,
	"fieldGoalPct":       playerstats.CategoryKicking,
	"longFieldGoalMade":  playerstats.CategoryKicking,
	"extraPointsMade":    playerstats.CategoryKicking,
	"extraPointAttempts": playerstats.CategoryKicking,
	"kickingPoints":      playerstats.CategoryKicking,

	"punts":             playerstats.CategoryPunting,
	"puntYards":         playerstats.CategoryPunting,
	"grossAvgPuntYards": playerstats.CategoryPunting,
	"touchbacks":        playerstats.CategoryPunting,
	"puntsInside20":     playerstats.CategoryPunting,
	"longPunt":          playerstats.CategoryPunting,

	"fumbles":                  playerstats.CategoryGeneral,
	"fumblesLost":              playerstats.CategoryGeneral,
	"fumblesRecovered":         playerstats.CategoryGeneral,
	"kickReturns":              playerstats.CategoryGeneral,
	"kickReturnYards":          playerstats.CategoryGeneral,
	"puntReturns":              playerstats.CategoryGeneral,
	"puntReturnYards":          playerstats.CategoryGeneral,
	"totalPoints":              playerstats.CategoryGeneral,
	"totalTwoPointConversions": playerstats.CategoryGeneral,
}

// nonNegativeStats lists keys that are never legitimately negative. Rushing
// and receiving yardage can go negative and stays out of this set.
var nonNegativeStats = map[string]struct{}{
	"passingAttempts":    {},
	"completions":        {},
	"rushingAttempts":    {},
	"rushingCarries":     {},
	"receptions":         {},
	"receivingTargets":   {},
	"totalTackles":       {},
	"soloTackles":        {},
	"fieldGoalsMade":     {},
	"fieldGoalAttempts":  {},
	"extraPointsMade":    {},
	"extraPointAttempts": {},
	"punts":              {},
}

// StatsTransformer normalizes raw provider stat entries into canonical rows.
// The category mapping is total: every input key resolves to exactly one
// category.
type StatsTransformer struct{}

func NewStatsTransformer() *StatsTransformer {
	return &StatsTransformer{}
}

// Transform parses and categorizes one raw entry. Out-of-range values are
// flagged as warnings but kept; an unparseable value is an error.
func (t *StatsTransformer) Transform(raw RawStat) (playerstats.NormalizedStat, []string, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return playerstats.NormalizedStat{}, nil, fmt.Errorf("%w: stat name is required", ErrInvalidInput)
	}

	value, err := parseStatValue(raw.Value)
	if err != nil {
		return playerstats.NormalizedStat{}, nil, fmt.Errorf("%w: stat %q: %v", ErrInvalidInput, name, err)
	}

	var warnings []string
	if _, mustBeNonNegative := nonNegativeStats[name]; mustBeNonNegative && value < 0 {
		warnings = append(warnings, fmt.Sprintf("stat %s has negative value %.2f", name, value))
	}

	stat := playerstats.NormalizedStat{
		PlayerID: raw.PlayerID,
		GameID:   strings.TrimSpace(raw.GameID),
		Season:   raw.Season,
		Week:     raw.Week,
		Name:     name,
		Category: CategoryForStat(name),
		Value:    value,
	}
	if err := stat.Validate(); err != nil {
		return playerstats.NormalizedStat{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return stat, warnings, nil
}

// CategoryForStat resolves a provider stat key to its canonical category,
// falling back to CategoryGeneral for unrecognized keys.
func CategoryForStat(name string) playerstats.Category {
	if category, ok := categoryByStat[strings.TrimSpace(name)]; ok {
		return category
	}
	return playerstats.CategoryGeneral
}

// parseStatValue accepts plain numbers plus the provider's formatted variants:
// thousands separators ("1,024") and long-play notation ("45t").
func parseStatValue(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || cleaned == "--" {
		return 0, nil
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(strings.ToLower(cleaned), "t")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable value %q", raw)
	}
	return value, nil
}
