package matching

import "time"

// Method tags which scoring signal produced a match decision.
type Method string

const (
	MethodExactNameAndTeam     Method = "exact_name_team"
	MethodExactNameAndPosition Method = "exact_name_position"
	MethodFuzzyNameAndTeam     Method = "fuzzy_name_team"
	MethodPhonetic             Method = "phonetic"
	MethodNameVariation        Method = "name_variation"
	MethodManualLink           Method = "manual_link"
	MethodNoMatch              Method = "no_match"
)

// Candidate is one scored internal player considered for an external record.
// Ephemeral, produced per match attempt.
type Candidate struct {
	InternalID int64    `json:"internal_id"`
	Name       string   `json:"name"`
	Team       string   `json:"team"`
	Position   string   `json:"position"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons,omitempty"`
}

// PlayerMatchResult is the decision for one external player record.
//
// Invariants: if InternalID is set the score reached the auto-link threshold
// or the link came from a manual override; if RequiresManualReview is true
// InternalID is nil.
type PlayerMatchResult struct {
	ExternalID           string      `json:"external_id"`
	ExternalName         string      `json:"external_name"`
	InternalID           *int64      `json:"internal_id,omitempty"`
	Score                float64     `json:"score"`
	Method               Method      `json:"method"`
	Alternates           []Candidate `json:"alternates,omitempty"`
	RequiresManualReview bool        `json:"requires_manual_review"`
	MatchedAt            time.Time   `json:"matched_at"`
}

// UnmatchedPlayer is the manual-review view over match results that stayed
// below the auto-link threshold.
type UnmatchedPlayer struct {
	ExternalID   string   `json:"external_id"`
	ExternalName string   `json:"external_name"`
	BestScore    float64  `json:"best_score"`
	Reasons      []string `json:"reasons,omitempty"`
}

// Statistics aggregates match outcomes seen by the engine.
type Statistics struct {
	TotalExternalPlayers int            `json:"total_external_players"`
	SuccessfulMatches    int            `json:"successful_matches"`
	ManualLinks          int            `json:"manual_links"`
	MatchesByMethod      map[Method]int `json:"matches_by_method"`
	SuccessRate          float64        `json:"success_rate"`
}
