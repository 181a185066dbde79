package syncreport

import (
	"fmt"
	"strings"
	"time"
)

// Type identifies which kind of sync run produced a report.
type Type string

const (
	TypePlayers     Type = "players"
	TypePlayerStats Type = "player_stats"
	TypeHistorical  Type = "historical"
)

// ParseType validates a caller-supplied type string.
func ParseType(raw string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case TypePlayers:
		return TypePlayers, nil
	case TypePlayerStats:
		return TypePlayerStats, nil
	case TypeHistorical:
		return TypeHistorical, nil
	default:
		return "", fmt.Errorf("unknown sync type: %s", raw)
	}
}

// Status is the terminal state machine of one run:
// Running -> Completed | Failed | Cancelled.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Result accumulates the outcome of one sync run. Owned exclusively by the
// goroutine executing the run; frozen once Status leaves StatusRunning.
type Result struct {
	Status           Status        `json:"status"`
	PlayersProcessed int           `json:"players_processed"`
	PlayersUpdated   int           `json:"players_updated"`
	NewPlayersAdded  int           `json:"new_players_added"`
	RecordsProcessed int           `json:"records_processed"`
	MatchingErrors   int           `json:"matching_errors"`
	DataErrors       int           `json:"data_errors"`
	APIErrors        int           `json:"api_errors"`
	Errors           []string      `json:"errors,omitempty"`
	Warnings         []string      `json:"warnings,omitempty"`
	StartedAt        time.Time     `json:"started_at"`
	EndedAt          time.Time     `json:"ended_at"`
	Duration         time.Duration `json:"duration"`
}

// Terminal reports whether the run has finished.
func (r Result) Terminal() bool {
	return r.Status != StatusRunning && r.Status != ""
}

// Report wraps a finalized Result for the append-only audit log. Never
// mutated after being written.
type Report struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Report) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("report id is required")
	}
	if _, err := ParseType(string(r.Type)); err != nil {
		return fmt.Errorf("report type: %w", err)
	}
	if !r.Result.Terminal() {
		return fmt.Errorf("report result must be terminal, got status=%s", r.Result.Status)
	}
	return nil
}
