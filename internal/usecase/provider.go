package usecase

import "context"

// ExternalPlayer is an immutable roster snapshot row from the upstream provider.
type ExternalPlayer struct {
	ID       string
	Name     string
	Team     string
	Position string
	Active   bool
}

// ExternalEvent is a completed game for a given season and week.
type ExternalEvent struct {
	ID        string
	Season    int
	Week      int
	HomeTeam  string
	AwayTeam  string
	Completed bool
}

// ExternalStatLine is one player's raw stat entries within a box score.
type ExternalStatLine struct {
	PlayerID   string
	PlayerName string
	Team       string
	Stats      []ExternalStatValue
}

// ExternalStatValue carries the provider's raw key and display value, unparsed.
type ExternalStatValue struct {
	Name  string
	Value string
}

// ExternalBoxScore is the per-event stat payload for all participating players.
type ExternalBoxScore struct {
	EventID string
	Lines   []ExternalStatLine
}

// SportsDataProvider is the upstream roster and box-score source.
type SportsDataProvider interface {
	FetchRoster(ctx context.Context) ([]ExternalPlayer, error)
	FetchWeekEvents(ctx context.Context, season, week int) ([]ExternalEvent, error)
	FetchBoxScore(ctx context.Context, eventID string) (ExternalBoxScore, error)
}
