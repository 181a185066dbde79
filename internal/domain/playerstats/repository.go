package playerstats

import "context"

// Repository persists normalized stat rows. UpsertRows is keyed by
// (player id, game id, stat name); re-running a week must not create
// duplicate rows.
type Repository interface {
	UpsertRows(ctx context.Context, rows []NormalizedStat) error
	ListByGame(ctx context.Context, gameID string) ([]NormalizedStat, error)
}
