package player

import "context"

// Repository describes candidate catalog persistence needs from use cases.
// WriteLink is idempotent: re-writing an identical (internalID, espnID) pair
// succeeds without creating a second link, and writing a new espnID for an
// already-linked player replaces the prior link.
type Repository interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]Player, error)
	GetByExternalID(ctx context.Context, espnID string) (Player, bool, error)
	Upsert(ctx context.Context, item Player) (int64, error)
	WriteLink(ctx context.Context, internalID int64, espnID string) error
}
