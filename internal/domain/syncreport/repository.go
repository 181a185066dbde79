package syncreport

import "context"

// Repository is the append-only report log. ListByType returns reports
// ordered by recency, newest first.
type Repository interface {
	Append(ctx context.Context, report Report) error
	LastByType(ctx context.Context, syncType Type) (Report, bool, error)
	ListByType(ctx context.Context, syncType Type, limit int) ([]Report, error)
}
