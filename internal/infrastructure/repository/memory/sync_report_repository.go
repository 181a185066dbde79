package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/syncreport"
)

type SyncReportRepository struct {
	mu      sync.RWMutex
	reports []syncreport.Report
}

func NewSyncReportRepository() *SyncReportRepository {
	return &SyncReportRepository{}
}

func (r *SyncReportRepository) Append(_ context.Context, report syncreport.Report) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("append sync report: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append(r.reports, report)

	return nil
}

func (r *SyncReportRepository) LastByType(_ context.Context, syncType syncreport.Type) (syncreport.Report, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.reports) - 1; i >= 0; i-- {
		if r.reports[i].Type == syncType {
			return r.reports[i], true, nil
		}
	}

	return syncreport.Report{}, false, nil
}

func (r *SyncReportRepository) ListByType(_ context.Context, syncType syncreport.Type, limit int) ([]syncreport.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]syncreport.Report, 0, limit)
	for i := len(r.reports) - 1; i >= 0 && len(out) < limit; i-- {
		if r.reports[i].Type == syncType {
			out = append(out, r.reports[i])
		}
	}

	return out, nil
}
