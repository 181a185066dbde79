package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/syncreport"
	qb "github.com/JackBruzan/espn-scrape-sub004/internal/platform/querybuilder"
)

type SyncReportRepository struct {
	db *sqlx.DB
}

var syncReportSelectColumns = []string{
	"id",
	"sync_type",
	"result",
	"created_at",
}

func NewSyncReportRepository(db *sqlx.DB) *SyncReportRepository {
	return &SyncReportRepository{db: db}
}

func (r *SyncReportRepository) Append(ctx context.Context, report syncreport.Report) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("validate sync report id=%s: %w", report.ID, err)
	}

	encoded, err := sonic.Marshal(report.Result)
	if err != nil {
		return fmt.Errorf("encode sync report result id=%s: %w", report.ID, err)
	}

	insertModel := syncReportInsertModel{
		ID:        report.ID,
		SyncType:  string(report.Type),
		Result:    string(encoded),
		CreatedAt: report.CreatedAt.UTC(),
	}

	query, args, err := qb.InsertModel("sync_reports", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert sync report query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sync report id=%s: %w", report.ID, err)
	}

	return nil
}

func (r *SyncReportRepository) LastByType(ctx context.Context, syncType syncreport.Type) (syncreport.Report, bool, error) {
	query, args, err := qb.Select(syncReportSelectColumns...).From("sync_reports").
		Where(qb.Eq("sync_type", string(syncType))).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return syncreport.Report{}, false, fmt.Errorf("build select last sync report query: %w", err)
	}

	var row syncReportTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return syncreport.Report{}, false, nil
		}
		return syncreport.Report{}, false, fmt.Errorf("select last sync report: %w", err)
	}

	report, err := row.toDomain()
	if err != nil {
		return syncreport.Report{}, false, err
	}

	return report, true, nil
}

func (r *SyncReportRepository) ListByType(ctx context.Context, syncType syncreport.Type, limit int) ([]syncreport.Report, error) {
	query, args, err := qb.Select(syncReportSelectColumns...).From("sync_reports").
		Where(qb.Eq("sync_type", string(syncType))).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sync report history query: %w", err)
	}

	var rows []syncReportTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sync report history: %w", err)
	}

	out := make([]syncreport.Report, 0, len(rows))
	for _, row := range rows {
		report, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}

	return out, nil
}

type syncReportInsertModel struct {
	ID        string    `db:"id"`
	SyncType  string    `db:"sync_type"`
	Result    string    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
}

type syncReportTableModel struct {
	ID        string    `db:"id"`
	SyncType  string    `db:"sync_type"`
	Result    []byte    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
}

func (m syncReportTableModel) toDomain() (syncreport.Report, error) {
	var result syncreport.Result
	if err := sonic.Unmarshal(m.Result, &result); err != nil {
		return syncreport.Report{}, fmt.Errorf("decode sync report result id=%s: %w", m.ID, err)
	}
	return syncreport.Report{
		ID:        m.ID,
		Type:      syncreport.Type(m.SyncType),
		Result:    result,
		CreatedAt: m.CreatedAt,
	}, nil
}
