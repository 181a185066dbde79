package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
	qb "github.com/JackBruzan/espn-scrape-sub004/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"team",
	"position",
	"active",
	"espn_id",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListCandidates(ctx context.Context, filter player.CandidateFilter) ([]player.Player, error) {
	builder := qb.Select(playerSelectColumns...).From("players")
	if !filter.IncludeInactive {
		builder = builder.Where(qb.Eq("active", true))
	}
	if team := strings.TrimSpace(filter.Team); team != "" {
		builder = builder.Where(qb.Eq("upper(team)", strings.ToUpper(team)))
	}
	if position := strings.TrimSpace(filter.Position); position != "" {
		builder = builder.Where(qb.Eq("upper(position)", strings.ToUpper(position)))
	}

	query, args, err := builder.OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select candidates query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, espnID string) (player.Player, bool, error) {
	espnID = strings.TrimSpace(espnID)
	if espnID == "" {
		return player.Player{}, false, fmt.Errorf("external id is required")
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("espn_id", espnID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by external id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by external id: %w", err)
	}

	return row.toDomain(), true, nil
}

// Upsert inserts a new catalog row or updates an existing one by id. The
// espn_id column is owned by WriteLink and never changed on update.
func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, fmt.Errorf("validate player name=%q: %w", item.Name, err)
	}

	if item.ID > 0 {
		query, args, err := qb.Update("players").
			Set("name", strings.TrimSpace(item.Name)).
			Set("team", strings.TrimSpace(item.Team)).
			Set("position", strings.TrimSpace(item.Position)).
			Set("active", item.Active).
			Set("updated_at", time.Now().UTC()).
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build update player query: %w", err)
		}
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("update player id=%d: %w", item.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("update player id=%d rows affected: %w", item.ID, err)
		}
		if affected == 0 {
			return 0, fmt.Errorf("update player id=%d: player not found", item.ID)
		}
		return item.ID, nil
	}

	insertModel := playerInsertModel{
		Name:     strings.TrimSpace(item.Name),
		Team:     strings.TrimSpace(item.Team),
		Position: strings.TrimSpace(item.Position),
		Active:   item.Active,
		ESPNID:   nullableString(strings.TrimSpace(item.ESPNID)),
	}

	query, args, err := qb.InsertModel("players", insertModel, `RETURNING id`)
	if err != nil {
		return 0, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert player name=%q: %w", item.Name, err)
	}

	return id, nil
}

func (r *PlayerRepository) WriteLink(ctx context.Context, internalID int64, espnID string) error {
	espnID = strings.TrimSpace(espnID)
	if internalID <= 0 {
		return fmt.Errorf("write link: internal id is required")
	}
	if espnID == "" {
		return fmt.Errorf("write link: external id is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx write link: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// One external id maps to at most one internal player.
	clearQuery, clearArgs, err := qb.Update("players").
		Set("espn_id", nil).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("espn_id", espnID),
			qb.Neq("id", internalID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear link query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear prior link espn_id=%s: %w", espnID, err)
	}

	linkQuery, linkArgs, err := qb.Update("players").
		Set("espn_id", espnID).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", internalID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build write link query: %w", err)
	}
	result, err := tx.ExecContext(ctx, linkQuery, linkArgs...)
	if err != nil {
		return fmt.Errorf("write link player id=%d espn_id=%s: %w", internalID, espnID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write link player id=%d rows affected: %w", internalID, err)
	}
	if affected == 0 {
		return fmt.Errorf("write link: player %d not found", internalID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write link tx: %w", err)
	}
	return nil
}
