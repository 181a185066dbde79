package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
	qb "github.com/JackBruzan/espn-scrape-sub004/internal/platform/querybuilder"
)

type StatRepository struct {
	db *sqlx.DB
}

var statSelectColumns = []string{
	"player_id",
	"game_id",
	"season",
	"week",
	"stat_name",
	"stat_category",
	"value",
}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) UpsertRows(ctx context.Context, rows []playerstats.NormalizedStat) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert stat rows: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("validate stat row player_id=%d game_id=%s: %w", row.PlayerID, row.GameID, err)
		}
		insertModel := statInsertModel{
			PlayerID: row.PlayerID,
			GameID:   strings.TrimSpace(row.GameID),
			Season:   row.Season,
			Week:     row.Week,
			StatName: strings.TrimSpace(row.Name),
			Category: string(row.Category),
			Value:    row.Value,
		}

		query, args, err := qb.InsertModel("player_game_stats", insertModel, `ON CONFLICT (player_id, game_id, stat_name)
DO UPDATE SET
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    stat_category = EXCLUDED.stat_category,
    value = EXCLUDED.value,
    updated_at = now()`)
		if err != nil {
			return fmt.Errorf("build upsert stat row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert stat row player_id=%d game_id=%s stat_name=%s: %w",
				row.PlayerID, row.GameID, row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert stat rows tx: %w", err)
	}
	return nil
}

func (r *StatRepository) ListByGame(ctx context.Context, gameID string) ([]playerstats.NormalizedStat, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	query, args, err := qb.Select(statSelectColumns...).From("player_game_stats").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("player_id", "stat_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stats by game query: %w", err)
	}

	var rows []statTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stats by game: %w", err)
	}

	out := make([]playerstats.NormalizedStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.NormalizedStat{
			PlayerID: row.PlayerID,
			GameID:   row.GameID,
			Season:   row.Season,
			Week:     row.Week,
			Name:     row.StatName,
			Category: playerstats.Category(row.Category),
			Value:    row.Value,
		})
	}

	return out, nil
}

type statInsertModel struct {
	PlayerID int64   `db:"player_id"`
	GameID   string  `db:"game_id"`
	Season   int     `db:"season"`
	Week     int     `db:"week"`
	StatName string  `db:"stat_name"`
	Category string  `db:"stat_category"`
	Value    float64 `db:"value"`
}

type statTableModel struct {
	PlayerID int64   `db:"player_id"`
	GameID   string  `db:"game_id"`
	Season   int     `db:"season"`
	Week     int     `db:"week"`
	StatName string  `db:"stat_name"`
	Category string  `db:"stat_category"`
	Value    float64 `db:"value"`
}
