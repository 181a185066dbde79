package postgres

import (
	"database/sql"
	"time"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Team      string         `db:"team"`
	Position  string         `db:"position"`
	Active    bool           `db:"active"`
	ESPNID    sql.NullString `db:"espn_id"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		Name:      m.Name,
		Team:      m.Team,
		Position:  m.Position,
		Active:    m.Active,
		ESPNID:    m.ESPNID.String,
		UpdatedAt: m.UpdatedAt,
	}
}

type playerInsertModel struct {
	Name     string  `db:"name"`
	Team     string  `db:"team"`
	Position string  `db:"position"`
	Active   bool    `db:"active"`
	ESPNID   *string `db:"espn_id"`
}
