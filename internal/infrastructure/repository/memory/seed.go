package memory

import "github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"

// SeedPlayers is the development catalog used when no database is configured.
func SeedPlayers() []player.Player {
	return []player.Player{
		{Name: "Patrick Mahomes", Team: "KC", Position: "QB", Active: true},
		{Name: "Josh Allen", Team: "BUF", Position: "QB", Active: true},
		{Name: "Jalen Hurts", Team: "PHI", Position: "QB", Active: true},
		{Name: "Christian McCaffrey", Team: "SF", Position: "RB", Active: true},
		{Name: "Derrick Henry", Team: "BAL", Position: "RB", Active: true},
		{Name: "Saquon Barkley", Team: "PHI", Position: "RB", Active: true},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", Active: true},
		{Name: "Tyreek Hill", Team: "MIA", Position: "WR", Active: true},
		{Name: "CeeDee Lamb", Team: "DAL", Position: "WR", Active: true},
		{Name: "Mike Evans", Team: "TB", Position: "WR", Active: true},
		{Name: "Travis Kelce", Team: "KC", Position: "TE", Active: true},
		{Name: "George Kittle", Team: "SF", Position: "TE", Active: true},
		{Name: "Justin Tucker", Team: "BAL", Position: "K", Active: true},
		{Name: "Micah Parsons", Team: "DAL", Position: "LB", Active: true},
		{Name: "T.J. Watt", Team: "PIT", Position: "LB", Active: true},
		{Name: "Aaron Rodgers", Team: "NYJ", Position: "QB", Active: false},
	}
}
