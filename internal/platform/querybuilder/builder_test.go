package querybuilder

import "testing"

func TestSelectBuilder_ToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("team", "TB"), IsNull("deleted_at")).
		OrderBy("name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT id, name FROM players WHERE team = $1 AND deleted_at IS NULL ORDER BY name LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 1 || args[0] != "TB" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertBuilder_SuffixAndArgs(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("player_game_stats").
		Columns("player_id", "game_id", "stat_name", "value").
		Values(int64(7), "401547403", "passingYards", 312.0).
		Suffix("ON CONFLICT (player_id, game_id, stat_name) DO UPDATE SET value = EXCLUDED.value").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO player_game_stats (player_id, game_id, stat_name, value) VALUES ($1, $2, $3, $4) " +
		"ON CONFLICT (player_id, game_id, stat_name) DO UPDATE SET value = EXCLUDED.value"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestUpdateBuilder_ToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Update("players").
		Set("espn_id", "12345").
		Where(Eq("id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "UPDATE players SET espn_id = $1 WHERE id = $2"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      int64  `db:"id"`
		Name    string `db:"name"`
		Skipped string `db:"-"`
	}

	query, args, err := InsertModel("players", row{ID: 1, Name: "Tom Brady", Skipped: "x"}, "")
	if err != nil {
		t.Fatalf("InsertModel error: %v", err)
	}

	want := "INSERT INTO players (id, name) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestInBuilder_EmptyValues(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("players").Where(In("team", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}
