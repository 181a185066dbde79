package memory

import (
	"context"
	"testing"
	"time"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/syncreport"
)

func TestPlayerRepository_ListCandidates(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository([]player.Player{
		{Name: "Tom Brady", Team: "TB", Position: "QB", Active: true},
		{Name: "Mike Evans", Team: "TB", Position: "WR", Active: true},
		{Name: "Rob Gronkowski", Team: "TB", Position: "TE", Active: false},
		{Name: "Aaron Rodgers", Team: "GB", Position: "QB", Active: true},
	})

	all, err := repo.ListCandidates(context.Background(), player.CandidateFilter{})
	if err != nil {
		t.Fatalf("ListCandidates error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 active players, got %d", len(all))
	}

	tb, err := repo.ListCandidates(context.Background(), player.CandidateFilter{Team: "tb", IncludeInactive: true})
	if err != nil {
		t.Fatalf("ListCandidates error: %v", err)
	}
	if len(tb) != 3 {
		t.Fatalf("expected 3 TB players, got %d", len(tb))
	}

	qb, err := repo.ListCandidates(context.Background(), player.CandidateFilter{Position: "QB"})
	if err != nil {
		t.Fatalf("ListCandidates error: %v", err)
	}
	if len(qb) != 2 {
		t.Fatalf("expected 2 quarterbacks, got %d", len(qb))
	}
}

func TestPlayerRepository_UpsertAssignsIDsAndKeepsLinks(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(nil)

	id, err := repo.Upsert(context.Background(), player.Player{Name: "Tom Brady", Team: "TB", Position: "QB", Active: true})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected assigned id, got %d", id)
	}

	if err := repo.WriteLink(context.Background(), id, "esp-2330"); err != nil {
		t.Fatalf("WriteLink error: %v", err)
	}

	// Updating the row must not clear the link written above.
	if _, err := repo.Upsert(context.Background(), player.Player{ID: id, Name: "Tom Brady", Team: "TB", Position: "QB", Active: true}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	got, found, err := repo.GetByExternalID(context.Background(), "esp-2330")
	if err != nil || !found {
		t.Fatalf("GetByExternalID: found=%v err=%v", found, err)
	}
	if got.ID != id {
		t.Fatalf("expected player %d, got %d", id, got.ID)
	}

	if _, err := repo.Upsert(context.Background(), player.Player{Name: "  ", Team: "TB", Position: "QB"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestPlayerRepository_WriteLinkReplacesPriorOwner(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository([]player.Player{
		{ID: 1, Name: "Tom Brady", Team: "TB", Position: "QB", Active: true},
		{ID: 2, Name: "Tim Bradley", Team: "TB", Position: "QB", Active: true},
	})

	if err := repo.WriteLink(context.Background(), 1, "esp-2330"); err != nil {
		t.Fatalf("WriteLink error: %v", err)
	}
	// Idempotent rewrite.
	if err := repo.WriteLink(context.Background(), 1, "esp-2330"); err != nil {
		t.Fatalf("WriteLink error: %v", err)
	}
	// Moving the link clears it from the prior owner.
	if err := repo.WriteLink(context.Background(), 2, "esp-2330"); err != nil {
		t.Fatalf("WriteLink error: %v", err)
	}

	got, found, err := repo.GetByExternalID(context.Background(), "esp-2330")
	if err != nil || !found {
		t.Fatalf("GetByExternalID: found=%v err=%v", found, err)
	}
	if got.ID != 2 {
		t.Fatalf("expected link to move to player 2, got %d", got.ID)
	}

	candidates, err := repo.ListCandidates(context.Background(), player.CandidateFilter{})
	if err != nil {
		t.Fatalf("ListCandidates error: %v", err)
	}
	for _, c := range candidates {
		if c.ID == 1 && c.ESPNID != "" {
			t.Fatalf("prior owner must be unlinked, still has %q", c.ESPNID)
		}
	}

	if err := repo.WriteLink(context.Background(), 99, "esp-x"); err == nil {
		t.Fatal("expected error for unknown player")
	}
	if err := repo.WriteLink(context.Background(), 1, " "); err == nil {
		t.Fatal("expected error for blank external id")
	}
}

func TestSyncReportRepository_OrderAndLimit(t *testing.T) {
	t.Parallel()

	repo := NewSyncReportRepository()
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		report := syncreport.Report{
			ID:        string(rune('a' + i)),
			Type:      syncreport.TypePlayers,
			Result:    syncreport.Result{Status: syncreport.StatusCompleted},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Append(context.Background(), report); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	last, found, err := repo.LastByType(context.Background(), syncreport.TypePlayers)
	if err != nil || !found {
		t.Fatalf("LastByType: found=%v err=%v", found, err)
	}
	if last.ID != "c" {
		t.Fatalf("expected newest report, got %q", last.ID)
	}

	list, err := repo.ListByType(context.Background(), syncreport.TypePlayers, 2)
	if err != nil {
		t.Fatalf("ListByType error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Fatalf("unexpected history: %+v", list)
	}

	if _, found, _ := repo.LastByType(context.Background(), syncreport.TypeHistorical); found {
		t.Fatal("expected no historical reports")
	}

	if err := repo.Append(context.Background(), syncreport.Report{ID: "x", Type: "bogus"}); err == nil {
		t.Fatal("expected validation error")
	}
}
