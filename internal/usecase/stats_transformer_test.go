package usecase

import (
	"errors"
	"testing"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
)

func TestCategoryForStat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want playerstats.Category
	}{
		{"passingYards", playerstats.CategoryPassing},
		{"QBRating", playerstats.CategoryPassing},
		{"rushingCarries", playerstats.CategoryRushing},
		{"longRushing", playerstats.CategoryRushing},
		{"receivingTargets", playerstats.CategoryReceiving},
		{"yardsPerReception", playerstats.CategoryReceiving},
		{"totalTackles", playerstats.CategoryDefensive},
		{"defensiveInterceptions", playerstats.CategoryDefensive},
		{"fieldGoalsMade", playerstats.CategoryKicking},
		{"kickingPoints", playerstats.CategoryKicking},
		{"grossAvgPuntYards", playerstats.CategoryPunting},
		{"puntsInside20", playerstats.CategoryPunting},
		{"fumblesLost", playerstats.CategoryGeneral},
		{"totalTwoPointConversions", playerstats.CategoryGeneral},
		{"someFutureProviderKey", playerstats.CategoryGeneral},
		{"", playerstats.CategoryGeneral},
		{"  passingYards  ", playerstats.CategoryPassing},
	}
	for _, tc := range cases {
		if got := CategoryForStat(tc.name); got != tc.want {
			t.Fatalf("CategoryForStat(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestCategoryMappingIsTotal(t *testing.T) {
	t.Parallel()

	for name, category := range categoryByStat {
		if _, ok := playerstats.AllCategories[category]; !ok {
			t.Fatalf("stat %s maps outside the closed category set: %s", name, category)
		}
		if got := CategoryForStat(name); got != category {
			t.Fatalf("CategoryForStat(%q) = %s, want %s", name, got, category)
		}
	}
	for name := range nonNegativeStats {
		if _, mapped := categoryByStat[name]; !mapped {
			t.Fatalf("non-negative stat %s is not in the category mapping", name)
		}
	}
}

func TestParseStatValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "312", want: 312},
		{raw: " 7.5 ", want: 7.5},
		{raw: "-3", want: -3},
		{raw: "1,024", want: 1024},
		{raw: "45t", want: 45},
		{raw: "45T", want: 45},
		{raw: "--", want: 0},
		{raw: "", want: 0},
		{raw: "N/A", wantErr: true},
		{raw: "12/4", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseStatValue(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseStatValue(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseStatValue(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parseStatValue(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestStatsTransformer_Transform(t *testing.T) {
	t.Parallel()

	transformer := NewStatsTransformer()
	base := RawStat{PlayerID: 1, GameID: "401", Season: 2023, Week: 3}

	t.Run("known key", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "passingYards"
		raw.Value = "312"

		stat, warnings, err := transformer.Transform(raw)
		if err != nil {
			t.Fatalf("Transform error: %v", err)
		}
		if stat.Category != playerstats.CategoryPassing || stat.Value != 312 {
			t.Fatalf("unexpected stat: %+v", stat)
		}
		if len(warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", warnings)
		}
	})

	t.Run("unknown key falls back to general", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "someFutureProviderKey"
		raw.Value = "4"

		stat, _, err := transformer.Transform(raw)
		if err != nil {
			t.Fatalf("unknown keys must not fail: %v", err)
		}
		if stat.Category != playerstats.CategoryGeneral {
			t.Fatalf("unexpected category: %s", stat.Category)
		}
	})

	t.Run("negative count is flagged but kept", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "punts"
		raw.Value = "-2"

		stat, warnings, err := transformer.Transform(raw)
		if err != nil {
			t.Fatalf("out-of-range values must not fail: %v", err)
		}
		if stat.Value != -2 {
			t.Fatalf("value must be kept as-is, got %v", stat.Value)
		}
		if len(warnings) != 1 {
			t.Fatalf("expected one warning, got %v", warnings)
		}
	})

	t.Run("negative yardage is legitimate", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "rushingYards"
		raw.Value = "-7"

		_, warnings, err := transformer.Transform(raw)
		if err != nil {
			t.Fatalf("Transform error: %v", err)
		}
		if len(warnings) != 0 {
			t.Fatalf("negative yardage must not warn: %v", warnings)
		}
	})

	t.Run("formatted values", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "longReception"
		raw.Value = "45t"

		stat, _, err := transformer.Transform(raw)
		if err != nil {
			t.Fatalf("Transform error: %v", err)
		}
		if stat.Value != 45 {
			t.Fatalf("expected 45, got %v", stat.Value)
		}
	})

	t.Run("unparseable value", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "passingYards"
		raw.Value = "N/A"

		if _, _, err := transformer.Transform(raw); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		raw := base
		raw.Name = "  "
		raw.Value = "1"

		if _, _, err := transformer.Transform(raw); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
