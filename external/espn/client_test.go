package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
	"github.com/JackBruzan/espn-scrape-sub004/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     logging.NewNop(),
	})
}

func TestClient_FetchRoster(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sports":[{"leagues":[{"teams":[
			{"team":{"id":"27","abbreviation":"TB","displayName":"Tampa Bay Buccaneers"}}
		]}]}]}`))
	})
	mux.HandleFunc("/teams/27/roster", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"athletes":[{"position":"offense","items":[
			{"id":"2330","displayName":"Tom Brady","position":{"abbreviation":"QB"},"status":{"type":{"name":"Active"}}},
			{"id":"16002","displayName":"Mike Evans","position":{"abbreviation":"WR"},"status":{"type":{"name":"Injured Reserve"}}},
			{"id":"","displayName":"Broken Row"}
		]}]}`))
	})
	client := newTestClient(t, mux)

	roster, err := client.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster error: %v", err)
	}

	if len(roster) != 2 {
		t.Fatalf("expected 2 players, got %d", len(roster))
	}
	if roster[0].Name != "Mike Evans" || roster[0].Active {
		t.Fatalf("unexpected first player: %+v", roster[0])
	}
	if roster[1].ID != "2330" || roster[1].Team != "TB" || roster[1].Position != "QB" || !roster[1].Active {
		t.Fatalf("unexpected second player: %+v", roster[1])
	}
}

func TestClient_FetchWeekEvents(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("week"); got != "3" {
			t.Errorf("unexpected week query: %q", got)
		}
		if got := r.URL.Query().Get("seasontype"); got != "2" {
			t.Errorf("unexpected seasontype query: %q", got)
		}
		_, _ = w.Write([]byte(`{"events":[
			{"id":"401437","status":{"type":{"completed":true}},"competitions":[{"competitors":[
				{"homeAway":"home","team":{"abbreviation":"TB"}},
				{"homeAway":"away","team":{"abbreviation":"GB"}}
			]}]},
			{"id":"401438","status":{"type":{"completed":false}}}
		]}`))
	})
	client := newTestClient(t, mux)

	events, err := client.FetchWeekEvents(context.Background(), 2023, 3)
	if err != nil {
		t.Fatalf("FetchWeekEvents error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	if first.ID != "401437" || !first.Completed || first.HomeTeam != "TB" || first.AwayTeam != "GB" {
		t.Fatalf("unexpected event: %+v", first)
	}
	if first.Season != 2023 || first.Week != 3 {
		t.Fatalf("event must carry the requested season and week: %+v", first)
	}
}

func TestClient_FetchBoxScore_SplitsCompoundColumns(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("event"); got != "401437" {
			t.Errorf("unexpected event query: %q", got)
		}
		_, _ = w.Write([]byte(`{"boxscore":{"players":[{
			"team":{"abbreviation":"TB"},
			"statistics":[{
				"name":"passing",
				"keys":["completions/passingAttempts","passingYards","passingTouchdowns"],
				"athletes":[{
					"athlete":{"id":"2330","displayName":"Tom Brady"},
					"stats":["23/35","312","2"]
				}]
			}]
		}]}}`))
	})
	client := newTestClient(t, mux)

	boxScore, err := client.FetchBoxScore(context.Background(), "401437")
	if err != nil {
		t.Fatalf("FetchBoxScore error: %v", err)
	}

	if len(boxScore.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(boxScore.Lines))
	}
	line := boxScore.Lines[0]
	if line.PlayerID != "2330" || line.PlayerName != "Tom Brady" || line.Team != "TB" {
		t.Fatalf("unexpected line: %+v", line)
	}

	want := []usecase.ExternalStatValue{
		{Name: "completions", Value: "23"},
		{Name: "passingAttempts", Value: "35"},
		{Name: "passingYards", Value: "312"},
		{Name: "passingTouchdowns", Value: "2"},
	}
	if len(line.Stats) != len(want) {
		t.Fatalf("expected %d stat values, got %d: %+v", len(want), len(line.Stats), line.Stats)
	}
	for i, stat := range want {
		if line.Stats[i] != stat {
			t.Fatalf("stat %d: got %+v want %+v", i, line.Stats[i], stat)
		}
	}
}

func TestClient_RateLimitedIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/scoreboard", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	_, err := client.FetchWeekEvents(context.Background(), 2023, 1)
	if !errors.Is(err, usecase.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("rate limiting must surface immediately, got %d calls", got)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/scoreboard", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	events, err := client.FetchWeekEvents(context.Background(), 2023, 1)
	if err != nil {
		t.Fatalf("FetchWeekEvents error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty events, got %d", len(events))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one retry, got %d calls", got)
	}
}

func TestClient_ClientErrorFailsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/summary", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, mux)

	if _, err := client.FetchBoxScore(context.Background(), "nope"); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", got)
	}
}

func TestClient_InputValidation(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := client.FetchWeekEvents(context.Background(), 0, 1); err == nil {
		t.Fatal("expected season validation error")
	}
	if _, err := client.FetchWeekEvents(context.Background(), 2023, 0); err == nil {
		t.Fatal("expected week validation error")
	}
	if _, err := client.FetchBoxScore(context.Background(), "  "); err == nil {
		t.Fatal("expected event id validation error")
	}
}
