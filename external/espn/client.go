package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/resilience"
	"github.com/JackBruzan/espn-scrape-sub004/internal/usecase"
)

const (
	defaultBaseURL    = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultTimeout    = 20 * time.Second
	regularSeasonType = "2"
	maxResponseBytes  = 12 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to ESPN's public site API. It implements
// usecase.SportsDataProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchRoster walks every team roster and returns one flat player snapshot.
func (c *Client) FetchRoster(ctx context.Context) ([]usecase.ExternalPlayer, error) {
	var teams teamsEnvelope
	if err := c.doJSON(ctx, "/teams", nil, &teams); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}

	out := make([]usecase.ExternalPlayer, 0, 1800)
	seen := make(map[string]struct{}, 1800)
	for _, sport := range teams.Sports {
		for _, league := range sport.Leagues {
			for _, entry := range league.Teams {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				team := entry.Team
				if strings.TrimSpace(team.ID) == "" {
					continue
				}

				var roster rosterEnvelope
				path := fmt.Sprintf("/teams/%s/roster", team.ID)
				if err := c.doJSON(ctx, path, nil, &roster); err != nil {
					return nil, fmt.Errorf("fetch roster team=%s: %w", team.Abbreviation, err)
				}

				for _, group := range roster.Athletes {
					for _, athlete := range group.Items {
						mapped, ok := mapAthlete(athlete, team.Abbreviation)
						if !ok {
							continue
						}
						if _, dup := seen[mapped.ID]; dup {
							continue
						}
						seen[mapped.ID] = struct{}{}
						out = append(out, mapped)
					}
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FetchWeekEvents lists the scoreboard for one regular-season week.
func (c *Client) FetchWeekEvents(ctx context.Context, season, week int) ([]usecase.ExternalEvent, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}
	if week <= 0 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	query := map[string]string{
		"dates":      fmt.Sprintf("%d", season),
		"seasontype": regularSeasonType,
		"week":       fmt.Sprintf("%d", week),
	}
	var scoreboard scoreboardEnvelope
	if err := c.doJSON(ctx, "/scoreboard", query, &scoreboard); err != nil {
		return nil, fmt.Errorf("fetch scoreboard season=%d week=%d: %w", season, week, err)
	}

	out := make([]usecase.ExternalEvent, 0, len(scoreboard.Events))
	for _, event := range scoreboard.Events {
		if strings.TrimSpace(event.ID) == "" {
			continue
		}
		mapped := usecase.ExternalEvent{
			ID:        event.ID,
			Season:    season,
			Week:      week,
			Completed: event.Status.Type.Completed,
		}
		if len(event.Competitions) > 0 {
			for _, competitor := range event.Competitions[0].Competitors {
				switch strings.ToLower(strings.TrimSpace(competitor.HomeAway)) {
				case "home":
					mapped.HomeTeam = competitor.Team.Abbreviation
				case "away":
					mapped.AwayTeam = competitor.Team.Abbreviation
				}
			}
		}
		out = append(out, mapped)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FetchBoxScore pulls one event summary and flattens its per-player stat
// tables into lines. Compound columns like "completions/passingAttempts" are
// split into separate entries.
func (c *Client) FetchBoxScore(ctx context.Context, eventID string) (usecase.ExternalBoxScore, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return usecase.ExternalBoxScore{}, fmt.Errorf("event id is required")
	}

	query := map[string]string{"event": eventID}
	var summary summaryEnvelope
	if err := c.doJSON(ctx, "/summary", query, &summary); err != nil {
		return usecase.ExternalBoxScore{}, fmt.Errorf("fetch summary event=%s: %w", eventID, err)
	}

	lineByPlayer := make(map[string]*usecase.ExternalStatLine, 128)
	order := make([]string, 0, 128)
	for _, teamBlock := range summary.BoxScore.Players {
		for _, table := range teamBlock.Statistics {
			for _, athlete := range table.Athletes {
				playerID := strings.TrimSpace(athlete.Athlete.ID)
				if playerID == "" {
					continue
				}
				line, ok := lineByPlayer[playerID]
				if !ok {
					line = &usecase.ExternalStatLine{
						PlayerID:   playerID,
						PlayerName: strings.TrimSpace(athlete.Athlete.DisplayName),
						Team:       teamBlock.Team.Abbreviation,
					}
					lineByPlayer[playerID] = line
					order = append(order, playerID)
				}
				appendStatValues(line, table.Keys, athlete.Stats)
			}
		}
	}

	out := usecase.ExternalBoxScore{EventID: eventID, Lines: make([]usecase.ExternalStatLine, 0, len(order))}
	for _, playerID := range order {
		out.Lines = append(out.Lines, *lineByPlayer[playerID])
	}
	return out, nil
}

// appendStatValues pairs a stat table's keys with one athlete's values.
// Compound keys ("a/b") whose values also carry a slash are split pairwise.
func appendStatValues(line *usecase.ExternalStatLine, keys []string, values []string) {
	for i, key := range keys {
		if i >= len(values) {
			break
		}
		key = strings.TrimSpace(key)
		value := strings.TrimSpace(values[i])
		if key == "" || value == "" {
			continue
		}

		keyParts := strings.Split(key, "/")
		valueParts := strings.Split(value, "/")
		if len(keyParts) > 1 && len(keyParts) == len(valueParts) {
			for j := range keyParts {
				part := strings.TrimSpace(keyParts[j])
				if part == "" {
					continue
				}
				line.Stats = append(line.Stats, usecase.ExternalStatValue{
					Name:  part,
					Value: strings.TrimSpace(valueParts[j]),
				})
			}
			continue
		}

		line.Stats = append(line.Stats, usecase.ExternalStatValue{Name: key, Value: value})
	}
}

func mapAthlete(item athleteItem, team string) (usecase.ExternalPlayer, bool) {
	id := strings.TrimSpace(item.ID)
	name := strings.TrimSpace(item.DisplayName)
	if id == "" || name == "" {
		return usecase.ExternalPlayer{}, false
	}

	active := item.Active
	if statusName := strings.TrimSpace(item.Status.Type.Name); statusName != "" {
		active = strings.EqualFold(statusName, "Active")
	}

	return usecase.ExternalPlayer{
		ID:       id,
		Name:     name,
		Team:     strings.TrimSpace(team),
		Position: strings.ToUpper(strings.TrimSpace(item.Position.Abbreviation)),
		Active:   active,
	}, true
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("espn.url", fullURL),
			attribute.String("espn.request_curl_preview", buildRequestCurlPreview(fullURL)),
		)
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusTooManyRequests:
				return nil, fmt.Errorf("%w: provider status=%d", usecase.ErrRateLimited, resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func buildRequestCurlPreview(fullURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X GET ")
	_, _ = buf.WriteString(shellQuote(fullURL))
	_, _ = buf.WriteString(" -H ")
	_, _ = buf.WriteString(shellQuote("accept: application/json"))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errESPNTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusRequestTimeout || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
