package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/syncreport"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/id"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
)

const (
	defaultBatchSize      = 50
	defaultMaxConcurrency = 1
	defaultAPIFailureMax  = 5
	defaultInterWeekDelay = 2 * time.Second
	defaultHistoryLimit   = 20
	maxHistoryLimit       = 100
	maxRecordedErrors     = 100
	minSeason             = 1999
	maxWeek               = 22
)

var retryBaseDelay = 250 * time.Millisecond

// SyncOptions is the caller-supplied policy for one run.
type SyncOptions struct {
	ForceFullSync   bool
	SkipInactive    bool
	BatchSize       int
	ContinueOnError bool
	MaxRetries      int
	DryRun          bool
}

func (o SyncOptions) validate() error {
	if o.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidInput)
	}
	if o.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (o SyncOptions) normalized() SyncOptions {
	if o.BatchSize == 0 {
		o.BatchSize = defaultBatchSize
	}
	return o
}

// SyncConfig tunes orchestration behavior shared across runs.
type SyncConfig struct {
	MaxConcurrency           int
	ConsecutiveAPIFailureMax int
	InterWeekDelay           time.Duration
}

func (c SyncConfig) normalized() SyncConfig {
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = defaultMaxConcurrency
	}
	if c.ConsecutiveAPIFailureMax <= 0 {
		c.ConsecutiveAPIFailureMax = defaultAPIFailureMax
	}
	if c.InterWeekDelay <= 0 {
		c.InterWeekDelay = defaultInterWeekDelay
	}
	return c
}

// SyncService orchestrates roster and stat synchronization runs. At most one
// run executes at a time; a second start request is rejected immediately.
type SyncService struct {
	provider    SportsDataProvider
	players     player.Repository
	stats       playerstats.Repository
	reports     syncreport.Repository
	matcher     *MatchingService
	transformer *StatsTransformer
	ids         id.Generator
	config      SyncConfig
	logger      *logging.Logger
	now         func() time.Time

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
}

func NewSyncService(
	provider SportsDataProvider,
	players player.Repository,
	stats playerstats.Repository,
	reports syncreport.Repository,
	matcher *MatchingService,
	transformer *StatsTransformer,
	ids id.Generator,
	config SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if transformer == nil {
		transformer = NewStatsTransformer()
	}
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &SyncService{
		provider:    provider,
		players:     players,
		stats:       stats,
		reports:     reports,
		matcher:     matcher,
		transformer: transformer,
		ids:         ids,
		config:      config.normalized(),
		logger:      logger,
		now:         time.Now,
	}
}

// IsSyncRunning reports whether a run currently holds the guard.
func (s *SyncService) IsSyncRunning() bool {
	return s.running.Load()
}

// CancelRunningSync signals cooperative cancellation to the active run.
// Returns false when no run is active. The run stops before its next item;
// already-persisted work stays persisted.
func (s *SyncService) CancelRunningSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// SyncPlayers fetches the external roster, matches every player against the
// internal catalog, and persists new players and auto-link decisions.
func (s *SyncService) SyncPlayers(ctx context.Context, options SyncOptions) (syncreport.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncPlayers")
	defer span.End()

	if err := options.validate(); err != nil {
		return syncreport.Result{}, err
	}
	options = options.normalized()

	runCtx, release, err := s.acquire(ctx)
	if err != nil {
		return syncreport.Result{}, err
	}
	defer release()

	state := newRunState(s.now().UTC())
	s.logger.InfoContext(runCtx, "player sync started",
		"force_full_sync", options.ForceFullSync,
		"skip_inactive", options.SkipInactive,
		"batch_size", options.BatchSize,
		"dry_run", options.DryRun,
	)

	roster, err := retryFetch(runCtx, options.MaxRetries, s.provider.FetchRoster)
	if err != nil {
		state.recordAPIError(fmt.Sprintf("fetch roster: %v", err))
		return s.finalize(ctx, state, syncreport.TypePlayers, syncreport.StatusFailed),
			markSystemicError(markAPIError(fmt.Errorf("fetch roster: %w", err)))
	}
	if options.SkipInactive {
		roster = activeOnly(roster)
	}

	candidates, err := s.players.ListCandidates(runCtx, player.CandidateFilter{IncludeInactive: true})
	if err != nil {
		state.recordError(fmt.Sprintf("load candidates: %v", err))
		return s.finalize(ctx, state, syncreport.TypePlayers, syncreport.StatusFailed),
			markSystemicError(fmt.Errorf("load candidates: %w", err))
	}

	pool, err := ants.NewPool(s.config.MaxConcurrency)
	if err != nil {
		state.recordError(fmt.Sprintf("create worker pool: %v", err))
		return s.finalize(ctx, state, syncreport.TypePlayers, syncreport.StatusFailed),
			markSystemicError(fmt.Errorf("create worker pool: %w", err))
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for start := 0; start < len(roster); start += options.BatchSize {
		end := start + options.BatchSize
		if end > len(roster) {
			end = len(roster)
		}
		for _, external := range roster[start:end] {
			if runCtx.Err() != nil || state.aborted() {
				break
			}
			external := external
			wg.Add(1)
			if submitErr := pool.Submit(func() {
				defer wg.Done()
				s.processRosterPlayer(runCtx, state, external, candidates, options)
			}); submitErr != nil {
				wg.Done()
				state.recordError(fmt.Sprintf("submit player %s: %v", external.ID, submitErr))
			}
		}
		wg.Wait()
		if runCtx.Err() != nil || state.aborted() {
			break
		}
	}

	status := syncreport.StatusCompleted
	switch {
	case state.aborted():
		status = syncreport.StatusFailed
	case runCtx.Err() != nil:
		status = syncreport.StatusCancelled
	}

	result := s.finalize(ctx, state, syncreport.TypePlayers, status)
	s.logger.InfoContext(ctx, "player sync finished",
		"status", string(status),
		"players_processed", result.PlayersProcessed,
		"players_updated", result.PlayersUpdated,
		"new_players_added", result.NewPlayersAdded,
		"matching_errors", result.MatchingErrors,
	)
	if status == syncreport.StatusFailed {
		return result, markSystemicError(errors.New("player sync aborted"))
	}
	return result, nil
}

// SyncPlayerStats fetches completed events for one week, transforms each box
// score, and upserts normalized stat rows.
func (s *SyncService) SyncPlayerStats(ctx context.Context, season, week int, options SyncOptions) (syncreport.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncPlayerStats")
	defer span.End()

	if err := validateSeasonWeek(season, week); err != nil {
		return syncreport.Result{}, err
	}
	if err := options.validate(); err != nil {
		return syncreport.Result{}, err
	}
	options = options.normalized()

	runCtx, release, err := s.acquire(ctx)
	if err != nil {
		return syncreport.Result{}, err
	}
	defer release()

	state := newRunState(s.now().UTC())
	s.logger.InfoContext(runCtx, "stat sync started", "season", season, "week", week, "dry_run", options.DryRun)

	if err := s.runStatsWeek(runCtx, state, season, week, options); err != nil {
		result := s.finalize(ctx, state, syncreport.TypePlayerStats, syncreport.StatusFailed)
		return result, err
	}

	status := syncreport.StatusCompleted
	if runCtx.Err() != nil {
		status = syncreport.StatusCancelled
	}
	result := s.finalize(ctx, state, syncreport.TypePlayerStats, status)
	s.logger.InfoContext(ctx, "stat sync finished",
		"status", string(status),
		"records_processed", result.RecordsProcessed,
		"data_errors", result.DataErrors,
		"api_errors", result.APIErrors,
	)
	return result, nil
}

// SyncHistorical backfills a week range sequentially, one aggregate result
// across all weeks. A single week's failure is recorded and the range
// continues unless the failure is systemic.
func (s *SyncService) SyncHistorical(ctx context.Context, season, startWeek, endWeek int, options SyncOptions) (syncreport.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncHistorical")
	defer span.End()

	if err := validateSeasonWeek(season, startWeek); err != nil {
		return syncreport.Result{}, err
	}
	if err := validateSeasonWeek(season, endWeek); err != nil {
		return syncreport.Result{}, err
	}
	if endWeek < startWeek {
		return syncreport.Result{}, fmt.Errorf("%w: end week %d before start week %d", ErrInvalidInput, endWeek, startWeek)
	}
	if err := options.validate(); err != nil {
		return syncreport.Result{}, err
	}
	options = options.normalized()

	runCtx, release, err := s.acquire(ctx)
	if err != nil {
		return syncreport.Result{}, err
	}
	defer release()

	state := newRunState(s.now().UTC())
	s.logger.InfoContext(runCtx, "historical sync started",
		"season", season,
		"start_week", startWeek,
		"end_week", endWeek,
	)

	for week := startWeek; week <= endWeek; week++ {
		if runCtx.Err() != nil {
			break
		}
		if err := s.runStatsWeek(runCtx, state, season, week, options); err != nil {
			result := s.finalize(ctx, state, syncreport.TypeHistorical, syncreport.StatusFailed)
			return result, err
		}
		if week < endWeek {
			if err := sleepCtx(runCtx, s.config.InterWeekDelay); err != nil {
				break
			}
		}
	}

	status := syncreport.StatusCompleted
	if runCtx.Err() != nil {
		status = syncreport.StatusCancelled
	}
	result := s.finalize(ctx, state, syncreport.TypeHistorical, status)
	s.logger.InfoContext(ctx, "historical sync finished",
		"status", string(status),
		"records_processed", result.RecordsProcessed,
	)
	return result, nil
}

// LastSyncReport returns the most recent report of the given type.
func (s *SyncService) LastSyncReport(ctx context.Context, syncType syncreport.Type) (syncreport.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.LastSyncReport")
	defer span.End()

	if _, err := syncreport.ParseType(string(syncType)); err != nil {
		return syncreport.Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	report, found, err := s.reports.LastByType(ctx, syncType)
	if err != nil {
		return syncreport.Report{}, fmt.Errorf("load last report: %w", err)
	}
	if !found {
		return syncreport.Report{}, fmt.Errorf("%w: no %s report", ErrNotFound, syncType)
	}
	return report, nil
}

// SyncHistory lists recent reports of the given type, newest first.
func (s *SyncService) SyncHistory(ctx context.Context, syncType syncreport.Type, limit int) ([]syncreport.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncHistory")
	defer span.End()

	if _, err := syncreport.ParseType(string(syncType)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	reports, err := s.reports.ListByType(ctx, syncType, limit)
	if err != nil {
		return nil, fmt.Errorf("load report history: %w", err)
	}
	return reports, nil
}

func (s *SyncService) acquire(ctx context.Context) (context.Context, func(), error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, nil, ErrSyncAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		cancel()
		s.running.Store(false)
	}
	return runCtx, release, nil
}

func (s *SyncService) processRosterPlayer(ctx context.Context, state *runState, external ExternalPlayer, candidates []player.Player, options SyncOptions) {
	match := s.matcher.Match(external, candidates)
	state.incrPlayersProcessed()

	switch {
	case match.InternalID != nil:
		// Already linked and identical: nothing to write unless a full sync
		// is forced.
		if !options.ForceFullSync && rosterPlayerUnchanged(candidates, *match.InternalID, external) {
			return
		}
		if options.DryRun {
			state.incrPlayersUpdated()
			return
		}
		updated := player.Player{
			ID:       *match.InternalID,
			Name:     external.Name,
			Team:     external.Team,
			Position: external.Position,
			Active:   external.Active,
			ESPNID:   external.ID,
		}
		if _, err := s.players.Upsert(ctx, updated); err != nil {
			s.recordItemFailure(ctx, state, options, fmt.Sprintf("update player %s: %v", external.ID, err))
			return
		}
		if err := s.players.WriteLink(ctx, *match.InternalID, external.ID); err != nil {
			s.recordItemFailure(ctx, state, options, fmt.Sprintf("link player %s: %v", external.ID, err))
			return
		}
		state.incrPlayersUpdated()

	case match.RequiresManualReview:
		state.incrMatchingErrors()
		state.recordWarning(fmt.Sprintf("player %s (%s) needs manual review, best score %.2f", external.ID, external.Name, match.Score))

	default:
		if options.DryRun {
			state.incrNewPlayersAdded()
			return
		}
		created := player.Player{
			Name:     external.Name,
			Team:     external.Team,
			Position: external.Position,
			Active:   external.Active,
			ESPNID:   external.ID,
		}
		if _, err := s.players.Upsert(ctx, created); err != nil {
			s.recordItemFailure(ctx, state, options, fmt.Sprintf("insert player %s: %v", external.ID, err))
			return
		}
		state.incrNewPlayersAdded()
	}
}

// runStatsWeek processes one week inside an already-acquired run.
// Returns an error only for systemic failures.
func (s *SyncService) runStatsWeek(ctx context.Context, state *runState, season, week int, options SyncOptions) error {
	events, err := retryFetch(ctx, options.MaxRetries, func(ctx context.Context) ([]ExternalEvent, error) {
		return s.provider.FetchWeekEvents(ctx, season, week)
	})
	if err != nil {
		state.recordAPIError(fmt.Sprintf("fetch events season=%d week=%d: %v", season, week, err))
		if state.consecutiveAPIFailures() >= s.config.ConsecutiveAPIFailureMax {
			return markSystemicError(markAPIError(fmt.Errorf("fetch events season=%d week=%d: %w", season, week, err)))
		}
		return nil
	}

	candidates, err := s.players.ListCandidates(ctx, player.CandidateFilter{IncludeInactive: true})
	if err != nil {
		state.recordError(fmt.Sprintf("load candidates: %v", err))
		return markSystemicError(fmt.Errorf("load candidates: %w", err))
	}

	for _, event := range events {
		if ctx.Err() != nil {
			return nil
		}
		if !event.Completed {
			continue
		}
		if err := s.processEvent(ctx, state, event, season, week, candidates, options); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) processEvent(ctx context.Context, state *runState, event ExternalEvent, season, week int, candidates []player.Player, options SyncOptions) error {
	boxScore, err := retryFetch(ctx, options.MaxRetries, func(ctx context.Context) (ExternalBoxScore, error) {
		return s.provider.FetchBoxScore(ctx, event.ID)
	})
	if err != nil {
		state.recordAPIError(fmt.Sprintf("fetch box score event=%s: %v", event.ID, err))
		if state.consecutiveAPIFailures() >= s.config.ConsecutiveAPIFailureMax {
			return markSystemicError(markAPIError(fmt.Errorf("fetch box score event=%s: %w", event.ID, err)))
		}
		return nil
	}
	state.resetConsecutiveAPIFailures()

	for _, line := range boxScore.Lines {
		if ctx.Err() != nil {
			return nil
		}

		internalID, ok := s.resolveStatPlayer(ctx, state, line, candidates, options)
		if !ok {
			continue
		}

		rows := make([]playerstats.NormalizedStat, 0, len(line.Stats))
		for _, value := range line.Stats {
			stat, warnings, err := s.transformer.Transform(RawStat{
				PlayerID: internalID,
				GameID:   event.ID,
				Season:   season,
				Week:     week,
				Name:     value.Name,
				Value:    value.Value,
			})
			if err != nil {
				state.incrDataErrors()
				state.recordError(fmt.Sprintf("transform stat for player %s event %s: %v", line.PlayerID, event.ID, err))
				if !options.ContinueOnError {
					return markSystemicError(markDataError(err))
				}
				continue
			}
			for _, warning := range warnings {
				state.recordWarning(warning)
			}
			rows = append(rows, stat)
		}

		if len(rows) == 0 {
			continue
		}
		if !options.DryRun {
			if err := s.stats.UpsertRows(ctx, rows); err != nil {
				state.incrDataErrors()
				state.recordError(fmt.Sprintf("persist stats for player %s event %s: %v", line.PlayerID, event.ID, err))
				if !options.ContinueOnError {
					return markSystemicError(markDataError(err))
				}
				continue
			}
		}
		state.addRecordsProcessed(len(rows))
	}
	return nil
}

// resolveStatPlayer maps a box-score line to an internal player id, auto-
// linking through the matcher when no link exists yet.
func (s *SyncService) resolveStatPlayer(ctx context.Context, state *runState, line ExternalStatLine, candidates []player.Player, options SyncOptions) (int64, bool) {
	linked, found, err := s.players.GetByExternalID(ctx, line.PlayerID)
	if err != nil {
		state.incrDataErrors()
		state.recordError(fmt.Sprintf("lookup player %s: %v", line.PlayerID, err))
		return 0, false
	}
	if found {
		return linked.ID, true
	}

	match := s.matcher.Match(ExternalPlayer{
		ID:     line.PlayerID,
		Name:   line.PlayerName,
		Team:   line.Team,
		Active: true,
	}, candidates)
	if match.InternalID == nil {
		state.incrMatchingErrors()
		state.recordWarning(fmt.Sprintf("no confident match for %s (%s), stats skipped", line.PlayerID, line.PlayerName))
		return 0, false
	}

	if !options.DryRun {
		if err := s.players.WriteLink(ctx, *match.InternalID, line.PlayerID); err != nil {
			state.incrDataErrors()
			state.recordError(fmt.Sprintf("link player %s: %v", line.PlayerID, err))
			return 0, false
		}
	}
	return *match.InternalID, true
}

func (s *SyncService) recordItemFailure(ctx context.Context, state *runState, options SyncOptions, message string) {
	state.incrDataErrors()
	state.recordError(message)
	if !options.ContinueOnError {
		state.abort()
		s.logger.ErrorContext(ctx, "sync aborted on item failure", "error", message)
	}
}

// finalize freezes the run result and appends the audit report. The report is
// written even when the run context was cancelled.
func (s *SyncService) finalize(ctx context.Context, state *runState, syncType syncreport.Type, status syncreport.Status) syncreport.Result {
	now := s.now().UTC()
	result := state.finalize(status, now)

	reportID, err := s.ids.NewID()
	if err != nil {
		reportID = fmt.Sprintf("report-%d", now.UnixNano())
	}
	report := syncreport.Report{
		ID:        reportID,
		Type:      syncType,
		Result:    result,
		CreatedAt: now,
	}
	if err := s.reports.Append(context.WithoutCancel(ctx), report); err != nil {
		s.logger.ErrorContext(ctx, "failed to append sync report",
			"report_id", reportID,
			"sync_type", string(syncType),
			"error", err.Error(),
		)
	}
	return result
}

func validateSeasonWeek(season, week int) error {
	if season < minSeason {
		return fmt.Errorf("%w: season %d is too old", ErrInvalidInput, season)
	}
	if week < 1 || week > maxWeek {
		return fmt.Errorf("%w: week %d out of range", ErrInvalidInput, week)
	}
	return nil
}

// rosterPlayerUnchanged reports whether the matched candidate already carries
// this external link and the same roster fields.
func rosterPlayerUnchanged(candidates []player.Player, internalID int64, external ExternalPlayer) bool {
	for _, candidate := range candidates {
		if candidate.ID != internalID {
			continue
		}
		return candidate.ESPNID == external.ID &&
			candidate.Name == external.Name &&
			candidate.Team == external.Team &&
			candidate.Position == external.Position &&
			candidate.Active == external.Active
	}
	return false
}

func activeOnly(roster []ExternalPlayer) []ExternalPlayer {
	filtered := make([]ExternalPlayer, 0, len(roster))
	for _, external := range roster {
		if external.Active {
			filtered = append(filtered, external)
		}
	}
	return filtered
}

// retryFetch retries transient provider failures with linear backoff,
// honoring cancellation between attempts.
func retryFetch[T any](ctx context.Context, maxRetries int, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		value, err := fetch(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		if !isRetryableProviderError(err) || attempt == maxRetries {
			break
		}
		if err := sleepCtx(ctx, time.Duration(attempt+1)*retryBaseDelay); err != nil {
			return zero, lastErr
		}
	}
	return zero, lastErr
}

func isRetryableProviderError(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrDependencyUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// runState owns the mutable counters of one run. All mutation goes through
// the mutex so worker-pool item processing stays safe.
type runState struct {
	mu       sync.Mutex
	result   syncreport.Result
	apiFails int
	stopped  bool
}

func newRunState(startedAt time.Time) *runState {
	return &runState{
		result: syncreport.Result{
			Status:    syncreport.StatusRunning,
			StartedAt: startedAt,
		},
	}
}

func (r *runState) incrPlayersProcessed() { r.mu.Lock(); r.result.PlayersProcessed++; r.mu.Unlock() }
func (r *runState) incrPlayersUpdated()   { r.mu.Lock(); r.result.PlayersUpdated++; r.mu.Unlock() }
func (r *runState) incrNewPlayersAdded()  { r.mu.Lock(); r.result.NewPlayersAdded++; r.mu.Unlock() }
func (r *runState) incrMatchingErrors()   { r.mu.Lock(); r.result.MatchingErrors++; r.mu.Unlock() }
func (r *runState) incrDataErrors()       { r.mu.Lock(); r.result.DataErrors++; r.mu.Unlock() }

func (r *runState) addRecordsProcessed(n int) {
	r.mu.Lock()
	r.result.RecordsProcessed += n
	r.mu.Unlock()
}

func (r *runState) recordError(message string) {
	r.mu.Lock()
	if len(r.result.Errors) < maxRecordedErrors {
		r.result.Errors = append(r.result.Errors, message)
	}
	r.mu.Unlock()
}

func (r *runState) recordWarning(message string) {
	r.mu.Lock()
	if len(r.result.Warnings) < maxRecordedErrors {
		r.result.Warnings = append(r.result.Warnings, message)
	}
	r.mu.Unlock()
}

func (r *runState) recordAPIError(message string) {
	r.mu.Lock()
	r.result.APIErrors++
	r.apiFails++
	if len(r.result.Errors) < maxRecordedErrors {
		r.result.Errors = append(r.result.Errors, message)
	}
	r.mu.Unlock()
}

func (r *runState) consecutiveAPIFailures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apiFails
}

func (r *runState) resetConsecutiveAPIFailures() {
	r.mu.Lock()
	r.apiFails = 0
	r.mu.Unlock()
}

func (r *runState) abort() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
}

func (r *runState) aborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func (r *runState) finalize(status syncreport.Status, endedAt time.Time) syncreport.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Status = status
	r.result.EndedAt = endedAt
	r.result.Duration = endedAt.Sub(r.result.StartedAt)
	return r.result
}
