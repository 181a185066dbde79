package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/matching"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
)

const (
	defaultAutoLinkThreshold     = 0.9
	defaultManualReviewThreshold = 0.1
	defaultNameWeight            = 0.7
	defaultTeamWeight            = 0.2
	defaultPositionWeight        = 0.1
	defaultMaxAlternates         = 5

	exactNamePositionScore = 0.85
	nicknameBonus          = 0.2
	phoneticBonus          = 0.15
)

// MatchingConfig tunes the scoring policy. Thresholds and weights are policy,
// not algorithm: deployments adjust them without code changes.
type MatchingConfig struct {
	AutoLinkThreshold     float64
	ManualReviewThreshold float64
	NameWeight            float64
	TeamWeight            float64
	PositionWeight        float64
	MaxAlternates         int
}

func (c MatchingConfig) normalized() MatchingConfig {
	if c.AutoLinkThreshold <= 0 || c.AutoLinkThreshold > 1 {
		c.AutoLinkThreshold = defaultAutoLinkThreshold
	}
	if c.ManualReviewThreshold <= 0 || c.ManualReviewThreshold >= c.AutoLinkThreshold {
		c.ManualReviewThreshold = defaultManualReviewThreshold
	}
	if c.MaxAlternates <= 0 {
		c.MaxAlternates = defaultMaxAlternates
	}

	sum := c.NameWeight + c.TeamWeight + c.PositionWeight
	if c.NameWeight < 0 || c.TeamWeight < 0 || c.PositionWeight < 0 || sum <= 0 {
		c.NameWeight = defaultNameWeight
		c.TeamWeight = defaultTeamWeight
		c.PositionWeight = defaultPositionWeight
		return c
	}
	c.NameWeight /= sum
	c.TeamWeight /= sum
	c.PositionWeight /= sum
	return c
}

// MatchingService resolves external player identities against the internal
// catalog. Scoring is pure; the service only accumulates counters and the
// manual-review view.
type MatchingService struct {
	players player.Repository
	config  MatchingConfig
	logger  *logging.Logger
	now     func() time.Time

	mu          sync.Mutex
	totalSeen   int
	autoLinks   int
	manualLinks int
	byMethod    map[matching.Method]int
	review      map[string]matching.UnmatchedPlayer
}

func NewMatchingService(players player.Repository, config MatchingConfig, logger *logging.Logger) *MatchingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchingService{
		players:  players,
		config:   config.normalized(),
		logger:   logger,
		now:      time.Now,
		byMethod: make(map[matching.Method]int),
		review:   make(map[string]matching.UnmatchedPlayer),
	}
}

// Match scores one external player against the candidate set and applies the
// threshold policy to the best candidate. Every candidate is evaluated.
func (s *MatchingService) Match(external ExternalPlayer, candidates []player.Player) matching.PlayerMatchResult {
	result := matching.PlayerMatchResult{
		ExternalID:   strings.TrimSpace(external.ID),
		ExternalName: strings.TrimSpace(external.Name),
		Method:       matching.MethodNoMatch,
		MatchedAt:    s.now().UTC(),
	}

	externalNorm := normalizeName(external.Name)
	if externalNorm == "" {
		s.record(result, []string{"external name is empty"})
		return result
	}
	if len(candidates) == 0 {
		s.record(result, []string{"no candidates available"})
		return result
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, s.scoreCandidate(externalNorm, external, candidate))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].candidate.InternalID < scored[j].candidate.InternalID
	})

	best := scored[0]
	result.Score = best.score
	result.Method = best.method

	switch {
	case best.score >= s.config.AutoLinkThreshold:
		internalID := best.candidate.InternalID
		result.InternalID = &internalID
	case best.score < s.config.ManualReviewThreshold:
		result.Method = matching.MethodNoMatch
	default:
		result.RequiresManualReview = true
		limit := s.config.MaxAlternates
		if limit > len(scored) {
			limit = len(scored)
		}
		alternates := make([]matching.Candidate, 0, limit)
		for _, entry := range scored[:limit] {
			alternates = append(alternates, entry.candidate)
		}
		result.Alternates = alternates
	}

	s.record(result, best.candidate.Reasons)
	return result
}

// MatchAll processes every external record independently. A record that cannot
// be scored yields a no-match result with a reason instead of failing the batch.
func (s *MatchingService) MatchAll(externals []ExternalPlayer, candidates []player.Player) []matching.PlayerMatchResult {
	results := make([]matching.PlayerMatchResult, 0, len(externals))
	for _, external := range externals {
		results = append(results, s.Match(external, candidates))
	}
	return results
}

// FindMatchingPlayer loads the candidate catalog and matches one external
// player against it.
func (s *MatchingService) FindMatchingPlayer(ctx context.Context, external ExternalPlayer) (matching.PlayerMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchingService.FindMatchingPlayer")
	defer span.End()

	if strings.TrimSpace(external.ID) == "" {
		return matching.PlayerMatchResult{}, fmt.Errorf("%w: external player id is required", ErrInvalidInput)
	}

	candidates, err := s.players.ListCandidates(ctx, player.CandidateFilter{})
	if err != nil {
		return matching.PlayerMatchResult{}, fmt.Errorf("load candidates: %w", err)
	}

	return s.Match(external, candidates), nil
}

// LinkPlayer writes a manual link, bypassing scoring. Re-issuing the same pair
// succeeds without duplicating; a new external id for an already-linked player
// replaces the prior link.
func (s *MatchingService) LinkPlayer(ctx context.Context, internalID int64, externalID string) error {
	ctx, span := startUsecaseSpan(ctx, "MatchingService.LinkPlayer")
	defer span.End()

	externalID = strings.TrimSpace(externalID)
	if internalID <= 0 {
		return fmt.Errorf("%w: internal player id must be positive", ErrInvalidInput)
	}
	if externalID == "" {
		return fmt.Errorf("%w: external player id is required", ErrInvalidInput)
	}

	if err := s.players.WriteLink(ctx, internalID, externalID); err != nil {
		return markMatchingError(fmt.Errorf("write player link: %w", err))
	}

	s.mu.Lock()
	s.manualLinks++
	s.byMethod[matching.MethodManualLink]++
	delete(s.review, externalID)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "manual player link written",
		"internal_id", internalID,
		"external_id", externalID,
	)
	return nil
}

// Statistics reports totals accumulated since the service started.
func (s *MatchingService) Statistics() matching.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	byMethod := make(map[matching.Method]int, len(s.byMethod))
	for method, count := range s.byMethod {
		byMethod[method] = count
	}
	successful := s.autoLinks + s.manualLinks

	stats := matching.Statistics{
		TotalExternalPlayers: s.totalSeen,
		SuccessfulMatches:    successful,
		ManualLinks:          s.manualLinks,
		MatchesByMethod:      byMethod,
	}
	if s.totalSeen > 0 {
		stats.SuccessRate = float64(successful) / float64(s.totalSeen)
	}
	return stats
}

// UnmatchedPlayers returns the manual-review queue, best score first.
func (s *MatchingService) UnmatchedPlayers() []matching.UnmatchedPlayer {
	s.mu.Lock()
	unmatched := make([]matching.UnmatchedPlayer, 0, len(s.review))
	for _, entry := range s.review {
		unmatched = append(unmatched, entry)
	}
	s.mu.Unlock()

	sort.SliceStable(unmatched, func(i, j int) bool {
		if unmatched[i].BestScore != unmatched[j].BestScore {
			return unmatched[i].BestScore > unmatched[j].BestScore
		}
		return unmatched[i].ExternalID < unmatched[j].ExternalID
	})
	return unmatched
}

type scoredCandidate struct {
	candidate matching.Candidate
	score     float64
	method    matching.Method
}

func (s *MatchingService) scoreCandidate(externalNorm string, external ExternalPlayer, candidate player.Player) scoredCandidate {
	candidateNorm := normalizeName(candidate.Name)
	teamEqual := strings.EqualFold(strings.TrimSpace(external.Team), strings.TrimSpace(candidate.Team))
	positionEqual := strings.EqualFold(strings.TrimSpace(external.Position), strings.TrimSpace(candidate.Position))

	entry := scoredCandidate{
		candidate: matching.Candidate{
			InternalID: candidate.ID,
			Name:       candidate.Name,
			Team:       candidate.Team,
			Position:   candidate.Position,
		},
	}

	if candidateNorm != "" && candidateNorm == externalNorm {
		if teamEqual {
			entry.score = 1.0
			entry.method = matching.MethodExactNameAndTeam
			entry.candidate.Reasons = []string{"exact name and team match"}
			entry.candidate.Score = entry.score
			return entry
		}
		if positionEqual {
			entry.score = exactNamePositionScore
			entry.method = matching.MethodExactNameAndPosition
			entry.candidate.Reasons = []string{"exact name match, team differs, position matches"}
			entry.candidate.Score = entry.score
			return entry
		}
	}

	nameScore := editSimilarity(externalNorm, candidateNorm)
	method := matching.MethodFuzzyNameAndTeam
	reasons := []string{fmt.Sprintf("name similarity %.2f", nameScore)}

	switch {
	case externalNorm != candidateNorm && expandNicknames(externalNorm) == expandNicknames(candidateNorm):
		nameScore += nicknameBonus
		method = matching.MethodNameVariation
		reasons = append(reasons, "known name variation")
	case externalNorm != candidateNorm && phoneticEqual(externalNorm, candidateNorm):
		nameScore += phoneticBonus
		method = matching.MethodPhonetic
		reasons = append(reasons, "phonetic equivalence")
	}
	if nameScore > 1 {
		nameScore = 1
	}

	teamScore := 0.0
	if teamEqual {
		teamScore = 1
		reasons = append(reasons, "team match")
	}
	positionScore := 0.0
	if positionEqual {
		positionScore = 1
		reasons = append(reasons, "position match")
	}

	entry.score = s.config.NameWeight*nameScore + s.config.TeamWeight*teamScore + s.config.PositionWeight*positionScore
	entry.method = method
	entry.candidate.Score = entry.score
	entry.candidate.Reasons = reasons
	return entry
}

func (s *MatchingService) record(result matching.PlayerMatchResult, reasons []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalSeen++
	s.byMethod[result.Method]++

	if result.RequiresManualReview {
		s.review[result.ExternalID] = matching.UnmatchedPlayer{
			ExternalID:   result.ExternalID,
			ExternalName: result.ExternalName,
			BestScore:    result.Score,
			Reasons:      reasons,
		}
		return
	}
	if result.InternalID != nil {
		s.autoLinks++
		delete(s.review, result.ExternalID)
	}
}
