package httpapi

import (
	"net/http"
	"time"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/matching"
	"github.com/JackBruzan/espn-scrape-sub004/internal/usecase"
)

type findMatchRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Active   bool   `json:"active"`
}

type linkPlayerRequest struct {
	InternalID int64  `json:"internalId" validate:"required,gt=0"`
	ESPNID     string `json:"espnId" validate:"required"`
}

type matchCandidateDTO struct {
	InternalID int64    `json:"internalId"`
	Name       string   `json:"name"`
	Team       string   `json:"team"`
	Position   string   `json:"position"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons,omitempty"`
}

type matchResultDTO struct {
	ExternalID           string              `json:"externalId"`
	ExternalName         string              `json:"externalName"`
	InternalID           *int64              `json:"internalId,omitempty"`
	Score                float64             `json:"score"`
	Method               string              `json:"method"`
	RequiresManualReview bool                `json:"requiresManualReview"`
	Alternates           []matchCandidateDTO `json:"alternates,omitempty"`
	MatchedAt            time.Time           `json:"matchedAt"`
}

type unmatchedPlayerDTO struct {
	ExternalID   string   `json:"externalId"`
	ExternalName string   `json:"externalName"`
	BestScore    float64  `json:"bestScore"`
	Reasons      []string `json:"reasons,omitempty"`
}

type matchingStatisticsDTO struct {
	TotalExternalPlayers int            `json:"totalExternalPlayers"`
	SuccessfulMatches    int            `json:"successfulMatches"`
	ManualLinks          int            `json:"manualLinks"`
	MatchesByMethod      map[string]int `json:"matchesByMethod"`
	SuccessRate          float64        `json:"successRate"`
}

func (h *Handler) FindMatchingPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindMatchingPlayer")
	defer span.End()

	var req findMatchRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchingService.FindMatchingPlayer(ctx, usecase.ExternalPlayer{
		ID:       req.ID,
		Name:     req.Name,
		Team:     req.Team,
		Position: req.Position,
		Active:   req.Active,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "find matching player failed", "external_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResultToDTO(result))
}

func (h *Handler) LinkPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LinkPlayer")
	defer span.End()

	var req linkPlayerRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchingService.LinkPlayer(ctx, req.InternalID, req.ESPNID); err != nil {
		h.logger.WarnContext(ctx, "link player failed", "internal_id", req.InternalID, "espn_id", req.ESPNID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"linked": true})
}

func (h *Handler) ListUnmatchedPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUnmatchedPlayers")
	defer span.End()

	unmatched := h.matchingService.UnmatchedPlayers()
	items := make([]unmatchedPlayerDTO, 0, len(unmatched))
	for _, u := range unmatched {
		items = append(items, unmatchedPlayerDTO{
			ExternalID:   u.ExternalID,
			ExternalName: u.ExternalName,
			BestScore:    u.BestScore,
			Reasons:      u.Reasons,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchingStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchingStatistics")
	defer span.End()

	stats := h.matchingService.Statistics()
	byMethod := make(map[string]int, len(stats.MatchesByMethod))
	for method, count := range stats.MatchesByMethod {
		byMethod[string(method)] = count
	}

	writeSuccess(ctx, w, http.StatusOK, matchingStatisticsDTO{
		TotalExternalPlayers: stats.TotalExternalPlayers,
		SuccessfulMatches:    stats.SuccessfulMatches,
		ManualLinks:          stats.ManualLinks,
		MatchesByMethod:      byMethod,
		SuccessRate:          stats.SuccessRate,
	})
}

func matchResultToDTO(result matching.PlayerMatchResult) matchResultDTO {
	alternates := make([]matchCandidateDTO, 0, len(result.Alternates))
	for _, alt := range result.Alternates {
		alternates = append(alternates, matchCandidateDTO{
			InternalID: alt.InternalID,
			Name:       alt.Name,
			Team:       alt.Team,
			Position:   alt.Position,
			Score:      alt.Score,
			Reasons:    alt.Reasons,
		})
	}

	return matchResultDTO{
		ExternalID:           result.ExternalID,
		ExternalName:         result.ExternalName,
		InternalID:           result.InternalID,
		Score:                result.Score,
		Method:               string(result.Method),
		RequiresManualReview: result.RequiresManualReview,
		Alternates:           alternates,
		MatchedAt:            result.MatchedAt,
	}
}
