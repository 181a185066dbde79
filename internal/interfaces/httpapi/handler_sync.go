package httpapi

import (
	"net/http"

	"github.com/JackBruzan/espn-scrape-sub004/internal/usecase"
)

type syncOptionsRequest struct {
	ForceFullSync   bool `json:"forceFullSync"`
	SkipInactive    bool `json:"skipInactive"`
	BatchSize       int  `json:"batchSize" validate:"gte=0,lte=500"`
	ContinueOnError bool `json:"continueOnError"`
	MaxRetries      int  `json:"maxRetries" validate:"gte=0,lte=10"`
	DryRun          bool `json:"dryRun"`
}

func (r syncOptionsRequest) toOptions() usecase.SyncOptions {
	return usecase.SyncOptions{
		ForceFullSync:   r.ForceFullSync,
		SkipInactive:    r.SkipInactive,
		BatchSize:       r.BatchSize,
		ContinueOnError: r.ContinueOnError,
		MaxRetries:      r.MaxRetries,
		DryRun:          r.DryRun,
	}
}

type statsSyncRequest struct {
	Season  int                `json:"season" validate:"required,gte=1999"`
	Week    int                `json:"week" validate:"required,gte=1,lte=22"`
	Options syncOptionsRequest `json:"options"`
}

type historicalSyncRequest struct {
	Season    int                `json:"season" validate:"required,gte=1999"`
	StartWeek int                `json:"startWeek" validate:"required,gte=1,lte=22"`
	EndWeek   int                `json:"endWeek" validate:"required,gte=1,lte=22"`
	Options   syncOptionsRequest `json:"options"`
}

func (h *Handler) RunPlayerSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPlayerSync")
	defer span.End()

	var req syncOptionsRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncPlayers(ctx, req.toOptions())
	if err != nil {
		h.logger.WarnContext(ctx, "player sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunPlayerStatsSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPlayerStatsSync")
	defer span.End()

	var req statsSyncRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncPlayerStats(ctx, req.Season, req.Week, req.Options.toOptions())
	if err != nil {
		h.logger.WarnContext(ctx, "player stats sync failed", "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunHistoricalSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunHistoricalSync")
	defer span.End()

	var req historicalSyncRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncHistorical(ctx, req.Season, req.StartWeek, req.EndWeek, req.Options.toOptions())
	if err != nil {
		h.logger.WarnContext(ctx, "historical sync failed",
			"season", req.Season,
			"start_week", req.StartWeek,
			"end_week", req.EndWeek,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) CancelSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelSync")
	defer span.End()

	cancelled := h.syncService.CancelRunningSync()
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}

func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSyncStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"running": h.syncService.IsSyncRunning()})
}

func (h *Handler) GetLastSyncReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLastSyncReport")
	defer span.End()

	report, err := h.syncService.LastSyncReport(ctx, syncTypeFromPath(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ListSyncReports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSyncReports")
	defer span.End()

	limit := parseQueryInt(r, "limit", 0)
	reports, err := h.syncService.SyncHistory(ctx, syncTypeFromPath(r), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reports)
}
