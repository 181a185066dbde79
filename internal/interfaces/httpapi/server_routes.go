package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games/{gameID}/stats", handler.ListGameStats)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	registerInternalSyncRoutes(mux, handler, internalJobToken)
	registerInternalMatchingRoutes(mux, handler, internalJobToken)
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/sync/players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPlayerSync)))
	mux.Handle("POST /v1/internal/sync/player-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPlayerStatsSync)))
	mux.Handle("POST /v1/internal/sync/historical", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunHistoricalSync)))
	mux.Handle("POST /v1/internal/sync/cancel", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CancelSync)))
	mux.Handle("GET /v1/internal/sync/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetSyncStatus)))
	mux.Handle("GET /v1/internal/sync/reports/{syncType}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListSyncReports)))
	mux.Handle("GET /v1/internal/sync/reports/{syncType}/last", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetLastSyncReport)))
}

func registerInternalMatchingRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/matching/find", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.FindMatchingPlayer)))
	mux.Handle("POST /v1/internal/matching/links", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.LinkPlayer)))
	mux.Handle("GET /v1/internal/matching/unmatched", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListUnmatchedPlayers)))
	mux.Handle("GET /v1/internal/matching/statistics", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetMatchingStatistics)))
}
