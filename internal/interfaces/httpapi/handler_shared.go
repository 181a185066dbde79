package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/syncreport"
)

// syncTypeFromPath returns the raw {syncType} path segment. Validation happens
// in the use case so unknown types map to a single error shape.
func syncTypeFromPath(r *http.Request) syncreport.Type {
	return syncreport.Type(strings.TrimSpace(r.PathValue("syncType")))
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
