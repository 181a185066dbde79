package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
	"github.com/JackBruzan/espn-scrape-sub004/internal/usecase"
)

type Handler struct {
	syncService     *usecase.SyncService
	matchingService *usecase.MatchingService
	statsRepo       playerstats.Repository
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	syncService *usecase.SyncService,
	matchingService *usecase.MatchingService,
	statsRepo playerstats.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		syncService:     syncService,
		matchingService: matchingService,
		statsRepo:       statsRepo,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type gameStatDTO struct {
	PlayerID int64   `json:"playerId"`
	GameID   string  `json:"gameId"`
	Season   int     `json:"season"`
	Week     int     `json:"week"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

func (h *Handler) ListGameStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameStats")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if gameID == "" {
		writeError(ctx, w, fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput))
		return
	}

	rows, err := h.statsRepo.ListByGame(ctx, gameID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list game stats failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameStatDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, gameStatDTO{
			PlayerID: row.PlayerID,
			GameID:   row.GameID,
			Season:   row.Season,
			Week:     row.Week,
			Name:     row.Name,
			Category: string(row.Category),
			Value:    row.Value,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// decodeJSONBody decodes into dst and runs struct validation. An empty body
// leaves dst at its zero value.
func (h *Handler) decodeJSONBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
