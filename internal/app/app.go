package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JackBruzan/espn-scrape-sub004/external/espn"
	"github.com/JackBruzan/espn-scrape-sub004/internal/config"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/playerstats"
	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/syncreport"
	"github.com/JackBruzan/espn-scrape-sub004/internal/infrastructure/repository/memory"
	"github.com/JackBruzan/espn-scrape-sub004/internal/infrastructure/repository/postgres"
	"github.com/JackBruzan/espn-scrape-sub004/internal/interfaces/httpapi"
	idgen "github.com/JackBruzan/espn-scrape-sub004/internal/platform/id"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/resilience"
	"github.com/JackBruzan/espn-scrape-sub004/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the router. The returned
// cleanup closes the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		playerRepo player.Repository
		statsRepo  playerstats.Repository
		reportRepo syncreport.Repository
		cleanup    = func() {}
	)

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL not set, using in-memory repositories")
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		statsRepo = memory.NewStatRepository()
		reportRepo = memory.NewSyncReportRepository()
	} else {
		db, err := openDB(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = db.Close() }
		playerRepo = postgres.NewPlayerRepository(db)
		statsRepo = postgres.NewStatRepository(db)
		reportRepo = postgres.NewSyncReportRepository(db)
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	matchingSvc := usecase.NewMatchingService(playerRepo, usecase.MatchingConfig{
		AutoLinkThreshold:     cfg.MatchAutoLinkThreshold,
		ManualReviewThreshold: cfg.MatchManualReviewThreshold,
		NameWeight:            cfg.MatchNameWeight,
		TeamWeight:            cfg.MatchTeamWeight,
		PositionWeight:        cfg.MatchPositionWeight,
		MaxAlternates:         cfg.MatchMaxAlternates,
	}, logger)

	syncSvc := usecase.NewSyncService(
		espnClient,
		playerRepo,
		statsRepo,
		reportRepo,
		matchingSvc,
		usecase.NewStatsTransformer(),
		idgen.NewRandomGenerator(),
		usecase.SyncConfig{
			MaxConcurrency:           cfg.SyncMaxConcurrency,
			ConsecutiveAPIFailureMax: cfg.SyncAPIFailureMax,
			InterWeekDelay:           cfg.SyncInterWeekDelay,
		},
		logger,
	)

	handler := httpapi.NewHandler(syncSvc, matchingSvc, statsRepo, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
