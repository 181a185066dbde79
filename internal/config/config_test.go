package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.ESPNBaseURL == "" || cfg.ESPNTimeout != 20*time.Second {
		t.Fatalf("unexpected ESPN defaults: %q %s", cfg.ESPNBaseURL, cfg.ESPNTimeout)
	}
	if cfg.MatchAutoLinkThreshold != 0.9 || cfg.MatchManualReviewThreshold != 0.1 {
		t.Fatalf("unexpected match thresholds: %v %v", cfg.MatchAutoLinkThreshold, cfg.MatchManualReviewThreshold)
	}
	if cfg.MatchNameWeight != 0.7 || cfg.MatchTeamWeight != 0.2 || cfg.MatchPositionWeight != 0.1 {
		t.Fatalf("unexpected match weights: %v %v %v", cfg.MatchNameWeight, cfg.MatchTeamWeight, cfg.MatchPositionWeight)
	}
	if cfg.SyncInterWeekDelay != 2*time.Second {
		t.Fatalf("unexpected SyncInterWeekDelay: %s", cfg.SyncInterWeekDelay)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ThresholdOrderingValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MATCH_AUTO_LINK_THRESHOLD", "0.2")
	t.Setenv("MATCH_MANUAL_REVIEW_THRESHOLD", "0.5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when auto link threshold <= manual review threshold")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_ProdRequiresInternalJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-token")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.InternalJobToken != "job-token" {
		t.Fatalf("unexpected InternalJobToken: %q", cfg.InternalJobToken)
	}
}

func TestLoad_ESPNRetriesValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ESPN_MAX_RETRIES", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative ESPN_MAX_RETRIES")
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug").String() != "debug" {
		t.Fatalf("unexpected level for debug")
	}
	if parseLogLevel("bogus").String() != "info" {
		t.Fatalf("unknown levels must fall back to info")
	}
}
