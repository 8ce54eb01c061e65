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
	if cfg.ServiceName != "fantasy-cricket-api" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected service defaults: name=%q addr=%q", cfg.ServiceName, cfg.HTTPAddr)
	}
	if !cfg.DBEnabled || !cfg.DBDisablePreparedBinary {
		t.Fatalf("expected database enabled with prepared binary results disabled")
	}
	if cfg.CacheTTL != time.Minute || cfg.StatsCacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache ttls: %s %s", cfg.CacheTTL, cfg.StatsCacheTTL)
	}
	if cfg.CricketDataEnabled || cfg.CricketDataRPM != 60 || cfg.CricketDataMaxRetries != 2 {
		t.Fatalf("unexpected cricketdata defaults: %+v", cfg)
	}
	if !cfg.SchedulerEnabled || cfg.SchedulerLookahead != 48*time.Hour || cfg.SchedulerStatusInterval != time.Minute {
		t.Fatalf("unexpected scheduler defaults")
	}
	if cfg.SettlementWorkers != 8 || cfg.MaxTeamsPerMatch != 20 {
		t.Fatalf("unexpected worker/team defaults: %d %d", cfg.SettlementWorkers, cfg.MaxTeamsPerMatch)
	}
	if !cfg.AnubisCircuit.Enabled || cfg.AnubisCircuit.FailureCount != 5 || cfg.AnubisCircuit.OpenTimeout != 15*time.Second {
		t.Fatalf("unexpected anubis circuit: %+v", cfg.AnubisCircuit)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BetterStackEndpoint != "s1765114.eu-fsn-3.betterstackdata.com" || cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected betterstack target: %+v", cfg)
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}

	t.Setenv("BETTERSTACK_ENDPOINT", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_Profiling(t *testing.T) {
	t.Run("pprof keeps default addr", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("PPROF_ENABLED", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PprofAddr != ":6060" {
			t.Fatalf("unexpected PprofAddr: %q", cfg.PprofAddr)
		}
	})

	t.Run("pyroscope requires server address", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("PYROSCOPE_ENABLED", "true")
		t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
		}
	})

	t.Run("pyroscope app name follows service name", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("APP_SERVICE_NAME", "cricket-worker")
		t.Setenv("PYROSCOPE_ENABLED", "true")
		t.Setenv("PYROSCOPE_SERVER_ADDRESS", "https://profiles.example.com")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PyroscopeAppName != "cricket-worker" {
			t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
		}
	})
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://play.example.com, ,https://admin.example.com ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty CORS_ALLOWED_ORIGINS")
	}
}

func TestLoad_CricketDataConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CRICKETDATA_ENABLED", "true")
	t.Setenv("CRICKETDATA_API_KEY", "key-123")
	t.Setenv("CRICKETDATA_TIMEOUT", "7s")
	t.Setenv("CRICKETDATA_MAX_RETRIES", "0")
	t.Setenv("CRICKETDATA_RPM", "30")
	t.Setenv("CRICKETDATA_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("CRICKETDATA_CIRCUIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CricketDataAPIKey != "key-123" || cfg.CricketDataTimeout != 7*time.Second {
		t.Fatalf("unexpected cricketdata config: %+v", cfg)
	}
	if cfg.CricketDataMaxRetries != 0 || cfg.CricketDataRPM != 30 {
		t.Fatalf("unexpected retries/rpm: %d %d", cfg.CricketDataMaxRetries, cfg.CricketDataRPM)
	}
	if cfg.CricketDataCircuit.Enabled || cfg.CricketDataCircuit.FailureCount != 3 {
		t.Fatalf("unexpected circuit: %+v", cfg.CricketDataCircuit)
	}

	t.Setenv("CRICKETDATA_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when CRICKETDATA_ENABLED=true without CRICKETDATA_API_KEY")
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "CACHE_TTL", value: "0s"},
		{key: "CACHE_ENABLED", value: "maybe"},
		{key: "STATS_CACHE_TTL", value: "-1s"},
		{key: "DB_DISABLE_PREPARED_BINARY_RESULT", value: "nope"},
		{key: "ANUBIS_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "CRICKETDATA_MAX_RETRIES", value: "-1"},
		{key: "CRICKETDATA_RPM", value: "many"},
		{key: "SCHEDULER_CONTEST_INTERVAL", value: "soon"},
		{key: "SETTLEMENT_WORKERS", value: "0"},
		{key: "MAX_TEAMS_PER_MATCH", value: "0"},
		{key: "QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", value: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_QStashConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qstash-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.example.com")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-token")
	t.Setenv("QSTASH_RETRIES", "5")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.QStashRetries != 5 || cfg.QStashBaseURL != "https://qstash.upstash.io" {
		t.Fatalf("unexpected qstash config: retries=%d base=%q", cfg.QStashRetries, cfg.QStashBaseURL)
	}
	if cfg.InternalJobToken != "job-token" {
		t.Fatalf("unexpected InternalJobToken")
	}
}
