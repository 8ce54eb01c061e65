package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/scheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		HTTPAddr:                 ":0",
		CacheEnabled:             true,
		CacheTTL:                 time.Minute,
		StatsCacheTTL:            time.Second,
		CORSAllowedOrigins:       []string{"*"},
		AnubisTimeout:            time.Second,
		SchedulerContestInterval: time.Minute,
		SchedulerStatusInterval:  time.Minute,
		SchedulerLookahead:       48 * time.Hour,
		SettlementWorkers:        2,
		MaxTeamsPerMatch:         5,
		InternalJobToken:         "job-token",
	}
}

func TestNew_InMemoryContainer(t *testing.T) {
	c, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.Dispatcher.(scheduler.InProcessSettlement); !ok {
		t.Fatalf("expected in-process settlement, got %T", c.Dispatcher)
	}

	result, err := c.ContestScheduler.EnsureUpcomingContests(t.Context())
	if err != nil {
		t.Fatalf("ensure contests: %v", err)
	}
	if result.Matches != 2 || result.Created == 0 {
		t.Fatalf("expected seeded matches to be stocked: %+v", result)
	}

	server, err := c.NewHTTPServer()
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/templates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from templates, got %d: %s", rec.Code, rec.Body.String())
	}

	sched, err := c.NewScheduler()
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = sched.Shutdown() })
}

func TestNew_QStashDispatcher(t *testing.T) {
	cfg := memoryConfig()
	cfg.QStashEnabled = true
	cfg.QStashBaseURL = "https://qstash.example.com"
	cfg.QStashTargetBaseURL = "https://api.example.com"

	c, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build container: %v", err)
	}
	if _, ok := c.Dispatcher.(*jobqueue.QStashPublisher); !ok {
		t.Fatalf("expected qstash dispatcher, got %T", c.Dispatcher)
	}
}

func TestNew_RejectsBrokenPointRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("version: [not-a-number"), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	cfg := memoryConfig()
	cfg.PointRulesPath = path
	_, err := New(t.Context(), cfg, logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "load point rules") {
		t.Fatalf("expected point rules error, got %v", err)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	c, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build container: %v", err)
	}
	if _, err := c.NewHTTPServer(); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
