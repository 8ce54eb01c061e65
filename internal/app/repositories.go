package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-cricket/external/cricketdata"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/outcome"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type repositories struct {
	templates      contest.TemplateRepository
	contests       contest.Repository
	teams          team.Repository
	participations participation.Repository
	performances   performance.Repository
	outcomes       outcome.Repository
}

// buildRepositories picks Postgres when a database is attached, otherwise the in-memory store.
// Template and team reads go through the TTL cache when it is enabled.
func buildRepositories(ctx context.Context, cfg config.Config, db *sqlx.DB) (repositories, error) {
	var repos repositories
	if db != nil {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		repos = repositories{
			templates:      postgres.NewTemplateRepository(db),
			contests:       postgres.NewContestRepository(db),
			teams:          postgres.NewTeamRepository(db),
			participations: postgres.NewParticipationRepository(db),
			performances:   postgres.NewPerformanceRepository(db),
			outcomes:       postgres.NewOutcomeRepository(db),
		}
	} else {
		participations := memory.NewParticipationRepository()
		repos = repositories{
			templates:      memory.NewTemplateRepository(memory.SeedTemplates()),
			contests:       memory.NewContestRepository(),
			teams:          memory.NewTeamRepository(),
			participations: participations,
			performances:   memory.NewPerformanceRepository(),
			outcomes:       memory.NewOutcomeRepository(participations),
		}
	}

	if cfg.CacheEnabled {
		repos.templates = cache.NewTemplateRepository(repos.templates, cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, cfg.CacheTTL)
	}
	return repos, nil
}

type matchSource interface {
	usecase.MatchProvider
	usecase.EventSource
}

func buildMatchSource(cfg config.Config, logger *logging.Logger) matchSource {
	if cfg.CricketDataEnabled {
		return cricketdata.NewClient(cricketdata.ClientConfig{
			BaseURL:           cfg.CricketDataBaseURL,
			APIKey:            cfg.CricketDataAPIKey,
			Timeout:           cfg.CricketDataTimeout,
			MaxRetries:        cfg.CricketDataMaxRetries,
			RequestsPerMinute: cfg.CricketDataRPM,
			Logger:            logger,
			CircuitBreaker:    breakerConfig("cricketdata", cfg.CricketDataCircuit, logger),
		})
	}

	logger.Warn("cricketdata disabled, serving seeded fixtures from memory")
	return memory.NewMatchCatalog(memory.SeedMatches(time.Now().UTC()))
}

func breakerConfig(name string, c config.CircuitConfig, logger *logging.Logger) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Name:             name,
		Enabled:          c.Enabled,
		FailureThreshold: c.FailureCount,
		OpenTimeout:      c.OpenTimeout,
		HalfOpenMaxReq:   c.HalfOpenMaxReq,
		OnStateChange: func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "upstream", name, "from", from, "to", to)
		},
	}
}
