package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/pointrule"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/scheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// Container owns every long-lived dependency shared by the API and the worker.
type Container struct {
	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB

	Contests         *usecase.ContestService
	Teams            *usecase.TeamService
	Allocator        *usecase.AllocatorService
	Scoring          *usecase.ScoringService
	Results          *usecase.ResultService
	Stats            *usecase.StatsService
	ContestScheduler *usecase.ContestSchedulerService
	Dispatcher       scheduler.SettlementDispatcher
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var db *sqlx.DB
	if cfg.DBEnabled {
		opened, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened
		logger.Info("database connected", "db_name", parsePostgresDSN(cfg.DBURL, false).Name)
	} else {
		logger.Warn("database disabled, using in-memory repositories")
	}

	c, err := build(ctx, cfg, logger, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	return c, nil
}

func build(ctx context.Context, cfg config.Config, logger *logging.Logger, db *sqlx.DB) (*Container, error) {
	repos, err := buildRepositories(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	calculator, err := loadPointRules(cfg.PointRulesPath)
	if err != nil {
		return nil, err
	}
	logger.Info("point rules loaded", "version", calculator.Version(), "path", cfg.PointRulesPath)

	matches := buildMatchSource(cfg, logger)

	rules := team.DefaultRules()
	rules.MaxTeamsPerMatch = cfg.MaxTeamsPerMatch

	cloner := usecase.NewContestCloner(repos.contests, repos.templates, idgen.NewUUIDGenerator("ctst_"), logger)
	scoring := usecase.NewScoringService(matches, matches, repos.performances, calculator, logger)
	results := usecase.NewResultService(
		repos.contests,
		repos.participations,
		repos.teams,
		repos.performances,
		repos.outcomes,
		scoring,
		cfg.SettlementWorkers,
		logger,
	)

	c := &Container{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		Contests:  usecase.NewContestService(repos.templates, repos.contests, repos.participations, idgen.NewUUIDGenerator("tmpl_"), logger),
		Teams:     usecase.NewTeamService(repos.teams, matches, rules, idgen.NewUUIDGenerator("team_"), logger),
		Allocator: usecase.NewAllocatorService(repos.contests, repos.templates, repos.participations, repos.teams, matches, cloner, idgen.NewUUIDGenerator("part_"), logger),
		Scoring:   scoring,
		Results:   results,
		Stats:     usecase.NewStatsService(repos.teams, cfg.StatsCacheTTL, logger),
		ContestScheduler: usecase.NewContestSchedulerService(
			matches,
			repos.templates,
			repos.contests,
			cloner,
			cfg.SchedulerLookahead,
			logger,
		),
	}
	c.Dispatcher = c.buildDispatcher()

	return c, nil
}

func loadPointRules(path string) (*pointrule.Calculator, error) {
	if path == "" {
		calculator, err := pointrule.Default()
		if err != nil {
			return nil, fmt.Errorf("load default point rules: %w", err)
		}
		return calculator, nil
	}

	calculator, err := pointrule.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load point rules %s: %w", path, err)
	}
	return calculator, nil
}

// buildDispatcher sends settlements through QStash when configured so they survive restarts;
// otherwise matches are settled inline on the scheduler goroutine.
func (c *Container) buildDispatcher() scheduler.SettlementDispatcher {
	if !c.cfg.QStashEnabled {
		return scheduler.InProcessSettlement{Settler: c.Results}
	}

	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          c.cfg.QStashBaseURL,
		Token:            c.cfg.QStashToken,
		TargetBaseURL:    c.cfg.QStashTargetBaseURL,
		Retries:          c.cfg.QStashRetries,
		InternalJobToken: c.cfg.InternalJobToken,
		CircuitBreaker:   breakerConfig("qstash", c.cfg.QStashCircuit, c.logger),
		Logger:           c.logger,
	})
}

func (c *Container) NewHTTPServer() (*http.Server, error) {
	if c.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	verifier := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: c.cfg.AnubisTimeout},
		BaseURL:        c.cfg.AnubisBaseURL,
		IntrospectPath: c.cfg.AnubisIntrospectURL,
		AdminKey:       c.cfg.AnubisAdminKey,
		CacheTTL:       c.cfg.CacheTTL,
		CircuitBreaker: breakerConfig("anubis", c.cfg.AnubisCircuit, c.logger),
		Logger:         c.logger,
	})

	handler := httpapi.NewHandler(
		c.Contests,
		c.Teams,
		c.Allocator,
		c.Scoring,
		c.Results,
		c.Stats,
		c.ContestScheduler,
		c.logger,
	)
	router := httpapi.NewRouter(handler, verifier, c.logger, c.cfg.CORSAllowedOrigins, c.cfg.InternalJobToken)

	return &http.Server{
		Addr:         c.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.cfg.ReadTimeout,
		WriteTimeout: c.cfg.WriteTimeout,
	}, nil
}

func (c *Container) NewScheduler() (*scheduler.Scheduler, error) {
	return scheduler.New(scheduler.Config{
		ContestInterval: c.cfg.SchedulerContestInterval,
		StatusInterval:  c.cfg.SchedulerStatusInterval,
	}, c.ContestScheduler, c.Dispatcher, c.logger)
}

func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
