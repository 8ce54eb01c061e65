package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

const (
	jobEnsureContests = "ensure-contests"
	jobSyncStatuses   = "sync-contest-statuses"
)

// ContestJobs is the contest lifecycle work driven on a timer.
type ContestJobs interface {
	EnsureUpcomingContests(ctx context.Context) (usecase.EnsureContestsResult, error)
	SyncContestStatuses(ctx context.Context) (usecase.SyncStatusResult, error)
	PendingSettlements(ctx context.Context) ([]string, error)
}

// SettlementDispatcher starts settlement of one match, either inline or through a queue.
type SettlementDispatcher interface {
	DispatchSettlement(ctx context.Context, matchID string) error
}

type Settler interface {
	SettleMatch(ctx context.Context, matchID string) (usecase.SettlementSummary, error)
}

// InProcessSettlement settles on the scheduler goroutine.
type InProcessSettlement struct {
	Settler Settler
}

func (d InProcessSettlement) DispatchSettlement(ctx context.Context, matchID string) error {
	_, err := d.Settler.SettleMatch(ctx, matchID)
	return err
}

type Config struct {
	ContestInterval time.Duration
	StatusInterval  time.Duration
	JobTimeout      time.Duration
}

// Scheduler runs contest stocking on one interval and status sync followed by settlement
// dispatch on another. Each job is singleton: a slow run pushes the next one back.
type Scheduler struct {
	cron       gocron.Scheduler
	jobs       ContestJobs
	dispatcher SettlementDispatcher
	timeout    time.Duration
	logger     *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg Config, jobs ContestJobs, dispatcher SettlementDispatcher, logger *logging.Logger) (*Scheduler, error) {
	if jobs == nil || dispatcher == nil {
		return nil, errors.New("scheduler requires contest jobs and a settlement dispatcher")
	}
	if cfg.ContestInterval <= 0 || cfg.StatusInterval <= 0 {
		return nil, fmt.Errorf("scheduler intervals must be > 0: contest=%s status=%s", cfg.ContestInterval, cfg.StatusInterval)
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}

	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:       cron,
		jobs:       jobs,
		dispatcher: dispatcher,
		timeout:    cfg.JobTimeout,
		logger:     logger.Named("scheduler"),
		ctx:        ctx,
		cancel:     cancel,
	}

	definitions := []struct {
		name     string
		interval time.Duration
		run      func(context.Context) error
	}{
		{name: jobEnsureContests, interval: cfg.ContestInterval, run: s.ensureContests},
		{name: jobSyncStatuses, interval: cfg.StatusInterval, run: s.syncAndSettle},
	}
	for _, def := range definitions {
		_, err := cron.NewJob(
			gocron.DurationJob(def.interval),
			gocron.NewTask(s.task(def.name, def.run)),
			gocron.WithName(def.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			cancel()
			_ = cron.Shutdown()
			return nil, fmt.Errorf("register job %s: %w", def.name, err)
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler started", "jobs", len(s.cron.Jobs()))
	s.cron.Start()
}

// Shutdown cancels in-flight runs and waits for them to return.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("shutdown gocron scheduler: %w", err)
	}
	s.logger.Info("scheduler stopped")
	return nil
}

// RunOnce executes every job in order on the caller's goroutine.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return errors.Join(s.ensureContests(ctx), s.syncAndSettle(ctx))
}

func (s *Scheduler) task(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		started := time.Now()
		if err := run(ctx); err != nil {
			s.logger.ErrorContext(ctx, "scheduled job failed", "job", name, "error", err)
			return
		}
		s.logger.DebugContext(ctx, "scheduled job finished", "job", name, "duration", time.Since(started))
	}
}

func (s *Scheduler) ensureContests(ctx context.Context) error {
	result, err := s.jobs.EnsureUpcomingContests(ctx)
	if err != nil {
		return fmt.Errorf("ensure upcoming contests: %w", err)
	}
	if result.Failed > 0 {
		s.logger.WarnContext(ctx, "some contest families were not stocked", "failed", result.Failed)
	}
	return nil
}

func (s *Scheduler) syncAndSettle(ctx context.Context) error {
	if _, err := s.jobs.SyncContestStatuses(ctx); err != nil {
		return fmt.Errorf("sync contest statuses: %w", err)
	}

	pending, err := s.jobs.PendingSettlements(ctx)
	if err != nil {
		return fmt.Errorf("list pending settlements: %w", err)
	}

	var errs []error
	for _, matchID := range pending {
		if err := s.dispatcher.DispatchSettlement(ctx, matchID); err != nil {
			s.logger.ErrorContext(ctx, "settlement dispatch failed", "match_id", matchID, "error", err)
			errs = append(errs, fmt.Errorf("match %s: %w", matchID, err))
			continue
		}
		s.logger.InfoContext(ctx, "settlement dispatched", "match_id", matchID)
	}
	return errors.Join(errs...)
}
