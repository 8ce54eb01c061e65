package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

const (
	defaultContestLookahead = 24 * time.Hour
	schedulerFanOut         = 4
)

type EnsureContestsResult struct {
	Matches int
	Created int
	Cloned  int
	Failed  int
}

type SyncStatusResult struct {
	Matches int
	Live    int
	Closed  int
	Failed  int
}

// ContestSchedulerService keeps upcoming matches stocked with open contests and moves contest
// status along with the match lifecycle.
type ContestSchedulerService struct {
	matches      MatchProvider
	templateRepo contest.TemplateRepository
	contestRepo  contest.Repository
	cloner       *ContestCloner
	lookahead    time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

func NewContestSchedulerService(
	matches MatchProvider,
	templateRepo contest.TemplateRepository,
	contestRepo contest.Repository,
	cloner *ContestCloner,
	lookahead time.Duration,
	logger *logging.Logger,
) *ContestSchedulerService {
	if logger == nil {
		logger = logging.Default()
	}
	if lookahead <= 0 {
		lookahead = defaultContestLookahead
	}

	return &ContestSchedulerService{
		matches:      matches,
		templateRepo: templateRepo,
		contestRepo:  contestRepo,
		cloner:       cloner,
		lookahead:    lookahead,
		logger:       logger,
		now:          time.Now,
	}
}

// EnsureUpcomingContests creates instance #1 for every active template of matches starting within
// the lookahead window, and clones a template family whose instances are all full.
func (s *ContestSchedulerService) EnsureUpcomingContests(ctx context.Context) (EnsureContestsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestSchedulerService.EnsureUpcomingContests")
	defer span.End()

	upcoming, err := s.matches.ListUpcomingMatches(ctx)
	if err != nil {
		return EnsureContestsResult{}, fmt.Errorf("%w: list upcoming matches: %w", ErrDependencyUnavailable, err)
	}
	templates, err := s.templateRepo.ListTemplates(ctx, true)
	if err != nil {
		return EnsureContestsResult{}, fmt.Errorf("list templates: %w", err)
	}

	now := s.now().UTC()
	horizon := now.Add(s.lookahead)

	var created, cloned, failed, matched atomic.Int32
	workers := pool.New().WithMaxGoroutines(schedulerFanOut)
	for _, fixture := range upcoming {
		if fixture.Started || fixture.Ended || fixture.StartsAt.IsZero() {
			continue
		}
		if fixture.StartsAt.Before(now) || fixture.StartsAt.After(horizon) {
			continue
		}

		matched.Add(1)
		workers.Go(func() {
			for _, tmpl := range templates {
				if !tmpl.AppliesTo(fixture.Format) {
					continue
				}
				c, cl, err := s.stockTemplate(ctx, fixture, tmpl)
				if err != nil {
					failed.Add(1)
					s.logger.ErrorContext(ctx, "ensure contest failed",
						"match_id", fixture.ID,
						"template_id", tmpl.ID,
						"error", err,
					)
					continue
				}
				created.Add(int32(c))
				cloned.Add(int32(cl))
			}
		})
	}
	workers.Wait()

	result := EnsureContestsResult{
		Matches: int(matched.Load()),
		Created: int(created.Load()),
		Cloned:  int(cloned.Load()),
		Failed:  int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "upcoming contests ensured",
		"matches", result.Matches,
		"created", result.Created,
		"cloned", result.Cloned,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *ContestSchedulerService) stockTemplate(ctx context.Context, fixture match.Match, tmpl contest.Template) (int, int, error) {
	instances, err := s.contestRepo.ListByMatchAndTemplate(ctx, fixture.ID, tmpl.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("list contest instances: %w", err)
	}

	if len(instances) == 0 {
		if _, _, err := s.cloner.EnsureFirst(ctx, fixture.ID, tmpl); err != nil {
			return 0, 0, err
		}
		return 1, 0, nil
	}

	for _, item := range instances {
		if !item.IsFull() {
			return 0, 0, nil
		}
	}
	if _, err := s.cloner.Clone(ctx, fixture.ID, tmpl.ID); err != nil {
		return 0, 0, err
	}
	return 0, 1, nil
}

// SyncContestStatuses moves upcoming contests to live once their match starts and live ones to
// processing once it ends. Completion is left to settlement.
func (s *ContestSchedulerService) SyncContestStatuses(ctx context.Context) (SyncStatusResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestSchedulerService.SyncContestStatuses")
	defer span.End()

	open, err := s.contestRepo.ListByStatus(ctx, contest.StatusUpcoming, contest.StatusLive)
	if err != nil {
		return SyncStatusResult{}, fmt.Errorf("list open contests: %w", err)
	}

	byMatch := make(map[string][]contest.Contest)
	for _, item := range open {
		byMatch[item.MatchID] = append(byMatch[item.MatchID], item)
	}

	var live, closed, failed atomic.Int32
	workers := pool.New().WithMaxGoroutines(schedulerFanOut)
	for matchID, items := range byMatch {
		workers.Go(func() {
			state, err := s.matches.GetMatchState(ctx, matchID)
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "match state unavailable, contest status unchanged",
					"match_id", matchID,
					"error", err,
				)
				return
			}

			now := s.now().UTC()
			for _, item := range items {
				next := nextContestStatus(item.Status, state)
				if next == item.Status {
					continue
				}
				if err := s.contestRepo.UpdateStatus(ctx, item.ID, next, now); err != nil {
					failed.Add(1)
					s.logger.ErrorContext(ctx, "update contest status failed",
						"contest_id", item.ID,
						"status", next,
						"error", err,
					)
					continue
				}
				if next == contest.StatusLive {
					live.Add(1)
				} else {
					closed.Add(1)
				}
			}
		})
	}
	workers.Wait()

	result := SyncStatusResult{
		Matches: len(byMatch),
		Live:    int(live.Load()),
		Closed:  int(closed.Load()),
		Failed:  int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "contest statuses synced",
		"matches", result.Matches,
		"live", result.Live,
		"processing", result.Closed,
		"failed", result.Failed,
	)
	return result, nil
}

// PendingSettlements returns the ids of matches that still have contests in processing, sorted.
func (s *ContestSchedulerService) PendingSettlements(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestSchedulerService.PendingSettlements")
	defer span.End()

	processing, err := s.contestRepo.ListByStatus(ctx, contest.StatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("list processing contests: %w", err)
	}

	seen := make(map[string]struct{}, len(processing))
	out := make([]string, 0, len(processing))
	for _, item := range processing {
		if _, ok := seen[item.MatchID]; ok {
			continue
		}
		seen[item.MatchID] = struct{}{}
		out = append(out, item.MatchID)
	}
	slices.Sort(out)
	return out, nil
}

func nextContestStatus(current contest.Status, state match.State) contest.Status {
	switch {
	case state.Ended && (current == contest.StatusUpcoming || current == contest.StatusLive):
		return contest.StatusProcessing
	case state.Started && current == contest.StatusUpcoming:
		return contest.StatusLive
	default:
		return current
	}
}
