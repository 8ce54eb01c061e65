package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/pointrule"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type ScoreSummary struct {
	MatchID       string
	Format        match.Format
	Events        int
	Players       int
	Unresolved    int
	UnknownFormat bool
	RulesVersion  int
	ScoredAt      time.Time
}

// ScoringService rebuilds player performances of a match from its full event stream.
type ScoringService struct {
	matches    MatchProvider
	events     EventSource
	perfRepo   performance.Repository
	calculator *pointrule.Calculator
	logger     *logging.Logger
	now        func() time.Time

	inflight singleflight.Group
}

func NewScoringService(
	matches MatchProvider,
	events EventSource,
	perfRepo performance.Repository,
	calculator *pointrule.Calculator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matches:    matches,
		events:     events,
		perfRepo:   perfRepo,
		calculator: calculator,
		logger:     logger,
		now:        time.Now,
	}
}

// ScoreMatch is single-flight per match. A failed event fetch aborts the run before anything is written.
func (s *ScoringService) ScoreMatch(ctx context.Context, matchID string) (ScoreSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return ScoreSummary{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	value, err, shared := s.inflight.Do(matchID, func() (any, error) {
		return s.scoreMatch(ctx, matchID)
	})
	if err != nil {
		return ScoreSummary{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "score match shared in-flight run", "match_id", matchID)
	}

	return value.(ScoreSummary), nil
}

func (s *ScoringService) scoreMatch(ctx context.Context, matchID string) (ScoreSummary, error) {
	fixture, exists, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return ScoreSummary{}, fmt.Errorf("%w: get match: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return ScoreSummary{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	events, err := s.events.GetEvents(ctx, matchID)
	if err != nil {
		return ScoreSummary{}, fmt.Errorf("%w: get match events: %w", ErrDependencyUnavailable, err)
	}

	squad, err := s.events.GetSquad(ctx, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "squad unavailable, fielders resolved by id only",
			"match_id", matchID,
			"error", err,
		)
		squad = nil
	}

	folded := performance.Fold(matchID, fixture.Format, events, squad)
	now := s.now().UTC()

	summary := ScoreSummary{
		MatchID:      matchID,
		Format:       fixture.Format,
		Events:       len(events),
		Players:      len(folded.Performances),
		Unresolved:   len(folded.Unresolved),
		RulesVersion: s.calculator.Version(),
		ScoredAt:     now,
	}

	items := make([]performance.PlayerPerformance, 0, len(folded.Performances))
	for _, perf := range folded.Performances {
		points, ok := s.calculator.Points(perf, fixture.Format)
		if !ok {
			summary.UnknownFormat = true
		}
		perf.Points = points
		perf.UpdatedAt = now
		items = append(items, perf)
	}
	if summary.UnknownFormat {
		s.logger.WarnContext(ctx, "no point table for match format, scoring zero points",
			"match_id", matchID,
			"format", fixture.Format,
		)
	}

	for _, credit := range folded.Unresolved {
		s.logger.WarnContext(ctx, "unresolved fielding credit",
			"match_id", matchID,
			"innings", credit.Innings,
			"over", credit.Over,
			"ball", credit.Ball,
			"dismissal", credit.Dismissal,
			"fielder_name", credit.FielderName,
		)
	}

	if err := s.perfRepo.ReplaceForMatch(ctx, matchID, items); err != nil {
		return ScoreSummary{}, fmt.Errorf("replace match performances: %w", err)
	}

	s.logger.InfoContext(ctx, "match scored",
		"match_id", matchID,
		"format", fixture.Format,
		"events", summary.Events,
		"players", summary.Players,
		"unresolved_credits", summary.Unresolved,
		"rules_version", summary.RulesVersion,
	)

	return summary, nil
}
