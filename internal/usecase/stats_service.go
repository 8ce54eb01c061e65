package usecase

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

const defaultStatsTTL = 300 * time.Second

type PlayerSelection struct {
	PlayerID       string
	Selected       int
	SelectedPct    float64
	CaptainPct     float64
	ViceCaptainPct float64

	captainCount     int
	viceCaptainCount int
}

type SelectionStats struct {
	MatchID    string
	TotalTeams int
	Players    []PlayerSelection
	ComputedAt time.Time
}

// StatsService computes how often each player is picked across all teams of a match.
type StatsService struct {
	teamRepo team.Repository
	cache    *cache.Store[SelectionStats]
	logger   *logging.Logger
	now      func() time.Time
}

func NewStatsService(teamRepo team.Repository, ttl time.Duration, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}

	return &StatsService{
		teamRepo: teamRepo,
		cache:    cache.NewStore[SelectionStats](ttl, 1024),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *StatsService) SelectionStats(ctx context.Context, matchID string) (SelectionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.SelectionStats")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return SelectionStats{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	return s.cache.GetOrLoad(ctx, "selection:"+matchID, func(ctx context.Context) (SelectionStats, error) {
		return s.compute(ctx, matchID)
	})
}

func (s *StatsService) compute(ctx context.Context, matchID string) (SelectionStats, error) {
	teams, err := s.teamRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return SelectionStats{}, fmt.Errorf("list teams by match: %w", err)
	}

	byPlayer := make(map[string]*PlayerSelection)
	for _, t := range teams {
		for _, pick := range t.Players {
			row, ok := byPlayer[pick.PlayerID]
			if !ok {
				row = &PlayerSelection{PlayerID: pick.PlayerID}
				byPlayer[pick.PlayerID] = row
			}
			row.Selected++
			switch pick.PlayerID {
			case t.CaptainID:
				row.captainCount++
			case t.ViceCaptainID:
				row.viceCaptainCount++
			}
		}
	}

	total := len(teams)
	out := SelectionStats{
		MatchID:    matchID,
		TotalTeams: total,
		Players:    make([]PlayerSelection, 0, len(byPlayer)),
		ComputedAt: s.now().UTC(),
	}
	for _, row := range byPlayer {
		row.SelectedPct = percent(row.Selected, total)
		row.CaptainPct = percent(row.captainCount, total)
		row.ViceCaptainPct = percent(row.viceCaptainCount, total)
		out.Players = append(out.Players, *row)
	}
	slices.SortFunc(out.Players, func(a, b PlayerSelection) int {
		if a.Selected != b.Selected {
			return b.Selected - a.Selected
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})

	s.logger.DebugContext(ctx, "selection stats computed", "match_id", matchID, "teams", total, "players", len(out.Players))
	return out, nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
