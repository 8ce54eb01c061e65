package usecase

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/outcome"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

const (
	captainMultiplier     = 2.0
	viceCaptainMultiplier = 1.5

	defaultSettlementWorkers = 4
)

type ContestSettlement struct {
	ContestID    string
	Participants int
	Winners      int
	Status       string
	Message      string
}

type SettlementSummary struct {
	MatchID   string
	Score     ScoreSummary
	Contests  []ContestSettlement
	Succeeded int
	Failed    int
}

// ResultService ranks contest participants and distributes prizes.
type ResultService struct {
	contestRepo       contest.Repository
	participationRepo participation.Repository
	teamRepo          team.Repository
	perfRepo          performance.Repository
	outcomeRepo       outcome.Repository
	scoring           *ScoringService
	workers           int
	logger            *logging.Logger
	now               func() time.Time
}

func NewResultService(
	contestRepo contest.Repository,
	participationRepo participation.Repository,
	teamRepo team.Repository,
	perfRepo performance.Repository,
	outcomeRepo outcome.Repository,
	scoring *ScoringService,
	workers int,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultSettlementWorkers
	}

	return &ResultService{
		contestRepo:       contestRepo,
		participationRepo: participationRepo,
		teamRepo:          teamRepo,
		perfRepo:          perfRepo,
		outcomeRepo:       outcomeRepo,
		scoring:           scoring,
		workers:           workers,
		logger:            logger,
		now:               time.Now,
	}
}

type rankedEntry struct {
	participation participation.Participation
	points        float64
	snapshot      outcome.TeamSnapshot
}

// CalculateResults is idempotent: rerunning on unchanged performances writes the same ranks,
// points and prizes.
func (s *ResultService) CalculateResults(ctx context.Context, matchID, contestID string) ([]outcome.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.CalculateResults")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	contestID = strings.TrimSpace(contestID)
	if matchID == "" || contestID == "" {
		return nil, fmt.Errorf("%w: match_id and contest_id are required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest: %w", err)
	}
	if !exists || item.MatchID != matchID {
		return nil, fmt.Errorf("%w: contest=%s match=%s", ErrNotFound, contestID, matchID)
	}

	parts, err := s.participationRepo.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}

	teamIDs := make([]string, 0, len(parts))
	for _, p := range parts {
		teamIDs = append(teamIDs, p.TeamID)
	}
	slices.Sort(teamIDs)
	teamIDs = slices.Compact(teamIDs)

	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	perfs, err := s.perfRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match performances: %w", err)
	}
	pointsByPlayer := make(map[string]float64, len(perfs))
	for _, perf := range perfs {
		pointsByPlayer[perf.PlayerID] = perf.Points
	}

	entries := make([]rankedEntry, 0, len(parts))
	for _, p := range parts {
		t, ok := teamByID[p.TeamID]
		if !ok {
			s.logger.WarnContext(ctx, "participation team missing, scoring zero",
				"participation_id", p.ID,
				"team_id", p.TeamID,
			)
		}
		points, snapshot := teamPoints(t, p.TeamID, pointsByPlayer)
		entries = append(entries, rankedEntry{participation: p, points: points, snapshot: snapshot})
	}
	rankEntries(entries)

	cancelled := item.Status == contest.StatusCancelled
	var prizes []int64
	if !cancelled {
		prizes, err = contest.DistributePrizes(item.PrizePolicy, item.TotalPrize, len(entries))
		if err != nil {
			return nil, fmt.Errorf("distribute prizes: %w", err)
		}
	}

	now := s.now().UTC()
	results := make([]participation.Result, 0, len(entries))
	outcomes := make([]outcome.Outcome, 0, len(entries))
	for i, entry := range entries {
		var prize int64
		result := outcome.ResultCancelled
		if !cancelled {
			prize = prizes[i]
			result = outcome.ResultLoss
			if prize > 0 {
				result = outcome.ResultWin
			}
		}

		results = append(results, participation.Result{
			ParticipationID: entry.participation.ID,
			Points:          entry.points,
			Rank:            i + 1,
			IsWinner:        prize > 0,
			PrizeWon:        prize,
			SettledAt:       now,
		})
		outcomes = append(outcomes, outcome.Outcome{
			UserID:          entry.participation.UserID,
			ContestID:       contestID,
			MatchID:         matchID,
			ParticipationID: entry.participation.ID,
			Rank:            i + 1,
			Points:          entry.points,
			PrizeWon:        prize,
			Result:          result,
			TeamSnapshot:    entry.snapshot,
			SettledAt:       now,
		})
	}

	if err := s.outcomeRepo.SaveSettlement(ctx, contestID, results, outcomes); err != nil {
		return nil, fmt.Errorf("save settlement: %w", err)
	}
	if !cancelled && item.Status != contest.StatusCompleted {
		if err := s.contestRepo.UpdateStatus(ctx, contestID, contest.StatusCompleted, now); err != nil {
			return nil, fmt.Errorf("mark contest completed: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "contest results calculated",
		"match_id", matchID,
		"contest_id", contestID,
		"participants", len(outcomes),
		"cancelled", cancelled,
	)

	return outcomes, nil
}

// SettleMatch rescores the match and settles every contest of it on a bounded worker pool.
func (s *ResultService) SettleMatch(ctx context.Context, matchID string) (SettlementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SettleMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return SettlementSummary{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	summary := SettlementSummary{MatchID: matchID}
	if s.scoring != nil {
		score, err := s.scoring.ScoreMatch(ctx, matchID)
		if err != nil {
			return SettlementSummary{}, fmt.Errorf("score match: %w", err)
		}
		summary.Score = score
	}

	contests, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list contests by match: %w", err)
	}
	if len(contests) == 0 {
		return summary, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(contests)))
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, item := range contests {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := ContestSettlement{ContestID: item.ID, Status: "success"}
			outcomes, err := s.CalculateResults(ctx, matchID, item.ID)
			if err != nil {
				row.Status = "failed"
				row.Message = err.Error()
				s.logger.ErrorContext(ctx, "contest settlement failed",
					"match_id", matchID,
					"contest_id", item.ID,
					"error", err,
				)
			}
			row.Participants = len(outcomes)
			for _, o := range outcomes {
				if o.Result == outcome.ResultWin {
					row.Winners++
				}
			}

			mu.Lock()
			summary.Contests = append(summary.Contests, row)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return SettlementSummary{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	slices.SortFunc(summary.Contests, func(a, b ContestSettlement) int {
		return strings.Compare(a.ContestID, b.ContestID)
	})
	for _, row := range summary.Contests {
		if row.Status == "success" {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	s.logger.InfoContext(ctx, "match settled",
		"match_id", matchID,
		"contests", len(summary.Contests),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)

	return summary, nil
}

func teamPoints(t team.Team, teamID string, pointsByPlayer map[string]float64) (float64, outcome.TeamSnapshot) {
	snapshot := outcome.TeamSnapshot{
		TeamID:        teamID,
		CaptainID:     t.CaptainID,
		ViceCaptainID: t.ViceCaptainID,
		Players:       make([]outcome.SnapshotPlayer, 0, len(t.Players)),
	}

	var total float64
	for _, pick := range t.Players {
		row := outcome.SnapshotPlayer{PlayerID: pick.PlayerID, Role: outcome.RolePlayer}
		points := pointsByPlayer[pick.PlayerID]
		switch pick.PlayerID {
		case t.CaptainID:
			row.Role = outcome.RoleCaptain
			points *= captainMultiplier
		case t.ViceCaptainID:
			row.Role = outcome.RoleViceCaptain
			points *= viceCaptainMultiplier
		}
		row.Points = roundPoints(points)
		total += points
		snapshot.Players = append(snapshot.Players, row)
	}

	return roundPoints(total), snapshot
}

// rankEntries orders by points, then earliest join, then participation id.
func rankEntries(entries []rankedEntry) {
	slices.SortStableFunc(entries, func(a, b rankedEntry) int {
		if a.points != b.points {
			return cmp.Compare(b.points, a.points)
		}
		if c := a.participation.JoinedAt.Compare(b.participation.JoinedAt); c != 0 {
			return c
		}
		return strings.Compare(a.participation.ID, b.participation.ID)
	})
}

func roundPoints(v float64) float64 {
	return math.Round(v*100) / 100
}
