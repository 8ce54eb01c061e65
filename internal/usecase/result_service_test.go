package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/outcome"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	outcomemock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/outcome"
)

func (p *platform) join(t *testing.T, userID, prefix, templateID string) (contestID, participationID string) {
	t.Helper()

	created := p.createTeam(t, userID, prefix)
	joined, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     userID,
		MatchID:    testMatchID,
		TemplateID: templateID,
		TeamID:     created.ID,
	})
	if err != nil {
		t.Fatalf("join %s: %v", userID, err)
	}
	return joined.ContestID, joined.ID
}

func (p *platform) setPoints(t *testing.T, points map[string]float64) {
	t.Helper()

	items := make([]performance.PlayerPerformance, 0, len(points))
	for playerID, value := range points {
		items = append(items, performance.PlayerPerformance{
			PlayerID: playerID,
			MatchID:  testMatchID,
			Format:   match.FormatT20,
			Played:   true,
			Points:   value,
		})
	}
	if err := p.performances.ReplaceForMatch(t.Context(), testMatchID, items); err != nil {
		t.Fatalf("store performances: %v", err)
	}
}

func TestResultService_CalculateResults_HeadToHead(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, partA := p.join(t, "user-a", "a", memory.TemplateIDHeadToHead)
	_, partB := p.join(t, "user-b", "b", memory.TemplateIDHeadToHead)
	p.setPoints(t, map[string]float64{"a-01": 120, "b-01": 95})

	outcomes, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("calculate results: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("unexpected outcome count: %d", len(outcomes))
	}

	winner, loser := outcomes[0], outcomes[1]
	if winner.UserID != "user-a" || winner.Rank != 1 || winner.Points != 120 || winner.PrizeWon != 100 || winner.Result != outcome.ResultWin {
		t.Fatalf("unexpected winner: %+v", winner)
	}
	if loser.UserID != "user-b" || loser.Rank != 2 || loser.Points != 95 || loser.PrizeWon != 0 || loser.Result != outcome.ResultLoss {
		t.Fatalf("unexpected loser: %+v", loser)
	}
	if len(winner.TeamSnapshot.Players) != 11 || winner.TeamSnapshot.CaptainID != "a-10" {
		t.Fatalf("unexpected snapshot: %+v", winner.TeamSnapshot)
	}

	storedA, _, _ := p.participations.GetByID(t.Context(), partA)
	storedB, _, _ := p.participations.GetByID(t.Context(), partB)
	if !storedA.IsWinner || storedA.PrizeWon != 100 || storedA.Rank != 1 || storedA.SettledAt == nil {
		t.Fatalf("winner participation not settled: %+v", storedA)
	}
	if storedB.IsWinner || storedB.PrizeWon != 0 || storedB.Rank != 2 {
		t.Fatalf("loser participation not settled: %+v", storedB)
	}

	if got := p.mustGetContest(t, contestID); got.Status != contest.StatusCompleted {
		t.Fatalf("expected completed contest, got %s", got.Status)
	}
}

func TestResultService_CalculateResults_Idempotent(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, _ := p.join(t, "user-a", "a", memory.TemplateIDMegaContest)
	p.join(t, "user-b", "b", memory.TemplateIDMegaContest)
	p.join(t, "user-c", "c", memory.TemplateIDMegaContest)
	p.setPoints(t, map[string]float64{"a-01": 40, "b-01": 80, "c-01": 60})

	first, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("outcome count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.UserID != b.UserID || a.Rank != b.Rank || a.Points != b.Points || a.PrizeWon != b.PrizeWon || a.Result != b.Result {
			t.Fatalf("rerun changed outcome %d: %+v vs %+v", i, a, b)
		}
	}

	stored, err := p.outcomes.ListByContest(t.Context(), contestID)
	if err != nil {
		t.Fatalf("list outcomes: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected one outcome per participant, got %d", len(stored))
	}
}

func TestResultService_CalculateResults_CaptainMultipliers(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, _ := p.join(t, "user-a", "a", memory.TemplateIDMegaContest)
	p.setPoints(t, map[string]float64{"a-01": 7.25, "a-10": 10, "a-11": 10})

	outcomes, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("calculate results: %v", err)
	}
	if got := outcomes[0].Points; got != 42.25 {
		t.Fatalf("unexpected team points: got=%v want=42.25", got)
	}

	roles := map[string]outcome.SnapshotRole{}
	for _, row := range outcomes[0].TeamSnapshot.Players {
		roles[row.PlayerID] = row.Role
	}
	if roles["a-10"] != outcome.RoleCaptain || roles["a-11"] != outcome.RoleViceCaptain || roles["a-01"] != outcome.RolePlayer {
		t.Fatalf("unexpected snapshot roles: %+v", roles)
	}
}

func TestResultService_CalculateResults_TieBreaksOnJoinTime(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	p.allocator.now = steppingClock(time.Now().UTC())

	contestID, _ := p.join(t, "user-b", "b", memory.TemplateIDHeadToHead)
	p.join(t, "user-a", "a", memory.TemplateIDHeadToHead)
	p.setPoints(t, map[string]float64{"a-01": 50, "b-01": 50})

	outcomes, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("calculate results: %v", err)
	}
	if outcomes[0].UserID != "user-b" || outcomes[0].PrizeWon != 100 {
		t.Fatalf("earlier joiner should win the tie: %+v", outcomes[0])
	}
	if outcomes[1].Rank != 2 || outcomes[1].PrizeWon != 0 {
		t.Fatalf("unexpected runner-up: %+v", outcomes[1])
	}
}

func TestResultService_CalculateResults_ConservesPrizePool(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, _ := p.join(t, "user-a", "a", memory.TemplateIDMegaContest)
	p.join(t, "user-b", "b", memory.TemplateIDMegaContest)
	p.join(t, "user-c", "c", memory.TemplateIDMegaContest)
	p.join(t, "user-d", "d", memory.TemplateIDMegaContest)
	p.join(t, "user-e", "e", memory.TemplateIDMegaContest)
	p.setPoints(t, map[string]float64{"a-01": 10, "b-01": 90, "c-01": 70, "d-01": 30, "e-01": 50})

	outcomes, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("calculate results: %v", err)
	}

	wantUsers := []string{"user-b", "user-c", "user-e", "user-d", "user-a"}
	wantPrizes := []int64{2000, 1200, 800, 0, 0}
	var paid int64
	for i, o := range outcomes {
		if o.UserID != wantUsers[i] || o.PrizeWon != wantPrizes[i] || o.Rank != i+1 {
			t.Fatalf("unexpected outcome at %d: %+v", i, o)
		}
		paid += o.PrizeWon
	}
	if paid > 4000 {
		t.Fatalf("paid %d out of a 4000 pool", paid)
	}
}

func TestResultService_CalculateResults_CancelledContest(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, _ := p.join(t, "user-a", "a", memory.TemplateIDHeadToHead)
	p.join(t, "user-b", "b", memory.TemplateIDHeadToHead)
	if err := p.contests.UpdateStatus(t.Context(), contestID, contest.StatusCancelled, time.Now()); err != nil {
		t.Fatalf("cancel contest: %v", err)
	}
	p.setPoints(t, map[string]float64{"a-01": 100})

	outcomes, err := p.results.CalculateResults(t.Context(), testMatchID, contestID)
	if err != nil {
		t.Fatalf("calculate results: %v", err)
	}
	for _, o := range outcomes {
		if o.Result != outcome.ResultCancelled || o.PrizeWon != 0 {
			t.Fatalf("cancelled contest paid out: %+v", o)
		}
	}
	if got := p.mustGetContest(t, contestID); got.Status != contest.StatusCancelled {
		t.Fatalf("cancelled contest changed status to %s", got.Status)
	}
}

func TestResultService_CalculateResults_UnknownContest(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, _ := p.join(t, "user-a", "a", memory.TemplateIDHeadToHead)

	if _, err := p.results.CalculateResults(t.Context(), "match-other", contestID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for mismatched match, got %v", err)
	}
	if _, err := p.results.CalculateResults(t.Context(), testMatchID, "contest-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResultService_CalculateResults_SaveFailureKeepsStatus(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	contestID, _ := p.join(t, "user-a", "a", memory.TemplateIDHeadToHead)

	outcomeRepo := outcomemock.NewRepository(t)
	outcomeRepo.
		On("SaveSettlement", mock.Anything, contestID, mock.Anything, mock.Anything).
		Return(errors.New("write timeout")).
		Once()

	svc := NewResultService(p.contests, p.participations, p.teams, p.performances, outcomeRepo, nil, 1, nil)
	if _, err := svc.CalculateResults(t.Context(), testMatchID, contestID); err == nil {
		t.Fatalf("expected save failure")
	}
	if got := p.mustGetContest(t, contestID); got.Status != contest.StatusUpcoming {
		t.Fatalf("status moved despite failed save: %s", got.Status)
	}
}

func TestResultService_SettleMatch(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	h2h, _ := p.join(t, "user-a", "a", memory.TemplateIDHeadToHead)
	p.join(t, "user-b", "b", memory.TemplateIDHeadToHead)
	mega, _ := p.join(t, "user-c", "c", memory.TemplateIDMegaContest)

	p.catalog.SetEvents(testMatchID, []match.BallEvent{
		{Innings: 1, Over: 0, Ball: 1, BatterID: "a-01", BowlerID: "b-08", RunsOffBat: 6},
		{Innings: 1, Over: 0, Ball: 2, BatterID: "a-01", BowlerID: "b-08", RunsOffBat: 4},
		{Innings: 1, Over: 0, Ball: 3, BatterID: "b-01", BowlerID: "c-08", RunsOffBat: 1},
	})

	summary, err := p.results.SettleMatch(t.Context(), testMatchID)
	if err != nil {
		t.Fatalf("settle match: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 || len(summary.Contests) != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Score.Events != 3 {
		t.Fatalf("unexpected scored events: %+v", summary.Score)
	}

	outcomes, err := p.outcomes.ListByContest(t.Context(), h2h)
	if err != nil {
		t.Fatalf("list outcomes: %v", err)
	}
	if len(outcomes) != 2 || outcomes[0].UserID != "user-a" || outcomes[0].Result != outcome.ResultWin {
		t.Fatalf("unexpected h2h outcomes: %+v", outcomes)
	}
	if got := p.mustGetContest(t, mega); got.Status != contest.StatusCompleted {
		t.Fatalf("mega contest not completed: %s", got.Status)
	}
}
