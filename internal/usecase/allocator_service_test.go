package usecase

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	usecasemock "github.com/riskibarqy/fantasy-cricket/internal/mocks/usecase"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
)

func TestAllocatorService_JoinContest_CapacityTwo(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	teamA := p.createTeam(t, "user-a", "a")
	teamB := p.createTeam(t, "user-b", "b")
	teamC := p.createTeam(t, "user-c", "c")

	first, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamID:     teamA.ID,
	})
	if err != nil {
		t.Fatalf("join A: %v", err)
	}

	if _, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:    "user-b",
		MatchID:   testMatchID,
		ContestID: first.ContestID,
		TeamID:    teamB.ID,
	}); err != nil {
		t.Fatalf("join B: %v", err)
	}

	_, err = p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:    "user-c",
		MatchID:   testMatchID,
		ContestID: first.ContestID,
		TeamID:    teamC.ID,
	})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("capacity error should be a conflict: %v", err)
	}

	got := p.mustGetContest(t, first.ContestID)
	if got.FilledSlots != 2 || len(got.Participants) != 2 {
		t.Fatalf("unexpected fill: slots=%d participants=%v", got.FilledSlots, got.Participants)
	}
	if got.Title != "Head to Head #1" || got.Ordinal != 1 || got.BaseContestID != "" {
		t.Fatalf("unexpected first instance: %+v", got)
	}
}

func TestAllocatorService_JoinContest_TemplateClonesWhenFull(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	var firstContestID string
	for _, user := range []string{"user-a", "user-b"} {
		created := p.createTeam(t, user, user)
		joined, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
			UserID:     user,
			MatchID:    testMatchID,
			TemplateID: memory.TemplateIDHeadToHead,
			TeamID:     created.ID,
		})
		if err != nil {
			t.Fatalf("join %s: %v", user, err)
		}
		if firstContestID == "" {
			firstContestID = joined.ContestID
		}
		if joined.ContestID != firstContestID {
			t.Fatalf("expected %s to pack into %s, got %s", user, firstContestID, joined.ContestID)
		}
	}

	teamC := p.createTeam(t, "user-c", "c")
	joined, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-c",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamID:     teamC.ID,
	})
	if err != nil {
		t.Fatalf("join C: %v", err)
	}
	if joined.ContestID == firstContestID {
		t.Fatalf("expected a cloned instance, got the full one")
	}

	clone := p.mustGetContest(t, joined.ContestID)
	if clone.BaseContestID != firstContestID || clone.Ordinal != 2 || clone.Title != "Head to Head #2" {
		t.Fatalf("unexpected clone shape: %+v", clone)
	}
	if clone.FilledSlots != 1 {
		t.Fatalf("unexpected clone fill: %d", clone.FilledSlots)
	}
}

func TestAllocatorService_JoinContest_Rejections(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	teamA := p.createTeam(t, "user-a", "a")
	teamB := p.createTeam(t, "user-b", "b")

	joined, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDMegaContest,
		TeamID:     teamA.ID,
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	tests := []struct {
		name  string
		input JoinContestInput
		want  error
	}{
		{
			name:  "both targets",
			input: JoinContestInput{UserID: "user-a", MatchID: testMatchID, ContestID: joined.ContestID, TemplateID: memory.TemplateIDMegaContest, TeamID: teamA.ID},
			want:  ErrInvalidInput,
		},
		{
			name:  "no target",
			input: JoinContestInput{UserID: "user-a", MatchID: testMatchID, TeamID: teamA.ID},
			want:  ErrInvalidInput,
		},
		{
			name:  "already joined",
			input: JoinContestInput{UserID: "user-a", MatchID: testMatchID, ContestID: joined.ContestID, TeamID: teamA.ID},
			want:  ErrAlreadyJoined,
		},
		{
			name:  "team of another user",
			input: JoinContestInput{UserID: "user-a", MatchID: testMatchID, ContestID: joined.ContestID, TeamID: teamB.ID},
			want:  ErrNotFound,
		},
		{
			name:  "unknown contest",
			input: JoinContestInput{UserID: "user-b", MatchID: testMatchID, ContestID: "contest-missing", TeamID: teamB.ID},
			want:  ErrNotFound,
		},
		{
			name:  "unknown template",
			input: JoinContestInput{UserID: "user-b", MatchID: testMatchID, TemplateID: "tmpl-missing", TeamID: teamB.ID},
			want:  ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.allocator.JoinContest(t.Context(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAllocatorService_JoinContest_ClosedContest(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	created, err := p.cloner.Clone(t.Context(), testMatchID, memory.TemplateIDMegaContest)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if err := p.contests.UpdateStatus(t.Context(), created.ID, contest.StatusLive, time.Now()); err != nil {
		t.Fatalf("update status: %v", err)
	}

	teamA := p.createTeam(t, "user-a", "a")
	_, err = p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:    "user-a",
		MatchID:   testMatchID,
		ContestID: created.ID,
		TeamID:    teamA.ID,
	})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestAllocatorService_JoinContest_ConcurrentNeverOverfills(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	tmpl := contest.Template{
		ID:          "tmpl-five",
		Title:       "Five Seats",
		Type:        contest.TypeSmall,
		Format:      contest.ScopeAll,
		EntryFee:    10,
		Capacity:    5,
		TotalPrize:  40,
		PrizePolicy: contest.WinnerTakesAll(),
		IsActive:    true,
	}
	if err := p.templates.CreateTemplate(t.Context(), tmpl); err != nil {
		t.Fatalf("create template: %v", err)
	}
	target, err := p.cloner.Clone(t.Context(), testMatchID, tmpl.ID)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	const users = 20
	teamIDs := make([]string, users)
	for i := range users {
		teamIDs[i] = p.createTeam(t, fmt.Sprintf("user-%02d", i), fmt.Sprintf("u%02d", i)).ID
	}

	var (
		wg       sync.WaitGroup
		admitted atomic.Int32
		rejected atomic.Int32
		other    atomic.Int32
	)
	for i := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
				UserID:    fmt.Sprintf("user-%02d", i),
				MatchID:   testMatchID,
				ContestID: target.ID,
				TeamID:    teamIDs[i],
			})
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, ErrCapacityExceeded):
				rejected.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	if admitted.Load() != 5 || rejected.Load() != users-5 || other.Load() != 0 {
		t.Fatalf("unexpected outcome: admitted=%d rejected=%d other=%d", admitted.Load(), rejected.Load(), other.Load())
	}

	got := p.mustGetContest(t, target.ID)
	parts, err := p.participations.ListByContest(t.Context(), target.ID)
	if err != nil {
		t.Fatalf("list participations: %v", err)
	}
	if got.FilledSlots != 5 || len(got.Participants) != 5 || len(parts) != 5 {
		t.Fatalf("fill drifted: slots=%d seated=%d participations=%d", got.FilledSlots, len(got.Participants), len(parts))
	}
}

func TestAllocatorService_JoinMultiple_ClonesPastFullInstance(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	var firstContestID string
	for _, user := range []string{"user-a", "user-b"} {
		created := p.createTeam(t, user, user)
		joined, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
			UserID:     user,
			MatchID:    testMatchID,
			TemplateID: memory.TemplateIDHeadToHead,
			TeamID:     created.ID,
		})
		if err != nil {
			t.Fatalf("join %s: %v", user, err)
		}
		firstContestID = joined.ContestID
	}

	teamX := p.createTeam(t, "user-x", "x")
	result, err := p.allocator.JoinMultiple(t.Context(), JoinMultipleInput{
		UserID:     "user-x",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamID:     teamX.ID,
		Count:      3,
	})
	if err != nil {
		t.Fatalf("join multiple: %v", err)
	}
	if result.Joined != 3 || len(result.Participations) != 3 || len(result.FailedReasons) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	instances, err := p.contests.ListByMatchAndTemplate(t.Context(), testMatchID, memory.TemplateIDHeadToHead)
	if err != nil {
		t.Fatalf("list instances: %v", err)
	}
	if len(instances) != 4 {
		t.Fatalf("expected 4 instances, got %d", len(instances))
	}

	seen := make(map[string]struct{}, 3)
	for _, part := range result.Participations {
		if part.ContestID == firstContestID {
			t.Fatalf("user seated in full instance %s", firstContestID)
		}
		if _, dup := seen[part.ContestID]; dup {
			t.Fatalf("user seated twice in %s", part.ContestID)
		}
		seen[part.ContestID] = struct{}{}

		clone := p.mustGetContest(t, part.ContestID)
		if clone.BaseContestID != firstContestID {
			t.Fatalf("clone %s points at %s, want %s", clone.ID, clone.BaseContestID, firstContestID)
		}
		if clone.Capacity != 2 || clone.EntryFee != 50 || clone.TotalPrize != 100 || clone.FilledSlots != 1 {
			t.Fatalf("unexpected clone: %+v", clone)
		}
		if clone.Title != fmt.Sprintf("Head to Head #%d", clone.Ordinal) || clone.Ordinal < 2 {
			t.Fatalf("unexpected clone title: %q ordinal=%d", clone.Title, clone.Ordinal)
		}
	}
}

func TestAllocatorService_JoinMultiple_PacksFullestFirst(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	emptier, err := p.cloner.Clone(t.Context(), testMatchID, memory.TemplateIDMegaContest)
	if err != nil {
		t.Fatalf("clone first: %v", err)
	}
	fuller, err := p.cloner.Clone(t.Context(), testMatchID, memory.TemplateIDMegaContest)
	if err != nil {
		t.Fatalf("clone second: %v", err)
	}

	seat := func(contestID string, users ...string) {
		for _, user := range users {
			if _, outcome, err := p.contests.Admit(t.Context(), contestID, user, time.Now()); err != nil || outcome != contest.AdmitOK {
				t.Fatalf("seat %s in %s: outcome=%s err=%v", user, contestID, outcome, err)
			}
		}
	}
	seat(emptier.ID, "filler-1")
	seat(fuller.ID, "filler-2", "filler-3", "filler-4")

	teamX := p.createTeam(t, "user-x", "x")
	result, err := p.allocator.JoinMultiple(t.Context(), JoinMultipleInput{
		UserID:     "user-x",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDMegaContest,
		TeamID:     teamX.ID,
		Count:      2,
	})
	if err != nil {
		t.Fatalf("join multiple: %v", err)
	}
	if result.Joined != 2 {
		t.Fatalf("unexpected joined count: %+v", result)
	}
	if result.Participations[0].ContestID != fuller.ID || result.Participations[1].ContestID != emptier.ID {
		t.Fatalf("expected fullest instance first, got %s then %s", result.Participations[0].ContestID, result.Participations[1].ContestID)
	}
}

func TestAllocatorService_JoinMultiple_ReportsShortfall(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	for _, user := range []string{"user-a", "user-b"} {
		created := p.createTeam(t, user, user)
		if _, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
			UserID:     user,
			MatchID:    testMatchID,
			TemplateID: memory.TemplateIDHeadToHead,
			TeamID:     created.ID,
		}); err != nil {
			t.Fatalf("join %s: %v", user, err)
		}
	}
	if _, _, err := p.templates.SetTemplateActive(t.Context(), memory.TemplateIDHeadToHead, false, time.Now()); err != nil {
		t.Fatalf("deactivate template: %v", err)
	}

	teamX := p.createTeam(t, "user-x", "x")
	result, err := p.allocator.JoinMultiple(t.Context(), JoinMultipleInput{
		UserID:     "user-x",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamID:     teamX.ID,
		Count:      2,
	})
	if err != nil {
		t.Fatalf("join multiple: %v", err)
	}
	if result.Joined != 0 || len(result.FailedReasons) == 0 {
		t.Fatalf("expected shortfall with reasons, got %+v", result)
	}
}

func TestAllocatorService_JoinMultiple_CountBounds(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	teamX := p.createTeam(t, "user-x", "x")
	for _, count := range []int{0, MaxJoinBatch + 1} {
		_, err := p.allocator.JoinMultiple(t.Context(), JoinMultipleInput{
			UserID:     "user-x",
			MatchID:    testMatchID,
			TemplateID: memory.TemplateIDMegaContest,
			TeamID:     teamX.ID,
			Count:      count,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("count=%d: expected ErrInvalidInput, got %v", count, err)
		}
	}
}

func TestAllocatorService_SwitchTeam(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	first := p.createTeam(t, "user-a", "a")
	second := p.createTeam(t, "user-a", "z")
	other := p.createTeam(t, "user-b", "b")

	joined, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDMegaContest,
		TeamID:     first.ID,
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	switched, err := p.allocator.SwitchTeam(t.Context(), SwitchTeamInput{
		UserID:          "user-a",
		ParticipationID: joined.ID,
		NewTeamID:       second.ID,
	})
	if err != nil {
		t.Fatalf("switch team: %v", err)
	}
	if switched.TeamID != second.ID || switched.ContestID != joined.ContestID {
		t.Fatalf("unexpected participation after switch: %+v", switched)
	}

	_, err = p.allocator.SwitchTeam(t.Context(), SwitchTeamInput{
		UserID:          "user-a",
		ParticipationID: joined.ID,
		NewTeamID:       other.ID,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign team, got %v", err)
	}

	_, err = p.allocator.SwitchTeam(t.Context(), SwitchTeamInput{
		UserID:          "user-b",
		ParticipationID: joined.ID,
		NewTeamID:       other.ID,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign participation, got %v", err)
	}

	fixture, _, _ := p.catalog.GetMatch(t.Context(), testMatchID)
	fixture.Started = true
	p.catalog.Upsert(fixture)

	_, err = p.allocator.SwitchTeam(t.Context(), SwitchTeamInput{
		UserID:          "user-a",
		ParticipationID: joined.ID,
		NewTeamID:       first.ID,
	})
	if !errors.Is(err, ErrMatchStarted) || !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrMatchStarted, got %v", err)
	}
}

func TestAllocatorService_SwitchTeam_ProviderDown(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	provider := usecasemock.NewMatchProvider(t)
	svc := NewAllocatorService(p.contests, p.templates, p.participations, p.teams, provider, p.cloner, idgen.NewSequence("part-"), nil)

	item := participation.Participation{
		ID:        "part-1",
		UserID:    "user-a",
		ContestID: "contest-1",
		MatchID:   testMatchID,
		TeamID:    "team-1",
		JoinedAt:  time.Now(),
	}
	if err := p.participations.Create(t.Context(), item); err != nil {
		t.Fatalf("seed participation: %v", err)
	}

	provider.
		On("GetMatchState", mock.Anything, testMatchID).
		Return(match.State{}, errors.New("provider timeout")).
		Once()

	_, err := svc.SwitchTeam(t.Context(), SwitchTeamInput{
		UserID:          "user-a",
		ParticipationID: "part-1",
		NewTeamID:       "team-2",
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	stored, _, _ := p.participations.GetByID(t.Context(), "part-1")
	if stored.TeamID != "team-1" {
		t.Fatalf("participation changed on failure: %+v", stored)
	}
}

func TestAllocatorService_JoinRejectedOnceMatchStarted(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	teamA := p.createTeam(t, "user-a", "a")

	fixture, _, _ := p.catalog.GetMatch(t.Context(), testMatchID)
	fixture.Started = true
	p.catalog.Upsert(fixture)

	_, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamID:     teamA.ID,
	})
	if !errors.Is(err, ErrMatchStarted) {
		t.Fatalf("join contest: expected ErrMatchStarted, got %v", err)
	}

	result, err := p.allocator.JoinMultiple(t.Context(), JoinMultipleInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamID:     teamA.ID,
		Count:      3,
	})
	if !errors.Is(err, ErrMatchStarted) {
		t.Fatalf("join multiple: expected ErrMatchStarted, got %v", err)
	}
	if result.Joined != 0 {
		t.Fatalf("nothing should be joined: %+v", result)
	}

	instances, err := p.contests.ListByMatchAndTemplate(t.Context(), testMatchID, memory.TemplateIDHeadToHead)
	if err != nil {
		t.Fatalf("list instances: %v", err)
	}
	if len(instances) != 0 {
		t.Fatalf("no instance should be cloned for a started match, got %d", len(instances))
	}
}

func TestAllocatorService_JoinRejectedPastScheduledStart(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	teamA := p.createTeam(t, "user-a", "a")
	p.allocator.now = func() time.Time { return time.Now().Add(3 * time.Hour) }

	_, err := p.allocator.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDMegaContest,
		TeamID:     teamA.ID,
	})
	if !errors.Is(err, ErrMatchStarted) {
		t.Fatalf("expected ErrMatchStarted, got %v", err)
	}
}

func TestAllocatorService_Join_ProviderDown(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	teamA := p.createTeam(t, "user-a", "a")
	provider := usecasemock.NewMatchProvider(t)
	svc := NewAllocatorService(p.contests, p.templates, p.participations, p.teams, provider, p.cloner, idgen.NewSequence("part-"), nil)

	provider.
		On("GetMatchState", mock.Anything, testMatchID).
		Return(match.State{}, errors.New("provider timeout")).
		Twice()

	_, err := svc.JoinContest(t.Context(), JoinContestInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDMegaContest,
		TeamID:     teamA.ID,
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("join contest: expected ErrDependencyUnavailable, got %v", err)
	}

	_, err = svc.JoinMultiple(t.Context(), JoinMultipleInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDMegaContest,
		TeamID:     teamA.ID,
		Count:      2,
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("join multiple: expected ErrDependencyUnavailable, got %v", err)
	}

	instances, _ := p.contests.ListByMatchAndTemplate(t.Context(), testMatchID, memory.TemplateIDMegaContest)
	if len(instances) != 0 {
		t.Fatalf("no instance should be created while the provider is down, got %d", len(instances))
	}
}

func TestAllocatorService_JoinMultiple_DistinctTeams(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	first := p.createTeam(t, "user-a", "a")
	second := p.createTeam(t, "user-a", "z")
	foreign := p.createTeam(t, "user-b", "b")

	result, err := p.allocator.JoinMultiple(t.Context(), JoinMultipleInput{
		UserID:     "user-a",
		MatchID:    testMatchID,
		TemplateID: memory.TemplateIDHeadToHead,
		TeamIDs:    []string{first.ID, foreign.ID, second.ID},
	})
	if err != nil {
		t.Fatalf("join multiple: %v", err)
	}
	if result.Joined != 2 || len(result.FailedReasons) != 1 {
		t.Fatalf("expected 2 seats and 1 skipped team, got %+v", result)
	}
	if result.Participations[0].TeamID != first.ID || result.Participations[1].TeamID != second.ID {
		t.Fatalf("teams not seated in order: %+v", result.Participations)
	}
	if result.Participations[0].ContestID == result.Participations[1].ContestID {
		t.Fatalf("each team must land in a different instance: %+v", result.Participations)
	}

	tests := []struct {
		name  string
		input JoinMultipleInput
	}{
		{
			name:  "repeated team",
			input: JoinMultipleInput{TeamIDs: []string{first.ID, first.ID}},
		},
		{
			name:  "team and team list",
			input: JoinMultipleInput{TeamID: first.ID, TeamIDs: []string{second.ID}},
		},
		{
			name:  "count disagrees with list",
			input: JoinMultipleInput{TeamIDs: []string{first.ID, second.ID}, Count: 3},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.UserID = "user-a"
			tc.input.MatchID = testMatchID
			tc.input.TemplateID = memory.TemplateIDHeadToHead
			if _, err := p.allocator.JoinMultiple(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
