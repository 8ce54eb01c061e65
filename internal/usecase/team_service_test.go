package usecase

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	teammock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/team"
	usecasemock "github.com/riskibarqy/fantasy-cricket/internal/mocks/usecase"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
)

func TestTeamService_CreateTeam(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	created := p.createTeam(t, "user-a", "a")

	if created.ID == "" || created.Signature == "" {
		t.Fatalf("team not stamped: %+v", created)
	}
	if len(created.Players) != 11 || created.CaptainID != "a-10" || created.ViceCaptainID != "a-11" {
		t.Fatalf("unexpected team: %+v", created)
	}

	got, err := p.teamSvc.GetTeam(t.Context(), "user-a", created.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Signature != created.Signature {
		t.Fatalf("stored signature differs: %s vs %s", got.Signature, created.Signature)
	}

	if _, err := p.teamSvc.GetTeam(t.Context(), "user-b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestTeamService_CreateTeam_Rejections(t *testing.T) {
	t.Parallel()

	valid := func() CreateTeamInput {
		return CreateTeamInput{
			UserID:        "user-a",
			MatchID:       testMatchID,
			Name:          "Alpha XI",
			Players:       picksFor("a"),
			CaptainID:     "a-10",
			ViceCaptainID: "a-11",
		}
	}

	tests := []struct {
		name   string
		mutate func(*CreateTeamInput)
		want   error
	}{
		{name: "missing name", mutate: func(in *CreateTeamInput) { in.Name = " " }, want: ErrInvalidInput},
		{name: "ten players", mutate: func(in *CreateTeamInput) { in.Players = in.Players[:10] }, want: team.ErrInvalidTeamSize},
		{name: "captain equals vice", mutate: func(in *CreateTeamInput) { in.ViceCaptainID = in.CaptainID }, want: team.ErrInvalidCaptaincy},
		{name: "captain outside team", mutate: func(in *CreateTeamInput) { in.CaptainID = "z-99" }, want: team.ErrInvalidCaptaincy},
		{name: "duplicate player", mutate: func(in *CreateTeamInput) { in.Players[1].PlayerID = in.Players[0].PlayerID }, want: team.ErrDuplicatePlayer},
		{name: "no keeper", mutate: func(in *CreateTeamInput) { in.Players[0].Role = team.RoleBatter }, want: team.ErrRoleCountOutOfBounds},
		{name: "unknown match", mutate: func(in *CreateTeamInput) { in.MatchID = "match-missing" }, want: ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newPlatform(t)
			input := valid()
			tc.mutate(&input)

			_, err := p.teamSvc.CreateTeam(t.Context(), input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTeamService_CreateTeam_DuplicateAndLimit(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	p.createTeam(t, "user-a", "a")

	reordered := picksFor("a")
	reordered[0], reordered[10] = reordered[10], reordered[0]
	_, err := p.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        "user-a",
		MatchID:       testMatchID,
		Name:          "Same XI, new name",
		Players:       reordered,
		CaptainID:     "a-10",
		ViceCaptainID: "a-11",
	})
	if !errors.Is(err, ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}

	// Another user may field the identical XI.
	if _, err := p.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        "user-b",
		MatchID:       testMatchID,
		Name:          "Copycat XI",
		Players:       picksFor("a"),
		CaptainID:     "a-10",
		ViceCaptainID: "a-11",
	}); err != nil {
		t.Fatalf("other user identical team: %v", err)
	}

	limit := team.DefaultRules().MaxTeamsPerMatch
	for i := 1; i < limit; i++ {
		p.createTeam(t, "user-a", fmt.Sprintf("a%d", i))
	}
	_, err = p.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        "user-a",
		MatchID:       testMatchID,
		Name:          "One too many",
		Players:       picksFor("over"),
		CaptainID:     "over-10",
		ViceCaptainID: "over-11",
	})
	if !errors.Is(err, ErrTeamLimitReached) {
		t.Fatalf("expected ErrTeamLimitReached, got %v", err)
	}

	teams, err := p.teamSvc.ListTeams(t.Context(), "user-a", testMatchID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != limit {
		t.Fatalf("unexpected team count: got=%d want=%d", len(teams), limit)
	}
}

func TestTeamService_CreateTeam_MatchStartedUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matches := usecasemock.NewMatchProvider(t)

	matches.
		On("GetMatch", mock.Anything, testMatchID).
		Return(match.Match{ID: testMatchID, Format: match.FormatT20, Started: true}, true, nil).
		Once()

	svc := NewTeamService(teamRepo, matches, team.DefaultRules(), idgen.NewSequence("team-"), nil)
	_, err := svc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        "user-a",
		MatchID:       testMatchID,
		Name:          "Late XI",
		Players:       picksFor("a"),
		CaptainID:     "a-10",
		ViceCaptainID: "a-11",
	})
	if !errors.Is(err, ErrMatchStarted) {
		t.Fatalf("expected ErrMatchStarted, got %v", err)
	}
}

func TestTeamService_CreateTeam_ProviderDownUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matches := usecasemock.NewMatchProvider(t)

	matches.
		On("GetMatch", mock.Anything, testMatchID).
		Return(match.Match{}, false, errors.New("connection reset")).
		Once()

	svc := NewTeamService(teamRepo, matches, team.DefaultRules(), idgen.NewSequence("team-"), nil)
	_, err := svc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        "user-a",
		MatchID:       testMatchID,
		Name:          "Alpha XI",
		Players:       picksFor("a"),
		CaptainID:     "a-10",
		ViceCaptainID: "a-11",
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestTeamService_CreateTeam_ConcurrentCreatesRespectLimit(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	rules := team.DefaultRules()
	rules.MaxTeamsPerMatch = 3
	teams := memory.NewTeamRepository()
	svc := NewTeamService(teams, p.catalog, rules, idgen.NewSequence("team-"), nil)

	const attempts = 8
	var (
		created  atomic.Int32
		rejected atomic.Int32
		workers  sync.WaitGroup
	)
	for i := range attempts {
		workers.Add(1)
		go func() {
			defer workers.Done()
			prefix := fmt.Sprintf("c%d", i)
			_, err := svc.CreateTeam(t.Context(), CreateTeamInput{
				UserID:        "user-a",
				MatchID:       testMatchID,
				Name:          prefix + " XI",
				Players:       picksFor(prefix),
				CaptainID:     prefix + "-10",
				ViceCaptainID: prefix + "-11",
			})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrTeamLimitReached):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	workers.Wait()

	if created.Load() != 3 || rejected.Load() != attempts-3 {
		t.Fatalf("created=%d rejected=%d, want 3 and %d", created.Load(), rejected.Load(), attempts-3)
	}
	owned, err := teams.CountByUserAndMatch(t.Context(), "user-a", testMatchID)
	if err != nil {
		t.Fatalf("count teams: %v", err)
	}
	if owned != 3 {
		t.Fatalf("stored teams = %d, want 3", owned)
	}
}

func TestTeamService_CreateTeam_StorageLimitUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matches := usecasemock.NewMatchProvider(t)
	rules := team.DefaultRules()

	matches.
		On("GetMatch", mock.Anything, testMatchID).
		Return(match.Match{ID: testMatchID, Format: match.FormatT20, StartsAt: time.Now().Add(time.Hour)}, true, nil).
		Once()
	teamRepo.
		On("CountByUserAndMatch", mock.Anything, "user-a", testMatchID).
		Return(rules.MaxTeamsPerMatch-1, nil).
		Once()
	teamRepo.
		On("GetBySignature", mock.Anything, "user-a", testMatchID, mock.AnythingOfType("string")).
		Return(team.Team{}, false, nil).
		Once()
	teamRepo.
		On("Create", mock.Anything, mock.AnythingOfType("team.Team"), rules.MaxTeamsPerMatch).
		Return(team.ErrLimitReached).
		Once()

	svc := NewTeamService(teamRepo, matches, rules, idgen.NewSequence("team-"), nil)
	_, err := svc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        "user-a",
		MatchID:       testMatchID,
		Name:          "Raced XI",
		Players:       picksFor("a"),
		CaptainID:     "a-10",
		ViceCaptainID: "a-11",
	})
	if !errors.Is(err, ErrTeamLimitReached) {
		t.Fatalf("expected ErrTeamLimitReached, got %v", err)
	}
}
