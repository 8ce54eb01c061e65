package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/pointrule"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
)

const testMatchID = "match-test-t20"

// platform bundles in-memory repositories wired to real services.
type platform struct {
	catalog        *memory.MatchCatalog
	templates      *memory.TemplateRepository
	contests       *memory.ContestRepository
	teams          *memory.TeamRepository
	participations *memory.ParticipationRepository
	performances   *memory.PerformanceRepository
	outcomes       *memory.OutcomeRepository

	cloner    *ContestCloner
	allocator *AllocatorService
	teamSvc   *TeamService
	scoring   *ScoringService
	results   *ResultService
}

func newPlatform(t *testing.T) *platform {
	t.Helper()

	now := time.Now().UTC()
	catalog := memory.NewMatchCatalog([]match.Match{{
		ID:       testMatchID,
		Name:     "Testers vs Mockers",
		Format:   match.FormatT20,
		TeamA:    "Testers",
		TeamB:    "Mockers",
		StartsAt: now.Add(2 * time.Hour),
	}})

	calculator, err := pointrule.Default()
	if err != nil {
		t.Fatalf("load default point rules: %v", err)
	}

	p := &platform{
		catalog:        catalog,
		templates:      memory.NewTemplateRepository(memory.SeedTemplates()),
		contests:       memory.NewContestRepository(),
		teams:          memory.NewTeamRepository(),
		participations: memory.NewParticipationRepository(),
		performances:   memory.NewPerformanceRepository(),
	}
	p.outcomes = memory.NewOutcomeRepository(p.participations)

	p.cloner = NewContestCloner(p.contests, p.templates, idgen.NewSequence("contest-"), nil)
	p.allocator = NewAllocatorService(p.contests, p.templates, p.participations, p.teams, catalog, p.cloner, idgen.NewSequence("part-"), nil)
	p.teamSvc = NewTeamService(p.teams, catalog, team.DefaultRules(), idgen.NewSequence("team-"), nil)
	p.scoring = NewScoringService(catalog, catalog, p.performances, calculator, nil)
	p.results = NewResultService(p.contests, p.participations, p.teams, p.performances, p.outcomes, p.scoring, 2, nil)

	return p
}

// steppingClock returns strictly increasing instants so join order is observable.
func steppingClock(start time.Time) func() time.Time {
	var (
		mu   sync.Mutex
		next = start
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		next = next.Add(time.Second)
		return next
	}
}

// picksFor builds a legal XI of players prefix-01 .. prefix-11.
func picksFor(prefix string) []team.Pick {
	roles := []team.Role{
		team.RoleWicketKeeper,
		team.RoleBatter, team.RoleBatter, team.RoleBatter, team.RoleBatter,
		team.RoleAllRounder, team.RoleAllRounder,
		team.RoleBowler, team.RoleBowler, team.RoleBowler, team.RoleBowler,
	}
	out := make([]team.Pick, 0, len(roles))
	for i, role := range roles {
		out = append(out, team.Pick{PlayerID: fmt.Sprintf("%s-%02d", prefix, i+1), Role: role})
	}
	return out
}

func (p *platform) createTeam(t *testing.T, userID, prefix string) team.Team {
	t.Helper()

	created, err := p.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:        userID,
		MatchID:       testMatchID,
		Name:          userID + " XI",
		Players:       picksFor(prefix),
		CaptainID:     prefix + "-10",
		ViceCaptainID: prefix + "-11",
	})
	if err != nil {
		t.Fatalf("create team for %s: %v", userID, err)
	}
	return created
}

func (p *platform) mustGetContest(t *testing.T, contestID string) contest.Contest {
	t.Helper()

	item, exists, err := p.contests.GetByID(t.Context(), contestID)
	if err != nil || !exists {
		t.Fatalf("get contest %s: exists=%v err=%v", contestID, exists, err)
	}
	return item
}
