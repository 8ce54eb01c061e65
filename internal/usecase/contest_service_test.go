package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	contestmock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/contest"
	participationmock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/participation"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
)

func TestContestService_ListTemplates_FiltersByFormat(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	svc := NewContestService(p.templates, p.contests, p.participations, idgen.NewSequence("tmpl-"), nil)

	all, err := svc.ListTemplates(t.Context(), "")
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unexpected template count: %d", len(all))
	}

	odi, err := svc.ListTemplates(t.Context(), "odi")
	if err != nil {
		t.Fatalf("list odi templates: %v", err)
	}
	for _, tmpl := range odi {
		if tmpl.ID == memory.TemplateIDSmallLeague {
			t.Fatalf("T20-only template listed for ODI")
		}
	}
	if len(odi) != 2 {
		t.Fatalf("unexpected ODI template count: %d", len(odi))
	}

	if _, err := svc.ListTemplates(t.Context(), "hundred"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown format, got %v", err)
	}
}

func TestContestService_CreateTemplate(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	svc := NewContestService(p.templates, p.contests, p.participations, idgen.NewSequence("tmpl-custom-"), nil)

	created, err := svc.CreateTemplate(t.Context(), CreateTemplateInput{
		Title:       "Weekend Special",
		Type:        "medium",
		Format:      "t10",
		EntryFee:    20,
		Capacity:    20,
		TotalPrize:  300,
		PrizePolicy: contest.Top3Split(),
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if created.ID != "tmpl-custom-1" || created.Type != contest.TypeMedium || !created.IsActive {
		t.Fatalf("unexpected template: %+v", created)
	}

	_, err = svc.CreateTemplate(t.Context(), CreateTemplateInput{
		Title:       "Overpaying",
		Type:        "SMALL",
		Format:      "ALL",
		Capacity:    5,
		TotalPrize:  100,
		PrizePolicy: contest.PrizePolicy{Kind: contest.PrizeFixedAmountSplit, Amounts: []int64{80, 40}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for fixed amounts above the pool, got %v", err)
	}

	toggled, err := svc.SetTemplateActive(t.Context(), created.ID, false)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("template still active")
	}
	if _, err := svc.SetTemplateActive(t.Context(), "tmpl-missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContestService_GetContest_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	templateRepo := contestmock.NewTemplateRepository(t)
	contestRepo := contestmock.NewRepository(t)
	participationRepo := participationmock.NewRepository(t)

	contestRepo.
		On("GetByID", mock.Anything, "contest-404").
		Return(contest.Contest{}, false, nil).
		Once()

	svc := NewContestService(templateRepo, contestRepo, participationRepo, idgen.NewSequence("tmpl-"), nil)
	if _, err := svc.GetContest(t.Context(), "contest-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContestService_ListMyParticipations(t *testing.T) {
	t.Parallel()

	p := newPlatform(t)
	svc := NewContestService(p.templates, p.contests, p.participations, idgen.NewSequence("tmpl-"), nil)

	p.join(t, "user-a", "a", memory.TemplateIDMegaContest)
	p.join(t, "user-b", "b", memory.TemplateIDMegaContest)

	mine, err := svc.ListMyParticipations(t.Context(), "user-a", testMatchID)
	if err != nil {
		t.Fatalf("list participations: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "user-a" {
		t.Fatalf("unexpected participations: %+v", mine)
	}

	contests, err := svc.ListContestsByMatch(t.Context(), testMatchID)
	if err != nil {
		t.Fatalf("list contests: %v", err)
	}
	if len(contests) != 1 || contests[0].FilledSlots != 2 {
		t.Fatalf("unexpected contests: %+v", contests)
	}
}
