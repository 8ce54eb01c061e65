package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// ContestCloner stamps new contest instances for a (match, template) pair.
// Concurrent clones are not coordinated; two callers may both add an instance.
type ContestCloner struct {
	contestRepo  contest.Repository
	templateRepo contest.TemplateRepository
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewContestCloner(
	contestRepo contest.Repository,
	templateRepo contest.TemplateRepository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ContestCloner {
	if logger == nil {
		logger = logging.Default()
	}

	return &ContestCloner{
		contestRepo:  contestRepo,
		templateRepo: templateRepo,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// Clone adds a sibling instance. Pricing and capacity come from the first instance of the family,
// or from the template when the family is empty.
func (c *ContestCloner) Clone(ctx context.Context, matchID, templateID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestCloner.Clone")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	templateID = strings.TrimSpace(templateID)
	if matchID == "" || templateID == "" {
		return contest.Contest{}, fmt.Errorf("%w: match_id and template_id are required", ErrInvalidInput)
	}

	tmpl, exists, err := c.templateRepo.GetTemplate(ctx, templateID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get template: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: template=%s", ErrNotFound, templateID)
	}
	if !tmpl.IsActive {
		return contest.Contest{}, fmt.Errorf("%w: template=%s is inactive", ErrPreconditionFailed, templateID)
	}

	instances, err := c.contestRepo.ListByMatchAndTemplate(ctx, matchID, templateID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("list contest instances: %w", err)
	}

	return c.create(ctx, matchID, tmpl, instances)
}

// EnsureFirst creates instance #1 when the family is empty. It reports whether an instance was created.
func (c *ContestCloner) EnsureFirst(ctx context.Context, matchID string, tmpl contest.Template) (contest.Contest, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestCloner.EnsureFirst")
	defer span.End()

	instances, err := c.contestRepo.ListByMatchAndTemplate(ctx, matchID, tmpl.ID)
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("list contest instances: %w", err)
	}
	if len(instances) > 0 {
		return firstInstance(instances), false, nil
	}

	created, err := c.create(ctx, matchID, tmpl, nil)
	if err != nil {
		return contest.Contest{}, false, err
	}
	return created, true, nil
}

func (c *ContestCloner) create(ctx context.Context, matchID string, tmpl contest.Template, instances []contest.Contest) (contest.Contest, error) {
	contestID, err := c.idGen.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate contest id: %w", err)
	}

	now := c.now().UTC()
	ordinal := len(instances) + 1
	item := contest.Contest{
		ID:           contestID,
		TemplateID:   tmpl.ID,
		MatchID:      matchID,
		Title:        contest.InstanceTitle(tmpl.Title, ordinal),
		Ordinal:      ordinal,
		EntryFee:     tmpl.EntryFee,
		Capacity:     tmpl.Capacity,
		TotalPrize:   tmpl.TotalPrize,
		PrizePolicy:  tmpl.PrizePolicy,
		Participants: []string{},
		Status:       contest.StatusUpcoming,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if len(instances) > 0 {
		base := firstInstance(instances)
		item.EntryFee = base.EntryFee
		item.Capacity = base.Capacity
		item.TotalPrize = base.TotalPrize
		item.PrizePolicy = base.PrizePolicy
		item.BaseContestID = base.RootID()
	}

	if err := c.contestRepo.Create(ctx, item); err != nil {
		return contest.Contest{}, fmt.Errorf("create contest: %w", err)
	}

	c.logger.InfoContext(ctx, "contest instance created",
		"contest_id", item.ID,
		"match_id", matchID,
		"template_id", tmpl.ID,
		"ordinal", item.Ordinal,
		"base_contest_id", item.BaseContestID,
	)

	return item, nil
}

func firstInstance(instances []contest.Contest) contest.Contest {
	return slices.MinFunc(instances, func(a, b contest.Contest) int {
		if a.Ordinal != b.Ordinal {
			return cmp.Compare(a.Ordinal, b.Ordinal)
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
