package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// CreateTemplateInput is the incoming payload for registering a contest template.
type CreateTemplateInput struct {
	Title       string
	Type        string
	Format      string
	EntryFee    int64
	Capacity    int
	TotalPrize  int64
	PrizePolicy contest.PrizePolicy
}

type ContestService struct {
	templateRepo      contest.TemplateRepository
	contestRepo       contest.Repository
	participationRepo participation.Repository
	idGen             idgen.Generator
	logger            *logging.Logger
	now               func() time.Time
}

func NewContestService(
	templateRepo contest.TemplateRepository,
	contestRepo contest.Repository,
	participationRepo participation.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ContestService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ContestService{
		templateRepo:      templateRepo,
		contestRepo:       contestRepo,
		participationRepo: participationRepo,
		idGen:             idGen,
		logger:            logger,
		now:               time.Now,
	}
}

// ListTemplates returns active templates, narrowed to those applying to format when it is set.
func (s *ContestService) ListTemplates(ctx context.Context, format string) ([]contest.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListTemplates")
	defer span.End()

	var filter match.Format
	if strings.TrimSpace(format) != "" {
		parsed, err := match.ParseFormat(format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		filter = parsed
	}

	templates, err := s.templateRepo.ListTemplates(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if filter == "" {
		return templates, nil
	}

	out := make([]contest.Template, 0, len(templates))
	for _, tmpl := range templates {
		if tmpl.AppliesTo(filter) {
			out = append(out, tmpl)
		}
	}
	return out, nil
}

func (s *ContestService) CreateTemplate(ctx context.Context, input CreateTemplateInput) (contest.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.CreateTemplate")
	defer span.End()

	scope, err := contest.ParseFormatScope(input.Format)
	if err != nil {
		return contest.Template{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	templateID, err := s.idGen.NewID()
	if err != nil {
		return contest.Template{}, fmt.Errorf("generate template id: %w", err)
	}

	now := s.now().UTC()
	tmpl := contest.Template{
		ID:          templateID,
		Title:       strings.TrimSpace(input.Title),
		Type:        contest.Type(strings.ToUpper(strings.TrimSpace(input.Type))),
		Format:      scope,
		EntryFee:    input.EntryFee,
		Capacity:    input.Capacity,
		TotalPrize:  input.TotalPrize,
		PrizePolicy: input.PrizePolicy,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tmpl.Validate(); err != nil {
		return contest.Template{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.templateRepo.CreateTemplate(ctx, tmpl); err != nil {
		return contest.Template{}, fmt.Errorf("create template: %w", err)
	}

	s.logger.InfoContext(ctx, "contest template created",
		"template_id", tmpl.ID,
		"type", tmpl.Type,
		"format", tmpl.Format,
		"capacity", tmpl.Capacity,
	)
	return tmpl, nil
}

// SetTemplateActive is the only mutation allowed on a template after creation.
func (s *ContestService) SetTemplateActive(ctx context.Context, templateID string, active bool) (contest.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.SetTemplateActive")
	defer span.End()

	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return contest.Template{}, fmt.Errorf("%w: template id is required", ErrInvalidInput)
	}

	tmpl, exists, err := s.templateRepo.SetTemplateActive(ctx, templateID, active, s.now().UTC())
	if err != nil {
		return contest.Template{}, fmt.Errorf("set template active: %w", err)
	}
	if !exists {
		return contest.Template{}, fmt.Errorf("%w: template=%s", ErrNotFound, templateID)
	}

	s.logger.InfoContext(ctx, "contest template toggled", "template_id", templateID, "active", active)
	return tmpl, nil
}

func (s *ContestService) ListContestsByMatch(ctx context.Context, matchID string) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListContestsByMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	items, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list contests by match: %w", err)
	}
	return items, nil
}

func (s *ContestService) GetContest(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetContest")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}
	return item, nil
}

func (s *ContestService) ListMyParticipations(ctx context.Context, userID, matchID string) ([]participation.Participation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListMyParticipations")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: user_id and match_id are required", ErrInvalidInput)
	}

	items, err := s.participationRepo.ListByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	return items, nil
}
