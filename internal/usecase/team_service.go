package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// CreateTeamInput is the incoming payload for building a fantasy XI.
type CreateTeamInput struct {
	UserID        string
	MatchID       string
	Name          string
	Players       []team.Pick
	CaptainID     string
	ViceCaptainID string
}

type TeamService struct {
	teamRepo team.Repository
	matches  MatchProvider
	rules    team.Rules
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	matches MatchProvider,
	rules team.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		matches:  matches,
		rules:    rules,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.UserID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return team.Team{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	picks := make([]team.Pick, 0, len(input.Players))
	for _, pick := range input.Players {
		picks = append(picks, team.Pick{
			PlayerID: strings.TrimSpace(pick.PlayerID),
			Role:     team.Role(strings.ToUpper(strings.TrimSpace(string(pick.Role)))),
		})
	}
	if err := team.ValidatePicks(picks, input.CaptainID, input.ViceCaptainID, s.rules); err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	fixture, exists, err := s.matches.GetMatch(ctx, input.MatchID)
	if err != nil {
		return team.Team{}, fmt.Errorf("%w: get match: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	now := s.now().UTC()
	if fixture.Started || (!fixture.StartsAt.IsZero() && !now.Before(fixture.StartsAt)) {
		return team.Team{}, fmt.Errorf("%w: match=%s", ErrMatchStarted, input.MatchID)
	}

	count, err := s.teamRepo.CountByUserAndMatch(ctx, input.UserID, input.MatchID)
	if err != nil {
		return team.Team{}, fmt.Errorf("count teams: %w", err)
	}
	if s.rules.MaxTeamsPerMatch > 0 && count >= s.rules.MaxTeamsPerMatch {
		return team.Team{}, fmt.Errorf("%w: max=%d", ErrTeamLimitReached, s.rules.MaxTeamsPerMatch)
	}

	playerIDs := make([]string, 0, len(picks))
	for _, pick := range picks {
		playerIDs = append(playerIDs, pick.PlayerID)
	}
	signature := team.Signature(playerIDs, input.CaptainID, input.ViceCaptainID)

	if _, exists, err := s.teamRepo.GetBySignature(ctx, input.UserID, input.MatchID, signature); err != nil {
		return team.Team{}, fmt.Errorf("get team by signature: %w", err)
	} else if exists {
		return team.Team{}, ErrDuplicateTeam
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	created := team.Team{
		ID:            teamID,
		UserID:        input.UserID,
		MatchID:       input.MatchID,
		Name:          input.Name,
		Players:       picks,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		Signature:     signature,
		CreatedAt:     now,
	}
	if err := created.Validate(s.rules); err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, created, s.rules.MaxTeamsPerMatch); err != nil {
		if errors.Is(err, team.ErrDuplicate) {
			return team.Team{}, ErrDuplicateTeam
		}
		if errors.Is(err, team.ErrLimitReached) {
			return team.Team{}, fmt.Errorf("%w: max=%d", ErrTeamLimitReached, s.rules.MaxTeamsPerMatch)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"user_id", input.UserID,
		"match_id", input.MatchID,
		"team_id", created.ID,
	)

	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		return team.Team{}, fmt.Errorf("%w: user_id and team_id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || item.UserID != userID {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

func (s *TeamService) ListTeams(ctx context.Context, userID, matchID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: user_id and match_id are required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

// findTeam loads a team and checks it belongs to the user and match.
func findTeam(ctx context.Context, repo team.Repository, teamID, userID, matchID string) (team.Team, error) {
	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if err := team.ValidateForMatch(item, userID, matchID); err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return item, nil
}
