package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// MaxJoinBatch bounds JoinMultiple.
const MaxJoinBatch = 20

// JoinContestInput targets either an explicit contest or any instance of a template.
type JoinContestInput struct {
	UserID     string
	MatchID    string
	ContestID  string
	TemplateID string
	TeamID     string
}

// JoinMultipleInput either repeats TeamID Count times or seats each of TeamIDs once.
type JoinMultipleInput struct {
	UserID     string
	MatchID    string
	TemplateID string
	TeamID     string
	TeamIDs    []string
	Count      int
}

// JoinMultipleResult reports partial progress. Whenever Joined < requested count,
// FailedReasons says why.
type JoinMultipleResult struct {
	Joined         int
	Participations []participation.Participation
	FailedReasons  []string
}

type SwitchTeamInput struct {
	UserID          string
	ParticipationID string
	NewTeamID       string
}

type AllocatorService struct {
	contestRepo       contest.Repository
	templateRepo      contest.TemplateRepository
	participationRepo participation.Repository
	teamRepo          team.Repository
	matches           MatchProvider
	cloner            *ContestCloner
	idGen             idgen.Generator
	logger            *logging.Logger
	now               func() time.Time
}

func NewAllocatorService(
	contestRepo contest.Repository,
	templateRepo contest.TemplateRepository,
	participationRepo participation.Repository,
	teamRepo team.Repository,
	matches MatchProvider,
	cloner *ContestCloner,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AllocatorService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AllocatorService{
		contestRepo:       contestRepo,
		templateRepo:      templateRepo,
		participationRepo: participationRepo,
		teamRepo:          teamRepo,
		matches:           matches,
		cloner:            cloner,
		idGen:             idGen,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *AllocatorService) JoinContest(ctx context.Context, input JoinContestInput) (participation.Participation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AllocatorService.JoinContest")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.ContestID = strings.TrimSpace(input.ContestID)
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	input.TeamID = strings.TrimSpace(input.TeamID)

	if input.UserID == "" || input.MatchID == "" || input.TeamID == "" {
		return participation.Participation{}, fmt.Errorf("%w: user_id, match_id and team_id are required", ErrInvalidInput)
	}
	if (input.ContestID == "") == (input.TemplateID == "") {
		return participation.Participation{}, fmt.Errorf("%w: exactly one of contest_id or template_id is required", ErrInvalidInput)
	}

	if err := s.ensureMatchOpen(ctx, input.MatchID); err != nil {
		return participation.Participation{}, err
	}
	if _, err := findTeam(ctx, s.teamRepo, input.TeamID, input.UserID, input.MatchID); err != nil {
		return participation.Participation{}, err
	}

	// One retry covers a capacity race lost between resolution and the conditional write.
	for attempt := 0; attempt < 2; attempt++ {
		target, err := s.resolveTarget(ctx, input)
		if err != nil {
			return participation.Participation{}, err
		}

		joined, outcome, err := s.admit(ctx, target, input.UserID, input.TeamID)
		if err != nil {
			return participation.Participation{}, err
		}

		switch outcome {
		case contest.AdmitOK:
			s.logger.InfoContext(ctx, "contest joined",
				"user_id", input.UserID,
				"contest_id", target.ID,
				"team_id", input.TeamID,
				"participation_id", joined.ID,
			)
			return joined, nil
		case contest.AdmitAlreadyJoined:
			return participation.Participation{}, fmt.Errorf("%w: contest=%s", ErrAlreadyJoined, target.ID)
		case contest.AdmitNotFound:
			return participation.Participation{}, fmt.Errorf("%w: contest=%s", ErrNotFound, target.ID)
		}

		s.logger.WarnContext(ctx, "contest admission lost capacity race",
			"user_id", input.UserID,
			"contest_id", target.ID,
			"attempt", attempt+1,
		)
	}

	return participation.Participation{}, ErrCapacityExceeded
}

func (s *AllocatorService) resolveTarget(ctx context.Context, input JoinContestInput) (contest.Contest, error) {
	if input.ContestID == "" {
		return s.resolveByTemplate(ctx, input.MatchID, input.TemplateID, input.UserID)
	}

	target, exists, err := s.contestRepo.GetByID(ctx, input.ContestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists || target.MatchID != input.MatchID {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, input.ContestID)
	}
	if !target.OpenForEntry() {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s status=%s", ErrPreconditionFailed, target.ID, target.Status)
	}
	if target.IsFull() {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrCapacityExceeded, target.ID)
	}
	if target.HasParticipant(input.UserID) {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrAlreadyJoined, target.ID)
	}

	_, joined, err := s.participationRepo.GetByUserAndContest(ctx, input.UserID, target.ID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get participation: %w", err)
	}
	if joined {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrAlreadyJoined, target.ID)
	}

	return target, nil
}

func (s *AllocatorService) resolveByTemplate(ctx context.Context, matchID, templateID, userID string) (contest.Contest, error) {
	instances, err := s.contestRepo.ListByMatchAndTemplate(ctx, matchID, templateID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("list contest instances: %w", err)
	}

	if candidates := joinCandidates(instances, userID); len(candidates) > 0 {
		return candidates[0], nil
	}

	return s.cloner.Clone(ctx, matchID, templateID)
}

// JoinMultiple seats the user in distinct instances of a template, one seat per entry of
// the resolved team list, packing partially filled instances first and cloning when none is left.
func (s *AllocatorService) JoinMultiple(ctx context.Context, input JoinMultipleInput) (JoinMultipleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AllocatorService.JoinMultiple")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	input.TeamID = strings.TrimSpace(input.TeamID)

	if input.UserID == "" || input.MatchID == "" || input.TemplateID == "" {
		return JoinMultipleResult{}, fmt.Errorf("%w: user_id, match_id and template_id are required", ErrInvalidInput)
	}
	seats, err := seatTeams(input)
	if err != nil {
		return JoinMultipleResult{}, err
	}

	if err := s.ensureMatchOpen(ctx, input.MatchID); err != nil {
		return JoinMultipleResult{}, err
	}

	if _, exists, err := s.templateRepo.GetTemplate(ctx, input.TemplateID); err != nil {
		return JoinMultipleResult{}, fmt.Errorf("get template: %w", err)
	} else if !exists {
		return JoinMultipleResult{}, fmt.Errorf("%w: template=%s", ErrNotFound, input.TemplateID)
	}

	result := JoinMultipleResult{Participations: make([]participation.Participation, 0, len(seats))}

	// A single repeated team must belong to the user; in list mode a bad team only skips its seat.
	if len(input.TeamIDs) == 0 {
		if _, err := findTeam(ctx, s.teamRepo, input.TeamID, input.UserID, input.MatchID); err != nil {
			return JoinMultipleResult{}, err
		}
	} else {
		valid := seats[:0:0]
		for _, teamID := range seats {
			_, err := findTeam(ctx, s.teamRepo, teamID, input.UserID, input.MatchID)
			switch {
			case err == nil:
				valid = append(valid, teamID)
			case errors.Is(err, ErrNotFound):
				result.FailedReasons = append(result.FailedReasons, err.Error())
			default:
				return JoinMultipleResult{}, err
			}
		}
		seats = valid
	}

	for _, teamID := range seats {
		joined, reason, err := s.joinNext(ctx, input.MatchID, input.TemplateID, input.UserID, teamID)
		if err != nil {
			result.FailedReasons = append(result.FailedReasons, err.Error())
			s.logger.ErrorContext(ctx, "join multiple stopped on error",
				"user_id", input.UserID,
				"template_id", input.TemplateID,
				"joined", result.Joined,
				"requested", len(seats),
				"error", err,
			)
			return result, err
		}
		if reason != "" {
			result.FailedReasons = append(result.FailedReasons, reason)
			break
		}

		result.Joined++
		result.Participations = append(result.Participations, joined)
	}

	s.logger.InfoContext(ctx, "join multiple finished",
		"user_id", input.UserID,
		"match_id", input.MatchID,
		"template_id", input.TemplateID,
		"joined", result.Joined,
		"requested", len(seats),
	)

	return result, nil
}

// seatTeams expands the input into one team id per requested seat.
func seatTeams(input JoinMultipleInput) ([]string, error) {
	if len(input.TeamIDs) == 0 {
		if input.TeamID == "" {
			return nil, fmt.Errorf("%w: team_id or team_ids is required", ErrInvalidInput)
		}
		if input.Count < 1 || input.Count > MaxJoinBatch {
			return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, MaxJoinBatch)
		}
		seats := make([]string, input.Count)
		for i := range seats {
			seats[i] = input.TeamID
		}
		return seats, nil
	}

	if input.TeamID != "" {
		return nil, fmt.Errorf("%w: team_id and team_ids are mutually exclusive", ErrInvalidInput)
	}
	if len(input.TeamIDs) > MaxJoinBatch {
		return nil, fmt.Errorf("%w: at most %d team_ids", ErrInvalidInput, MaxJoinBatch)
	}
	if input.Count != 0 && input.Count != len(input.TeamIDs) {
		return nil, fmt.Errorf("%w: count must match the number of team_ids", ErrInvalidInput)
	}

	seats := make([]string, 0, len(input.TeamIDs))
	seen := make(map[string]struct{}, len(input.TeamIDs))
	for _, raw := range input.TeamIDs {
		teamID := strings.TrimSpace(raw)
		if teamID == "" {
			return nil, fmt.Errorf("%w: team_ids must not contain blanks", ErrInvalidInput)
		}
		if _, dup := seen[teamID]; dup {
			return nil, fmt.Errorf("%w: team %s listed twice", ErrInvalidInput, teamID)
		}
		seen[teamID] = struct{}{}
		seats = append(seats, teamID)
	}
	return seats, nil
}

// ensureMatchOpen rejects joins once the match has started, whatever the contest status says.
func (s *AllocatorService) ensureMatchOpen(ctx context.Context, matchID string) error {
	state, err := s.matches.GetMatchState(ctx, matchID)
	if err != nil {
		return fmt.Errorf("%w: get match state: %w", ErrDependencyUnavailable, err)
	}
	if matchStarted(state, s.now().UTC()) {
		return fmt.Errorf("%w: match=%s", ErrMatchStarted, matchID)
	}
	return nil
}

func matchStarted(state match.State, now time.Time) bool {
	return state.Started || state.Ended || (!state.StartTime.IsZero() && !now.Before(state.StartTime))
}

// joinNext performs one batch step. A non-empty reason means nothing more can be joined.
func (s *AllocatorService) joinNext(ctx context.Context, matchID, templateID, userID, teamID string) (participation.Participation, string, error) {
	instances, err := s.contestRepo.ListByMatchAndTemplate(ctx, matchID, templateID)
	if err != nil {
		return participation.Participation{}, "", fmt.Errorf("list contest instances: %w", err)
	}

	if candidates := joinCandidates(instances, userID); len(candidates) > 0 {
		joined, outcome, err := s.admit(ctx, candidates[0], userID, teamID)
		switch {
		case err != nil && !errors.Is(err, ErrAlreadyJoined):
			return participation.Participation{}, "", err
		case err == nil && outcome == contest.AdmitOK:
			return joined, "", nil
		}
		s.logger.DebugContext(ctx, "best-fit instance lost race, cloning",
			"contest_id", candidates[0].ID,
			"outcome", outcome.String(),
		)
	}

	cloned, err := s.cloner.Clone(ctx, matchID, templateID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPreconditionFailed) {
			return participation.Participation{}, fmt.Sprintf("no further contest can be created: %v", err), nil
		}
		return participation.Participation{}, "", err
	}

	joined, outcome, err := s.admit(ctx, cloned, userID, teamID)
	if err != nil {
		if errors.Is(err, ErrAlreadyJoined) {
			return participation.Participation{}, fmt.Sprintf("already joined new instance %s", cloned.ID), nil
		}
		return participation.Participation{}, "", err
	}
	if outcome != contest.AdmitOK {
		return participation.Participation{}, fmt.Sprintf("new instance %s could not seat user: %s", cloned.ID, outcome), nil
	}
	return joined, "", nil
}

// admit takes the seat with a conditional write, then records the participation.
// The seat is given back when the participation cannot be stored.
func (s *AllocatorService) admit(ctx context.Context, target contest.Contest, userID, teamID string) (participation.Participation, contest.AdmitOutcome, error) {
	now := s.now().UTC()

	_, outcome, err := s.contestRepo.Admit(ctx, target.ID, userID, now)
	if err != nil {
		return participation.Participation{}, outcome, fmt.Errorf("admit contest: %w", err)
	}
	if outcome != contest.AdmitOK {
		return participation.Participation{}, outcome, nil
	}

	participationID, err := s.idGen.NewID()
	if err != nil {
		s.releaseSeat(ctx, target.ID, userID, now)
		return participation.Participation{}, outcome, fmt.Errorf("generate participation id: %w", err)
	}

	item := participation.Participation{
		ID:         participationID,
		UserID:     userID,
		ContestID:  target.ID,
		MatchID:    target.MatchID,
		TemplateID: target.TemplateID,
		TeamID:     teamID,
		JoinedAt:   now,
	}
	if err := s.participationRepo.Create(ctx, item); err != nil {
		s.releaseSeat(ctx, target.ID, userID, now)
		if errors.Is(err, participation.ErrDuplicate) {
			return participation.Participation{}, outcome, fmt.Errorf("%w: contest=%s", ErrAlreadyJoined, target.ID)
		}
		return participation.Participation{}, outcome, fmt.Errorf("create participation: %w", err)
	}

	return item, outcome, nil
}

func (s *AllocatorService) releaseSeat(ctx context.Context, contestID, userID string, at time.Time) {
	if err := s.contestRepo.Release(ctx, contestID, userID, at); err != nil {
		s.logger.ErrorContext(ctx, "release contest seat failed",
			"contest_id", contestID,
			"user_id", userID,
			"error", err,
		)
	}
}

// joinCandidates returns open instances the user is not in, fullest first.
func joinCandidates(instances []contest.Contest, userID string) []contest.Contest {
	out := make([]contest.Contest, 0, len(instances))
	for _, item := range instances {
		if !item.OpenForEntry() || item.IsFull() || item.HasParticipant(userID) {
			continue
		}
		out = append(out, item)
	}
	slices.SortStableFunc(out, func(a, b contest.Contest) int {
		if a.FilledSlots != b.FilledSlots {
			return cmp.Compare(b.FilledSlots, a.FilledSlots)
		}
		return cmp.Compare(a.Ordinal, b.Ordinal)
	})
	return out
}

// SwitchTeam swaps the team on a participation before the match starts.
func (s *AllocatorService) SwitchTeam(ctx context.Context, input SwitchTeamInput) (participation.Participation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AllocatorService.SwitchTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ParticipationID = strings.TrimSpace(input.ParticipationID)
	input.NewTeamID = strings.TrimSpace(input.NewTeamID)
	if input.UserID == "" || input.ParticipationID == "" || input.NewTeamID == "" {
		return participation.Participation{}, fmt.Errorf("%w: user_id, participation_id and new_team_id are required", ErrInvalidInput)
	}

	current, exists, err := s.participationRepo.GetByID(ctx, input.ParticipationID)
	if err != nil {
		return participation.Participation{}, fmt.Errorf("get participation: %w", err)
	}
	if !exists || current.UserID != input.UserID {
		return participation.Participation{}, fmt.Errorf("%w: participation=%s", ErrNotFound, input.ParticipationID)
	}

	state, err := s.matches.GetMatchState(ctx, current.MatchID)
	if err != nil {
		return participation.Participation{}, fmt.Errorf("%w: get match state: %w", ErrDependencyUnavailable, err)
	}
	if matchStarted(state, s.now().UTC()) {
		return participation.Participation{}, fmt.Errorf("%w: match=%s", ErrMatchStarted, current.MatchID)
	}

	if _, err := findTeam(ctx, s.teamRepo, input.NewTeamID, input.UserID, current.MatchID); err != nil {
		return participation.Participation{}, err
	}
	if current.TeamID == input.NewTeamID {
		return current, nil
	}

	updated, exists, err := s.participationRepo.UpdateTeam(ctx, current.ID, input.NewTeamID)
	if err != nil {
		return participation.Participation{}, fmt.Errorf("update participation team: %w", err)
	}
	if !exists {
		return participation.Participation{}, fmt.Errorf("%w: participation=%s", ErrNotFound, input.ParticipationID)
	}

	s.logger.InfoContext(ctx, "participation team switched",
		"participation_id", current.ID,
		"user_id", input.UserID,
		"old_team_id", current.TeamID,
		"new_team_id", input.NewTeamID,
	)

	return updated, nil
}
