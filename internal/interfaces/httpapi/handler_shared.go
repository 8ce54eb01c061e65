package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type Handler struct {
	contestService   *usecase.ContestService
	teamService      *usecase.TeamService
	allocator        *usecase.AllocatorService
	scoringService   *usecase.ScoringService
	resultService    *usecase.ResultService
	statsService     *usecase.StatsService
	contestScheduler *usecase.ContestSchedulerService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	contestService *usecase.ContestService,
	teamService *usecase.TeamService,
	allocator *usecase.AllocatorService,
	scoringService *usecase.ScoringService,
	resultService *usecase.ResultService,
	statsService *usecase.StatsService,
	contestScheduler *usecase.ContestSchedulerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		contestService:   contestService,
		teamService:      teamService,
		allocator:        allocator,
		scoringService:   scoringService,
		resultService:    resultService,
		statsService:     statsService,
		contestScheduler: contestScheduler,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a strict JSON body into dst and runs struct validation.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathValue(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

type teamPickRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=WK BAT AR BOWL"`
}

type createTeamRequest struct {
	MatchID       string            `json:"match_id" validate:"required"`
	Name          string            `json:"name" validate:"required,max=60"`
	Players       []teamPickRequest `json:"players" validate:"required,min=1,dive"`
	CaptainID     string            `json:"captain_id" validate:"required"`
	ViceCaptainID string            `json:"vice_captain_id" validate:"required,nefield=CaptainID"`
}

type joinContestRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type joinMultipleRequest struct {
	TeamID  string   `json:"team_id" validate:"required_without=TeamIDs"`
	TeamIDs []string `json:"team_ids" validate:"omitempty,dive,required"`
	Count   int      `json:"count" validate:"omitempty,gt=0"`
}

func (r joinMultipleRequest) requested() int {
	if len(r.TeamIDs) > 0 {
		return len(r.TeamIDs)
	}
	return r.Count
}

type switchTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type prizePolicyRequest struct {
	Kind    string   `json:"kind" validate:"required,oneof=winner_takes_all percentage_split fixed_amount_split"`
	Shares  []string `json:"shares,omitempty" validate:"omitempty,dive,numeric"`
	Amounts []int64  `json:"amounts,omitempty" validate:"omitempty,dive,gte=0"`
}

type createTemplateRequest struct {
	Title       string             `json:"title" validate:"required,max=120"`
	Type        string             `json:"type" validate:"required"`
	Format      string             `json:"format"`
	EntryFee    int64              `json:"entry_fee" validate:"gte=0"`
	Capacity    int                `json:"capacity" validate:"required,gt=1"`
	TotalPrize  int64              `json:"total_prize" validate:"gte=0"`
	PrizePolicy prizePolicyRequest `json:"prize_policy"`
}

type setTemplateActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type templateDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Format      string         `json:"format"`
	EntryFee    int64          `json:"entryFee"`
	Capacity    int            `json:"capacity"`
	TotalPrize  int64          `json:"totalPrize"`
	PrizePolicy prizePolicyDTO `json:"prizePolicy"`
	IsActive    bool           `json:"isActive"`
}

type prizePolicyDTO struct {
	Kind    string   `json:"kind"`
	Shares  []string `json:"shares,omitempty"`
	Amounts []int64  `json:"amounts,omitempty"`
}

type contestDTO struct {
	ID            string         `json:"id"`
	TemplateID    string         `json:"templateId"`
	MatchID       string         `json:"matchId"`
	Title         string         `json:"title"`
	Ordinal       int            `json:"ordinal"`
	EntryFee      int64          `json:"entryFee"`
	Capacity      int            `json:"capacity"`
	FilledSlots   int            `json:"filledSlots"`
	SpotsLeft     int            `json:"spotsLeft"`
	TotalPrize    int64          `json:"totalPrize"`
	PrizePolicy   prizePolicyDTO `json:"prizePolicy"`
	BaseContestID string         `json:"baseContestId,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt"`
}

type teamPickDTO struct {
	PlayerID string `json:"playerId"`
	Role     string `json:"role"`
}

type teamDTO struct {
	ID            string        `json:"id"`
	MatchID       string        `json:"matchId"`
	Name          string        `json:"name"`
	Players       []teamPickDTO `json:"players"`
	CaptainID     string        `json:"captainId"`
	ViceCaptainID string        `json:"viceCaptainId"`
	CreatedAt     string        `json:"createdAt"`
}

type participationDTO struct {
	ID         string  `json:"id"`
	ContestID  string  `json:"contestId"`
	MatchID    string  `json:"matchId"`
	TemplateID string  `json:"templateId"`
	TeamID     string  `json:"teamId"`
	JoinedAt   string  `json:"joinedAt"`
	Points     float64 `json:"points"`
	Rank       int     `json:"rank,omitempty"`
	IsWinner   bool    `json:"isWinner"`
	PrizeWon   int64   `json:"prizeWon"`
	SettledAt  string  `json:"settledAt,omitempty"`
}

type joinMultipleDTO struct {
	Requested      int                `json:"requested"`
	Joined         int                `json:"joined"`
	Participations []participationDTO `json:"participations"`
	FailedReasons  []string           `json:"failedReasons,omitempty"`
}

type selectionStatsDTO struct {
	MatchID    string               `json:"matchId"`
	TotalTeams int                  `json:"totalTeams"`
	Players    []playerSelectionDTO `json:"players"`
	ComputedAt string               `json:"computedAt"`
}

type playerSelectionDTO struct {
	PlayerID       string  `json:"playerId"`
	Selected       int     `json:"selected"`
	SelectedPct    float64 `json:"selectedPct"`
	CaptainPct     float64 `json:"captainPct"`
	ViceCaptainPct float64 `json:"viceCaptainPct"`
}

type scoreSummaryDTO struct {
	MatchID       string `json:"matchId"`
	Format        string `json:"format"`
	Events        int    `json:"events"`
	Players       int    `json:"players"`
	Unresolved    int    `json:"unresolved"`
	UnknownFormat bool   `json:"unknownFormat"`
	RulesVersion  int    `json:"rulesVersion"`
	ScoredAt      string `json:"scoredAt"`
}

type outcomeDTO struct {
	UserID          string  `json:"userId"`
	ParticipationID string  `json:"participationId"`
	ContestID       string  `json:"contestId"`
	Rank            int     `json:"rank"`
	Points          float64 `json:"points"`
	PrizeWon        int64   `json:"prizeWon"`
	Result          string  `json:"result"`
	TeamID          string  `json:"teamId"`
}

type contestSettlementDTO struct {
	ContestID    string `json:"contestId"`
	Participants int    `json:"participants"`
	Winners      int    `json:"winners"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
}

type settlementSummaryDTO struct {
	MatchID   string                 `json:"matchId"`
	Score     scoreSummaryDTO        `json:"score"`
	Contests  []contestSettlementDTO `json:"contests"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
}

type ensureContestsDTO struct {
	Matches int `json:"matches"`
	Created int `json:"created"`
	Cloned  int `json:"cloned"`
	Failed  int `json:"failed"`
}
