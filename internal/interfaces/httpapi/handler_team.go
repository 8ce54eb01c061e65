package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.CreateTeam")
	defer span.End()

	userID, err := principalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]team.Pick, 0, len(req.Players))
	for _, p := range req.Players {
		picks = append(picks, team.Pick{PlayerID: p.PlayerID, Role: team.Role(p.Role)})
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		UserID:        userID,
		MatchID:       req.MatchID,
		Name:          req.Name,
		Players:       picks,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", userID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListMyTeams")
	defer span.End()

	userID, err := principalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.teamService.ListTeams(ctx, userID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
