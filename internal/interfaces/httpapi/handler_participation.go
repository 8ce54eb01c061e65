package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// JoinContest joins one explicit contest instance. A full instance is answered with a
// conflict; the caller can retry through the template route to be placed elsewhere.
func (h *Handler) JoinContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.JoinContest")
	defer span.End()

	userID, err := principalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	contestID, err := pathValue(r, "contestID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinContestRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	target, err := h.contestService.GetContest(ctx, contestID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.allocator.JoinContest(ctx, usecase.JoinContestInput{
		UserID:    userID,
		MatchID:   target.MatchID,
		ContestID: target.ID,
		TeamID:    req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join contest failed", "user_id", userID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, participationToDTO(joined))
}

func (h *Handler) JoinByTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.JoinByTemplate")
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
	templateID, err := pathValue(r, "templateID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinContestRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.allocator.JoinContest(ctx, usecase.JoinContestInput{
		UserID:     userID,
		MatchID:    matchID,
		TemplateID: templateID,
		TeamID:     req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join by template failed", "user_id", userID, "match_id", matchID, "template_id", templateID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, participationToDTO(joined))
}

// JoinMultiple answers 200 with partial progress. A storage failure mid-batch keeps the
// progress in data next to the error so the caller still learns which seats were taken.
func (h *Handler) JoinMultiple(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.JoinMultiple")
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
	templateID, err := pathValue(r, "templateID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinMultipleRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.allocator.JoinMultiple(ctx, usecase.JoinMultipleInput{
		UserID:     userID,
		MatchID:    matchID,
		TemplateID: templateID,
		TeamID:     req.TeamID,
		TeamIDs:    req.TeamIDs,
		Count:      req.Count,
	})
	progress := joinMultipleDTO{
		Requested:      req.requested(),
		Joined:         result.Joined,
		Participations: participationsToDTO(result.Participations),
		FailedReasons:  result.FailedReasons,
	}
	if err != nil {
		h.logger.WarnContext(ctx, "join multiple failed",
			"user_id", userID,
			"template_id", templateID,
			"requested", progress.Requested,
			"joined", result.Joined,
			"error", err,
		)
		if result.Joined > 0 {
			writeErrorWithData(ctx, w, err, progress)
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progress)
}

func (h *Handler) SwitchTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.SwitchTeam")
	defer span.End()

	userID, err := principalUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	participationID, err := pathValue(r, "participationID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req switchTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.allocator.SwitchTeam(ctx, usecase.SwitchTeamInput{
		UserID:          userID,
		ParticipationID: participationID,
		NewTeamID:       req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "switch team failed", "user_id", userID, "participation_id", participationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationToDTO(updated))
}

func (h *Handler) ListMyParticipations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListMyParticipations")
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

	items, err := h.contestService.ListMyParticipations(ctx, userID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationsToDTO(items))
}
