package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ScoreMatch")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.scoringService.ScoreMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "score match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreSummaryToDTO(summary))
}

func (h *Handler) CalculateResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.CalculateResults")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	contestID, err := pathValue(r, "contestID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.resultService.CalculateResults(ctx, matchID, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "calculate results failed", "match_id", matchID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]outcomeDTO, 0, len(items))
	for _, item := range items {
		out = append(out, outcomeToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// SettleMatch is the callback target of queued settlement jobs. Per-contest failures are
// reported in the body; the request only fails when scoring itself could not run.
func (h *Handler) SettleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.SettleMatch")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.resultService.SettleMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "settle match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(summary))
}

func (h *Handler) EnsureContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.EnsureContests")
	defer span.End()

	if h.contestScheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.contestScheduler.EnsureUpcomingContests(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "ensure contests failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ensureContestsDTO{
		Matches: result.Matches,
		Created: result.Created,
		Cloned:  result.Cloned,
		Failed:  result.Failed,
	})
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.CreateTemplate")
	defer span.End()

	var req createTemplateRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.contestService.CreateTemplate(ctx, usecase.CreateTemplateInput{
		Title:      req.Title,
		Type:       req.Type,
		Format:     req.Format,
		EntryFee:   req.EntryFee,
		Capacity:   req.Capacity,
		TotalPrize: req.TotalPrize,
		PrizePolicy: contest.PrizePolicy{
			Kind:    contest.PrizeKind(req.PrizePolicy.Kind),
			Shares:  req.PrizePolicy.Shares,
			Amounts: req.PrizePolicy.Amounts,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create template failed", "title", req.Title, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, templateToDTO(created))
}

func (h *Handler) SetTemplateActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.SetTemplateActive")
	defer span.End()

	templateID, err := pathValue(r, "templateID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setTemplateActiveRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.contestService.SetTemplateActive(ctx, templateID, *req.Active)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, templateToDTO(updated))
}
