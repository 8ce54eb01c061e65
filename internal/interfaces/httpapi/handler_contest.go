package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListTemplates")
	defer span.End()

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	items, err := h.contestService.ListTemplates(ctx, format)
	if err != nil {
		h.logger.WarnContext(ctx, "list templates failed", "format", format, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]templateDTO, 0, len(items))
	for _, item := range items {
		out = append(out, templateToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListContestsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListContestsByMatch")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.contestService.ListContestsByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list contests failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]contestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, contestToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetContest")
	defer span.End()

	contestID, err := pathValue(r, "contestID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.contestService.GetContest(ctx, contestID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(item))
}

func (h *Handler) GetSelectionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetSelectionStats")
	defer span.End()

	matchID, err := pathValue(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.SelectionStats(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "selection stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionStatsToDTO(stats))
}
