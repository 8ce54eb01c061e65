package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/templates", handler.ListTemplates)
	mux.HandleFunc("GET /v1/matches/{matchID}/contests", handler.ListContestsByMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/selection-stats", handler.GetSelectionStats)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedContestRoutes(mux, handler, verifier)
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/matches/{matchID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
}

func registerAuthorizedContestRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/contests/{contestID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinContest)))
	mux.Handle("POST /v1/matches/{matchID}/templates/{templateID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinByTemplate)))
	mux.Handle("POST /v1/matches/{matchID}/templates/{templateID}/join-multiple", RequireAuth(verifier, http.HandlerFunc(handler.JoinMultiple)))
	mux.Handle("PUT /v1/participations/{participationID}/team", RequireAuth(verifier, http.HandlerFunc(handler.SwitchTeam)))
	mux.Handle("GET /v1/matches/{matchID}/participations", RequireAuth(verifier, http.HandlerFunc(handler.ListMyParticipations)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}

	mux.Handle("POST /v1/internal/matches/{matchID}/score", internal(handler.ScoreMatch))
	mux.Handle("POST /v1/internal/matches/{matchID}/contests/{contestID}/results", internal(handler.CalculateResults))
	mux.Handle("POST /v1/internal/matches/{matchID}/settle", internal(handler.SettleMatch))
	mux.Handle("POST /v1/internal/jobs/ensure-contests", internal(handler.EnsureContests))
	mux.Handle("POST /v1/internal/templates", internal(handler.CreateTemplate))
	mux.Handle("PUT /v1/internal/templates/{templateID}/active", internal(handler.SetTemplateActive))
}
