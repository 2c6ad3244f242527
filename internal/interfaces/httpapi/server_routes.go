package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.Handle("POST /v1/auth/logout", RequireAuth(verifier, http.HandlerFunc(handler.Logout)))
	mux.Handle("GET /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams/{teamID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.GetLineupEditor)))
	mux.Handle("PUT /v1/teams/{teamID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.SaveLineup)))
	mux.Handle("POST /v1/teams/{teamID}/lineup/edits", RequireAuth(verifier, http.HandlerFunc(handler.ApplyLineupEdit)))
	mux.Handle("GET /v1/teams/{teamID}/lineup/countdown", RequireAuth(verifier, http.HandlerFunc(handler.StreamEditWindow)))
	mux.Handle("GET /v1/teams/{teamID}/history", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamHistory)))
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/chips", RequireAuth(verifier, http.HandlerFunc(handler.GetChipBoard)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/gameweeks/sync-deadlines", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.SyncDeadlines))))
	mux.Handle("POST /v1/admin/gameweeks/{gw}/publish", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.PublishGameweek))))
}
