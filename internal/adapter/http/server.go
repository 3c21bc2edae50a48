// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"weighbattle/internal/app"

	"github.com/gorilla/mux"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth    *app.AuthService
	weight  *app.WeightService
	goals   *app.GoalService
	battles *app.BattleService
	invites *app.InviteService
	stats   *app.StatsService
	oidc    *OIDCConfig

	// disableAuth skips session validation; tests only.
	disableAuth bool
	testUserID  int64
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, weight *app.WeightService, goals *app.GoalService, battles *app.BattleService, invites *app.InviteService, stats *app.StatsService, oidc *OIDCConfig) *Server {
	return &Server{
		auth:    auth,
		weight:  weight,
		goals:   goals,
		battles: battles,
		invites: invites,
		stats:   stats,
		oidc:    oidc,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/config", s.handleAuthConfig).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	// Invite resolution is public so a client can pre-fill the join form and
	// replay the invite after the login redirect.
	api.HandleFunc("/invites/{token}", s.handleResolveInvite).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/weight", s.handleWeightHistory).Methods(http.MethodGet)
	authed.HandleFunc("/weight", s.handleWeightRecord).Methods(http.MethodPost)
	authed.HandleFunc("/weight/summary", s.handleWeightSummary).Methods(http.MethodGet)
	authed.HandleFunc("/stats/weekly", s.handleStatsWeekly).Methods(http.MethodGet)

	authed.HandleFunc("/goals", s.handleGoalList).Methods(http.MethodGet)
	authed.HandleFunc("/goals", s.handleGoalCreate).Methods(http.MethodPost)

	authed.HandleFunc("/battles", s.handleBattleList).Methods(http.MethodGet)
	authed.HandleFunc("/battles", s.handleBattleCreate).Methods(http.MethodPost)
	authed.HandleFunc("/battles/join", s.handleBattleJoin).Methods(http.MethodPost)
	authed.HandleFunc("/battles/{code}", s.handleBattleDetail).Methods(http.MethodGet)
	authed.HandleFunc("/battles/{code}/goal", s.handleBattleGoal).Methods(http.MethodPost)
	authed.HandleFunc("/battles/{code}/start", s.handleBattleStart).Methods(http.MethodPost)
	authed.HandleFunc("/battles/{code}/leave", s.handleBattleLeave).Methods(http.MethodPost)
	authed.HandleFunc("/battles/{code}/cancel", s.handleBattleCancel).Methods(http.MethodPost)
	authed.HandleFunc("/battles/{code}/invite", s.handleBattleInvite).Methods(http.MethodPost)

	return s.loggingMiddleware(withNoCache(r))
}
