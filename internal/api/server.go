package api

import (
	"log/slog"
	"net/http"

	"github.com/wichardvalente37/war-path-progress/internal/auth"
	"github.com/wichardvalente37/war-path-progress/internal/engine"
)

// Server is the JSON API over the reward engine and its stores.
type Server struct {
	svc        *engine.Service
	issuer     *auth.TokenIssuer
	bcryptCost int
	log        *slog.Logger
}

func NewServer(svc *engine.Service, issuer *auth.TokenIssuer, bcryptCost int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, issuer: issuer, bcryptCost: bcryptCost, log: log}
}

// Handler builds the route table. All /api routes except health and
// register/login require a Bearer token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("GET /api/auth/me", s.requireAuth(s.handleMe))

	mux.Handle("GET /api/profile", s.requireAuth(s.handleGetProfile))
	mux.Handle("PUT /api/profile", s.requireAuth(s.handleUpdateProfile))

	mux.Handle("GET /api/missions", s.requireAuth(s.handleListMissions))
	mux.Handle("POST /api/missions", s.requireAuth(s.handleCreateMission))
	mux.Handle("PUT /api/missions/{id}", s.requireAuth(s.handleUpdateMission))
	mux.Handle("DELETE /api/missions/{id}", s.requireAuth(s.handleDeleteMission))

	mux.Handle("GET /api/goals", s.requireAuth(s.handleListGoals))
	mux.Handle("POST /api/goals", s.requireAuth(s.handleCreateGoal))
	mux.Handle("PUT /api/goals/{id}", s.requireAuth(s.handleUpdateGoal))
	mux.Handle("DELETE /api/goals/{id}", s.requireAuth(s.handleDeleteGoal))

	mux.Handle("GET /api/categories", s.requireAuth(s.handleListCategories))
	mux.Handle("POST /api/categories", s.requireAuth(s.handleCreateCategory))
	mux.Handle("DELETE /api/categories/{id}", s.requireAuth(s.handleDeleteCategory))

	mux.Handle("GET /api/achievements", s.requireAuth(s.handleListAchievements))
	mux.Handle("POST /api/achievements", s.requireAuth(s.handleCreateAchievement))
	mux.Handle("DELETE /api/achievements/{id}", s.requireAuth(s.handleDeleteAchievement))

	return s.withCORS(s.withLogging(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Warpath API is running",
	})
}
