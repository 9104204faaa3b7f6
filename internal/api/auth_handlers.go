package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wichardvalente37/war-path-progress/internal/auth"
	"github.com/wichardvalente37/war-path-progress/internal/engine"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	user, err := s.svc.CreateAccount(r.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, engine.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		s.writeEngineError(w, err)
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		Token: token,
		User:  userJSON{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.svc.UserRepo().GetByEmail(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token: token,
		User:  userJSON{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.UserRepo().Get(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userJSON{ID: user.ID, Email: user.Email})
}
