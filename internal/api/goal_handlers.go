package api

import (
	"net/http"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
)

type createGoalRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Target      int     `json:"target"`
	Current     int     `json:"current"`
	Category    *string `json:"category"`
	Difficulty  string  `json:"difficulty"`
}

type updateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Target      *int    `json:"target"`
	Current     *int    `json:"current"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.ListGoals(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out := make([]goalJSON, 0, len(goals))
	for i := range goals {
		out = append(out, toGoalJSON(&goals[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	diff := engine.DefaultDifficulty
	if req.Difficulty != "" {
		diff = engine.Difficulty(req.Difficulty)
	}
	g, err := s.svc.CreateGoal(r.Context(), userIDFrom(r), engine.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target,
		Current:     req.Current,
		Category:    req.Category,
		Difficulty:  diff,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalJSON(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	var req updateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := engine.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target,
		Current:     req.Current,
		Category:    req.Category,
	}
	if req.Difficulty != nil {
		d := engine.Difficulty(*req.Difficulty)
		in.Difficulty = &d
	}

	g, err := s.svc.UpdateGoal(r.Context(), userIDFrom(r), id, in)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalJSON(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if err := s.svc.DeleteGoal(r.Context(), userIDFrom(r), id); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}
