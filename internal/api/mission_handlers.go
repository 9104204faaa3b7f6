package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
)

type createMissionRequest struct {
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	Difficulty        string     `json:"difficulty"`
	DueDate           *time.Time `json:"due_date"`
	GoalID            *int64     `json:"goal_id"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern"`
}

// updateMissionRequest carries a partial update; absent fields are left
// untouched, except goal_id where absence unlinks the goal.
type updateMissionRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Difficulty  *string    `json:"difficulty"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	GoalID      *int64     `json:"goal_id"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := s.svc.ListMissions(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out := make([]missionJSON, 0, len(missions))
	for i := range missions {
		out = append(out, toMissionJSON(&missions[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	var req createMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	diff := engine.DefaultDifficulty
	if req.Difficulty != "" {
		diff = engine.Difficulty(req.Difficulty)
	}
	m, err := s.svc.CreateMission(r.Context(), userIDFrom(r), engine.CreateMissionInput{
		Title:             req.Title,
		Description:       req.Description,
		Difficulty:        diff,
		DueDate:           req.DueDate,
		GoalID:            req.GoalID,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMissionJSON(m))
}

func (s *Server) handleUpdateMission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	var req updateMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := engine.UpdateMissionInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		GoalID:      req.GoalID,
	}
	if req.Difficulty != nil {
		d := engine.Difficulty(*req.Difficulty)
		in.Difficulty = &d
	}
	if req.Status != nil {
		st := engine.Status(*req.Status)
		in.Status = &st
	}

	m, reward, err := s.svc.UpdateMission(r.Context(), userIDFrom(r), id, in)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out := toMissionJSON(m)
	out.Reward = toRewardJSON(reward)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteMission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	if err := s.svc.DeleteMission(r.Context(), userIDFrom(r), id); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "mission deleted"})
}
