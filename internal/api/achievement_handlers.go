package api

import "net/http"

type createAchievementRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.svc.AchievementRepo().ListByUser(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out := make([]achievementJSON, 0, len(achievements))
	for i := range achievements {
		out = append(out, toAchievementJSON(&achievements[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req createAchievementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := s.svc.CreateAchievement(r.Context(), userIDFrom(r), req.Title, req.Description, req.Icon)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAchievementJSON(a))
}

func (s *Server) handleDeleteAchievement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid achievement id")
		return
	}
	deleted, err := s.svc.AchievementRepo().Delete(r.Context(), userIDFrom(r), id)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "achievement not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "achievement deleted"})
}
