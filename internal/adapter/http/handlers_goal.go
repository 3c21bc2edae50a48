package adapthttp

import (
	"net/http"
)

func (s *Server) handleGoalCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var body struct {
		Title         string   `json:"title"`
		TargetWeight  float64  `json:"targetWeight"`
		DurationHours int      `json:"durationHours"`
		StartWeight   *float64 `json:"startWeight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goal, err := s.goals.Create(r.Context(), user.ID, body.Title, body.TargetWeight, body.DurationHours, body.StartWeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleGoalList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	views, err := s.goals.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": views})
}
