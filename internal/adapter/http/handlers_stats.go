package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleStatsWeekly(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	weeks := intQuery(r, "weeks", 12)

	points, err := s.stats.Weekly(r.Context(), user.ID, weeks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"weeks": weeks,
		"today": localDayString(time.Now()),
		"items": points,
	})
}
