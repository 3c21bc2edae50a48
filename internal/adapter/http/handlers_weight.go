package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleWeightRecord(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var body struct {
		Day    string  `json:"day"`
		Weight float64 `json:"weight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.weight.Record(r.Context(), user.ID, body.Day, body.Weight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	summary, err := s.weight.Summary(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"today":   localDayString(time.Now()),
		"entry":   entry,
		"summary": summary,
	})
}

func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	limit := intQuery(r, "limit", 30)

	items, err := s.weight.History(r.Context(), user.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	summary, err := s.weight.Summary(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items, "summary": summary})
}

func (s *Server) handleWeightSummary(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	summary, err := s.weight.Summary(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
