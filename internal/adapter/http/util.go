package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"weighbattle/internal/app"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps the service sentinels onto HTTP statuses so the
// client always sees the actual rejection reason.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, app.ErrRoomNotFound), errors.Is(err, app.ErrInviteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrNotHost),
		errors.Is(err, app.ErrWrongRoomPassword),
		errors.Is(err, app.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, app.ErrRoomFull),
		errors.Is(err, app.ErrAlreadyJoined),
		errors.Is(err, app.ErrRoomNotJoinable),
		errors.Is(err, app.ErrNotEnoughParticipants),
		errors.Is(err, app.ErrGoalsNotSet),
		errors.Is(err, app.ErrInviteExpired):
		status = http.StatusConflict
	}
	writeError(w, status, err)
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func localDayString(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
