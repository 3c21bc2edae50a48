package adapthttp

import (
	"net/http"

	"weighbattle/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) handleBattleCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var body struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		Password        string `json:"password"`
		MaxParticipants int    `json:"maxParticipants"`
		DurationDays    int    `json:"durationDays"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	room, err := s.battles.CreateRoom(r.Context(), user, body.Name, body.Description, body.Password, body.MaxParticipants, body.DurationDays)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (s *Server) handleBattleList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	items, err := s.battles.MyRooms(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleBattleJoin(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var body struct {
		EntryCode string `json:"entryCode"`
		Password  string `json:"password"`
		Invite    string `json:"invite"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var room *domain.BattleRoom
	var err error
	if body.Invite != "" {
		var roomID int64
		roomID, err = s.invites.Consume(r.Context(), body.Invite)
		if err == nil {
			room, err = s.battles.JoinInvited(r.Context(), user, roomID)
		}
	} else {
		room, err = s.battles.Join(r.Context(), user, body.EntryCode, body.Password)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleBattleDetail(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	code := mux.Vars(r)["code"]

	detail, err := s.battles.Detail(r.Context(), user.ID, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleBattleGoal(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	code := mux.Vars(r)["code"]

	var body struct {
		GoalType     string   `json:"goalType"`
		TargetWeight *float64 `json:"targetWeight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.battles.SetGoal(r.Context(), user.ID, code, domain.GoalType(body.GoalType), body.TargetWeight)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleBattleStart(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	code := mux.Vars(r)["code"]

	room, err := s.battles.Start(r.Context(), user.ID, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleBattleLeave(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	code := mux.Vars(r)["code"]

	if err := s.battles.Leave(r.Context(), user.ID, code); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBattleCancel(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	code := mux.Vars(r)["code"]

	if err := s.battles.Cancel(r.Context(), user.ID, code); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBattleInvite(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	code := mux.Vars(r)["code"]

	share, err := s.invites.Create(r.Context(), user, code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, share)
}

func (s *Server) handleResolveInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	resolved, err := s.invites.Resolve(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}
