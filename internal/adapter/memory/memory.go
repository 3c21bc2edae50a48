// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"weighbattle/internal/domain"
)

// DB implements every repository port over in-memory state.
type DB struct {
	mu           sync.Mutex
	users        []*domain.User
	sessions     map[string]*domain.Session
	weights      []domain.WeightEntry
	goals        []domain.Goal
	rooms        []*domain.BattleRoom
	participants []domain.Participant
	invites      map[string]*domain.Invite

	userIDCounter        int64
	weightIDCounter      int64
	goalIDCounter        int64
	roomIDCounter        int64
	participantIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
		invites:  make(map[string]*domain.Invite),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.BattleRepository = (*DB)(nil)
var _ domain.InviteRepository = (*DB)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, nickname, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all sessions that expired before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// --- WeightRepository ---

// UpsertWeightEntry adds or overwrites the entry for a user's day.
func (db *DB) UpsertWeightEntry(ctx context.Context, userID int64, day string, weight float64, recordedAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		w := &db.weights[i]
		if w.UserID == userID && w.Day == day {
			w.Weight = weight
			w.CreatedAt = recordedAt.UTC()
			return w.ID, nil
		}
	}

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightEntry{
		ID:        db.weightIDCounter,
		UserID:    userID,
		Day:       day,
		Weight:    weight,
		CreatedAt: recordedAt.UTC(),
	})
	return db.weightIDCounter, nil
}

// WeightForDay returns the entry for one day, or nil.
func (db *DB) WeightForDay(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		if db.weights[i].UserID == userID && db.weights[i].Day == day {
			ret := db.weights[i]
			return &ret, nil
		}
	}
	return nil, nil
}

// ListWeightEntries returns entries by day descending; limit <= 0 means all.
func (db *DB) ListWeightEntries(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WeightEntry
	for _, w := range db.weights {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day > result[j].Day
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// LatestWeightEntry returns the entry for the most recent recorded day.
func (db *DB) LatestWeightEntry(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	entries, err := db.ListWeightEntries(ctx, userID, 1)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// FirstWeightEntry returns the entry for the earliest recorded day.
func (db *DB) FirstWeightEntry(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	entries, err := db.ListWeightEntries(ctx, userID, 0)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[len(entries)-1], nil
}

// CountWeightDays returns the number of recorded days.
func (db *DB) CountWeightDays(ctx context.Context, userID int64) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	count := 0
	for _, w := range db.weights {
		if w.UserID == userID {
			count++
		}
	}
	return count, nil
}

// --- GoalRepository ---

// CreateGoal stores a goal.
func (db *DB) CreateGoal(ctx context.Context, g domain.Goal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goalIDCounter++
	g.ID = db.goalIDCounter
	db.goals = append(db.goals, g)
	return g.ID, nil
}

// ListGoalsByUser returns the user's goals, newest first.
func (db *DB) ListGoalsByUser(ctx context.Context, userID int64) ([]domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Goal
	for _, g := range db.goals {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- BattleRepository ---

// CreateRoom stores a room.
func (db *DB) CreateRoom(ctx context.Context, room domain.BattleRoom) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.roomIDCounter++
	room.ID = db.roomIDCounter
	db.rooms = append(db.rooms, &room)
	return room.ID, nil
}

// RoomByID retrieves a room by ID.
func (db *DB) RoomByID(ctx context.Context, id int64) (*domain.BattleRoom, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.rooms {
		if r.ID == id {
			ret := *r
			return &ret, nil
		}
	}
	return nil, nil
}

// RoomByEntryCode retrieves a room by entry code.
func (db *DB) RoomByEntryCode(ctx context.Context, entryCode string) (*domain.BattleRoom, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.rooms {
		if r.EntryCode == entryCode {
			ret := *r
			return &ret, nil
		}
	}
	return nil, nil
}

// ListRoomsByUser returns the rooms the user belongs to, newest first.
func (db *DB) ListRoomsByUser(ctx context.Context, userID int64) ([]domain.BattleRoom, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	member := make(map[int64]bool)
	for _, p := range db.participants {
		if p.UserID == userID {
			member[p.RoomID] = true
		}
	}

	var result []domain.BattleRoom
	for _, r := range db.rooms {
		if member[r.ID] {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListExpiredRooms returns in-progress rooms whose window elapsed before now.
func (db *DB) ListExpiredRooms(ctx context.Context, now time.Time) ([]domain.BattleRoom, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.BattleRoom
	for _, r := range db.rooms {
		if r.Status == domain.RoomInProgress && r.EndsAt != nil && !r.EndsAt.After(now) {
			result = append(result, *r)
		}
	}
	return result, nil
}

// SetRoomStatus updates a room's lifecycle state and window.
func (db *DB) SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus, startedAt, endsAt *time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.rooms {
		if r.ID == roomID {
			r.Status = status
			r.StartedAt = startedAt
			r.EndsAt = endsAt
			return nil
		}
	}
	return errors.New("room not found")
}

// SetRoomHost reassigns the room host.
func (db *DB) SetRoomHost(ctx context.Context, roomID, hostID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.rooms {
		if r.ID == roomID {
			r.HostID = hostID
			return nil
		}
	}
	return errors.New("room not found")
}

// AddParticipant stores a room membership.
func (db *DB) AddParticipant(ctx context.Context, p domain.Participant) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.participantIDCounter++
	p.ID = db.participantIDCounter
	db.participants = append(db.participants, p)
	return p.ID, nil
}

// RemoveParticipant deletes a room membership.
func (db *DB) RemoveParticipant(ctx context.Context, roomID, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, p := range db.participants {
		if p.RoomID == roomID && p.UserID == userID {
			db.participants = append(db.participants[:i], db.participants[i+1:]...)
			return nil
		}
	}
	return nil
}

// GetParticipant retrieves one membership, or nil.
func (db *DB) GetParticipant(ctx context.Context, roomID, userID int64) (*domain.Participant, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.participants {
		p := db.participants[i]
		if p.RoomID == roomID && p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

// ListParticipants returns a room's members ordered by join time.
func (db *DB) ListParticipants(ctx context.Context, roomID int64) ([]domain.Participant, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Participant
	for _, p := range db.participants {
		if p.RoomID == roomID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})
	return result, nil
}

// SetParticipantGoal records a member's goal and marks them ready.
func (db *DB) SetParticipantGoal(ctx context.Context, roomID, userID int64, goalType domain.GoalType, targetWeight *float64, startingWeight float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.participants {
		p := &db.participants[i]
		if p.RoomID == roomID && p.UserID == userID {
			gt := goalType
			p.GoalType = &gt
			p.TargetWeight = targetWeight
			sw := startingWeight
			p.StartingWeight = &sw
			p.Ready = true
			return nil
		}
	}
	return errors.New("participant not found")
}

// --- InviteRepository ---

// CreateInvite stores an invite token.
func (db *DB) CreateInvite(ctx context.Context, inv domain.Invite) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.invites[inv.Token] = &inv
	return nil
}

// InviteByToken retrieves an invite, or nil.
func (db *DB) InviteByToken(ctx context.Context, token string) (*domain.Invite, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if inv, ok := db.invites[token]; ok {
		ret := *inv
		return &ret, nil
	}
	return nil, nil
}

// DeleteInvite removes an invite.
func (db *DB) DeleteInvite(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.invites, token)
	return nil
}

// DeleteExpiredInvites removes invites that expired before now.
func (db *DB) DeleteExpiredInvites(ctx context.Context, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for k, v := range db.invites {
		if now.After(v.ExpiresAt) {
			delete(db.invites, k)
		}
	}
	return nil
}
