package app

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"weighbattle/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrRoomNotFound indicates that no room exists for the given entry code.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomNotJoinable indicates the room is no longer waiting for participants.
	ErrRoomNotJoinable = errors.New("room is not open for joining")
	// ErrRoomFull indicates the room reached its participant limit.
	ErrRoomFull = errors.New("room is full")
	// ErrWrongRoomPassword indicates a failed room password check.
	ErrWrongRoomPassword = errors.New("wrong room password")
	// ErrAlreadyJoined indicates the user is already a participant.
	ErrAlreadyJoined = errors.New("already a participant of this room")
	// ErrNotParticipant indicates the user is not a member of the room.
	ErrNotParticipant = errors.New("not a participant of this room")
	// ErrNotHost indicates a host-only action attempted by a non-host.
	ErrNotHost = errors.New("only the host may do this")
	// ErrNotEnoughParticipants rejects a start with fewer than two members.
	ErrNotEnoughParticipants = errors.New("not enough participants to start")
	// ErrGoalsNotSet rejects a start while any participant lacks a goal.
	ErrGoalsNotSet = errors.New("every participant must set a goal before starting")
	// ErrTargetRequired indicates a loss/gain goal missing its target weight.
	ErrTargetRequired = errors.New("target weight is required for this goal type")
	// ErrRoomNotStarted indicates an action that needs a running or finished room.
	ErrRoomNotStarted = errors.New("room has not started")
)

const entryCodeLen = 6

// Readable subset: no 0/O, 1/I ambiguity in shared codes.
const entryCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// BattleService mediates battle room membership and lifecycle transitions.
type BattleService struct {
	rooms   domain.BattleRepository
	weights domain.WeightRepository
}

// NewBattleService creates a BattleService backed by the given repositories.
func NewBattleService(rooms domain.BattleRepository, weights domain.WeightRepository) *BattleService {
	return &BattleService{rooms: rooms, weights: weights}
}

// CreateRoom validates and stores a new battle room with the creator as host
// and first participant. The room password is stored only as a bcrypt hash.
func (s *BattleService) CreateRoom(ctx context.Context, host *domain.User, name, description, password string, maxParticipants, durationDays int) (*domain.BattleRoom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("room name is required")
	}
	if len(password) < 4 {
		return nil, errors.New("room password must be at least 4 characters")
	}
	if maxParticipants < domain.MinRoomParticipants || maxParticipants > domain.MaxRoomParticipants {
		return nil, errors.New("max participants must be between 2 and 4")
	}
	if durationDays < 1 {
		return nil, errors.New("duration must be at least 1 day")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	room := domain.BattleRoom{
		Name:            name,
		Description:     strings.TrimSpace(description),
		PasswordHash:    string(hash),
		HostID:          host.ID,
		Status:          domain.RoomWaiting,
		MaxParticipants: maxParticipants,
		DurationDays:    durationDays,
		CreatedAt:       time.Now(),
	}

	// Entry codes are short and public; retry the rare collision.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := newEntryCode()
		if err != nil {
			return nil, err
		}
		existing, err := s.rooms.RoomByEntryCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			room.EntryCode = code
			break
		}
	}
	if room.EntryCode == "" {
		return nil, errors.New("could not allocate an entry code")
	}

	id, err := s.rooms.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	room.ID = id

	_, err = s.rooms.AddParticipant(ctx, domain.Participant{
		RoomID:   id,
		UserID:   host.ID,
		Nickname: host.Nickname,
		JoinedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Join adds a user to a waiting room after checking the entry code, the
// password, capacity and duplicate membership. Each failure is a distinct
// error so callers can report the actual reason.
func (s *BattleService) Join(ctx context.Context, user *domain.User, entryCode, password string) (*domain.BattleRoom, error) {
	room, err := s.waitingRoom(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(password)) != nil {
		return nil, ErrWrongRoomPassword
	}
	if err := s.addParticipant(ctx, room, user); err != nil {
		return nil, err
	}
	return room, nil
}

// JoinInvited adds a user holding a valid invite token; the invite stands in
// for the password check.
func (s *BattleService) JoinInvited(ctx context.Context, user *domain.User, roomID int64) (*domain.BattleRoom, error) {
	room, err := s.rooms.RoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Status != domain.RoomWaiting {
		return nil, ErrRoomNotJoinable
	}
	if err := s.addParticipant(ctx, room, user); err != nil {
		return nil, err
	}
	return room, nil
}

// Leave removes a user from a waiting room. The host role transfers to the
// longest-joined remaining participant; an emptied room is cancelled.
func (s *BattleService) Leave(ctx context.Context, userID int64, entryCode string) error {
	room, err := s.waitingRoom(ctx, entryCode)
	if err != nil {
		return err
	}
	p, err := s.rooms.GetParticipant(ctx, room.ID, userID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotParticipant
	}

	if err := s.rooms.RemoveParticipant(ctx, room.ID, userID); err != nil {
		return err
	}

	remaining, err := s.rooms.ListParticipants(ctx, room.ID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return s.rooms.SetRoomStatus(ctx, room.ID, domain.RoomCancelled, nil, nil)
	}
	if room.HostID == userID {
		return s.rooms.SetRoomHost(ctx, room.ID, remaining[0].UserID)
	}
	return nil
}

// SetGoal records a participant's personal goal and snapshots their starting
// weight from the weight store. Requires at least one recorded weight.
func (s *BattleService) SetGoal(ctx context.Context, userID int64, entryCode string, goalType domain.GoalType, targetWeight *float64) (*domain.Participant, error) {
	room, err := s.waitingRoom(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	p, err := s.rooms.GetParticipant(ctx, room.ID, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotParticipant
	}

	switch goalType {
	case domain.GoalTypeLoss, domain.GoalTypeGain:
		if targetWeight == nil || *targetWeight <= 0 {
			return nil, ErrTargetRequired
		}
	case domain.GoalTypeMaintain:
		targetWeight = nil
	default:
		return nil, errors.New("unknown goal type")
	}

	latest, err := s.weights.LatestWeightEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoWeightRecorded
	}

	if err := s.rooms.SetParticipantGoal(ctx, room.ID, userID, goalType, targetWeight, latest.Weight); err != nil {
		return nil, err
	}
	return s.rooms.GetParticipant(ctx, room.ID, userID)
}

// Start transitions a waiting room to in-progress. Host only; guarded by a
// minimum of two participants and every participant having set a goal. The
// two guards fail with distinct errors.
func (s *BattleService) Start(ctx context.Context, userID int64, entryCode string) (*domain.BattleRoom, error) {
	room, err := s.waitingRoom(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	if room.HostID != userID {
		return nil, ErrNotHost
	}

	participants, err := s.rooms.ListParticipants(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(participants) < domain.MinRoomParticipants {
		return nil, ErrNotEnoughParticipants
	}
	for i := range participants {
		if !participants[i].HasGoal() {
			return nil, ErrGoalsNotSet
		}
	}

	now := time.Now()
	ends := now.AddDate(0, 0, room.DurationDays)
	if err := s.rooms.SetRoomStatus(ctx, room.ID, domain.RoomInProgress, &now, &ends); err != nil {
		return nil, err
	}
	room.Status = domain.RoomInProgress
	room.StartedAt = &now
	room.EndsAt = &ends
	return room, nil
}

// Cancel terminates a waiting room. Host only.
func (s *BattleService) Cancel(ctx context.Context, userID int64, entryCode string) error {
	room, err := s.waitingRoom(ctx, entryCode)
	if err != nil {
		return err
	}
	if room.HostID != userID {
		return ErrNotHost
	}
	return s.rooms.SetRoomStatus(ctx, room.ID, domain.RoomCancelled, nil, nil)
}

// EndExpired transitions every in-progress room whose window has elapsed to
// ENDED, returning how many rooms were closed.
func (s *BattleService) EndExpired(ctx context.Context, now time.Time) (int, error) {
	rooms, err := s.rooms.ListExpiredRooms(ctx, now)
	if err != nil {
		return 0, err
	}
	ended := 0
	for i := range rooms {
		r := &rooms[i]
		if err := s.rooms.SetRoomStatus(ctx, r.ID, domain.RoomEnded, r.StartedAt, r.EndsAt); err != nil {
			return ended, err
		}
		ended++
	}
	return ended, nil
}

func (s *BattleService) waitingRoom(ctx context.Context, entryCode string) (*domain.BattleRoom, error) {
	room, err := s.rooms.RoomByEntryCode(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Status != domain.RoomWaiting {
		return nil, ErrRoomNotJoinable
	}
	return room, nil
}

func (s *BattleService) addParticipant(ctx context.Context, room *domain.BattleRoom, user *domain.User) error {
	existing, err := s.rooms.GetParticipant(ctx, room.ID, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyJoined
	}
	participants, err := s.rooms.ListParticipants(ctx, room.ID)
	if err != nil {
		return err
	}
	if len(participants) >= room.MaxParticipants {
		return ErrRoomFull
	}
	_, err = s.rooms.AddParticipant(ctx, domain.Participant{
		RoomID:   room.ID,
		UserID:   user.ID,
		Nickname: user.Nickname,
		JoinedAt: time.Now(),
	})
	return err
}

func newEntryCode() (string, error) {
	b := make([]byte, entryCodeLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = entryCodeAlphabet[int(b[i])%len(entryCodeAlphabet)]
	}
	return string(b), nil
}
