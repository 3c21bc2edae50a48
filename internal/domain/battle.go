package domain

import (
	"context"
	"time"
)

// RoomStatus is the lifecycle state of a battle room. Transitions are
// monotonic: WAITING → IN_PROGRESS → ENDED, with CANCELLED reachable only
// from WAITING.
type RoomStatus string

// Room statuses.
const (
	RoomWaiting    RoomStatus = "WAITING"
	RoomInProgress RoomStatus = "IN_PROGRESS"
	RoomEnded      RoomStatus = "ENDED"
	RoomCancelled  RoomStatus = "CANCELLED"
)

// GoalType classifies a participant's personal goal within a room.
type GoalType string

// Participant goal types.
const (
	GoalTypeLoss     GoalType = "WEIGHT_LOSS"
	GoalTypeGain     GoalType = "WEIGHT_GAIN"
	GoalTypeMaintain GoalType = "MAINTAIN"
)

// Room capacity bounds.
const (
	MinRoomParticipants = 2
	MaxRoomParticipants = 4
)

// BattleRoom is a timed, password-gated multi-user weight-goal competition.
// EntryCode is the public short identifier for joining; the password exists
// only as a bcrypt hash and is never echoed back.
type BattleRoom struct {
	ID              int64      `json:"id"`
	EntryCode       string     `json:"entryCode"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	PasswordHash    string     `json:"-"`
	HostID          int64      `json:"hostId"`
	Status          RoomStatus `json:"status"`
	MaxParticipants int        `json:"maxParticipants"`
	DurationDays    int        `json:"durationDays"`
	StartedAt       *time.Time `json:"startedAt"`
	EndsAt          *time.Time `json:"endsAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Participant is a user's membership and personal goal within one room.
// StartingWeight is snapshotted from the weight store when the goal is set.
type Participant struct {
	ID             int64     `json:"id"`
	RoomID         int64     `json:"roomId"`
	UserID         int64     `json:"userId"`
	Nickname       string    `json:"nickname"`
	GoalType       *GoalType `json:"goalType"`
	TargetWeight   *float64  `json:"targetWeight"`
	StartingWeight *float64  `json:"startingWeight"`
	Ready          bool      `json:"ready"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// HasGoal reports whether the participant has fully set their personal goal.
// MAINTAIN needs no target weight; the other types do.
func (p *Participant) HasGoal() bool {
	if p.GoalType == nil || p.StartingWeight == nil {
		return false
	}
	if *p.GoalType == GoalTypeMaintain {
		return true
	}
	return p.TargetWeight != nil
}

// BattleRepository is the port for battle room persistence.
type BattleRepository interface {
	CreateRoom(ctx context.Context, room BattleRoom) (int64, error)
	RoomByID(ctx context.Context, id int64) (*BattleRoom, error)
	RoomByEntryCode(ctx context.Context, entryCode string) (*BattleRoom, error)
	ListRoomsByUser(ctx context.Context, userID int64) ([]BattleRoom, error)
	ListExpiredRooms(ctx context.Context, now time.Time) ([]BattleRoom, error)
	SetRoomStatus(ctx context.Context, roomID int64, status RoomStatus, startedAt, endsAt *time.Time) error
	SetRoomHost(ctx context.Context, roomID, hostID int64) error

	AddParticipant(ctx context.Context, p Participant) (int64, error)
	RemoveParticipant(ctx context.Context, roomID, userID int64) error
	GetParticipant(ctx context.Context, roomID, userID int64) (*Participant, error)
	ListParticipants(ctx context.Context, roomID int64) ([]Participant, error)
	SetParticipantGoal(ctx context.Context, roomID, userID int64, goalType GoalType, targetWeight *float64, startingWeight float64) error
}
