package app

import (
	"context"
	"time"

	"weighbattle/internal/domain"
)

// ParticipantProgress is a participant projected onto their personal goal.
// Progress comes from each participant's own recorded weights via the
// authoritative participant list; nothing is simulated.
type ParticipantProgress struct {
	domain.Participant
	CurrentWeight   *float64        `json:"currentWeight"`
	ProgressPercent float64         `json:"progressPercent"`
	Standing        domain.Standing `json:"standing,omitempty"`
	IsHost          bool            `json:"isHost"`
	IsSelf          bool            `json:"isSelf"`
}

// RoomDetail is the full view of a room for one of its participants.
type RoomDetail struct {
	Room            domain.BattleRoom     `json:"room"`
	Participants    []ParticipantProgress `json:"participants"`
	ElapsedFraction float64               `json:"elapsedFraction"`
}

// RoomListItem is a room summary for membership listings.
type RoomListItem struct {
	domain.BattleRoom
	CurrentParticipants int `json:"currentParticipants"`
}

// Detail returns the room, its participants with computed progress, and the
// acting user's standing against each opponent. Progress, standings and the
// elapsed fraction are recomputed on every read. Only participants may view
// a room's detail.
func (s *BattleService) Detail(ctx context.Context, userID int64, entryCode string) (*RoomDetail, error) {
	room, err := s.rooms.RoomByEntryCode(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	participants, err := s.rooms.ListParticipants(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	detail := &RoomDetail{Room: *room}
	if room.StartedAt != nil {
		detail.ElapsedFraction = domain.ElapsedFraction(*room.StartedAt, time.Now(), room.DurationDays)
	}

	var mine *ParticipantProgress
	for i := range participants {
		p := participants[i]
		current, err := s.weights.LatestWeightEntry(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		var cw *float64
		if current != nil {
			cw = &current.Weight
		}
		pp := ParticipantProgress{
			Participant:     p,
			CurrentWeight:   cw,
			ProgressPercent: domain.ParticipantPercent(p, cw),
			IsHost:          p.UserID == room.HostID,
			IsSelf:          p.UserID == userID,
		}
		detail.Participants = append(detail.Participants, pp)
		if pp.IsSelf {
			mine = &detail.Participants[len(detail.Participants)-1]
		}
	}
	if mine == nil {
		return nil, ErrNotParticipant
	}

	for i := range detail.Participants {
		if detail.Participants[i].IsSelf {
			continue
		}
		detail.Participants[i].Standing = domain.CompareProgress(mine.ProgressPercent, detail.Participants[i].ProgressPercent)
	}
	return detail, nil
}

// MyRooms lists the rooms the user belongs to with their current headcount.
func (s *BattleService) MyRooms(ctx context.Context, userID int64) ([]RoomListItem, error) {
	rooms, err := s.rooms.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]RoomListItem, 0, len(rooms))
	for _, r := range rooms {
		participants, err := s.rooms.ListParticipants(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, RoomListItem{BattleRoom: r, CurrentParticipants: len(participants)})
	}
	return items, nil
}
