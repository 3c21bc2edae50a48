package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighbattle/internal/domain"
)

const roomColumns = "id, entry_code, name, description, password_hash, host_id, status, max_participants, duration_days, started_at, ends_at, created_at"

// CreateRoom inserts a new battle room.
func (d *DB) CreateRoom(ctx context.Context, room domain.BattleRoom) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO battle_rooms(entry_code, name, description, password_hash, host_id, status, max_participants, duration_days, created_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;",
		room.EntryCode, room.Name, room.Description, room.PasswordHash, room.HostID, room.Status, room.MaxParticipants, room.DurationDays, room.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// RoomByID retrieves a room by ID.
func (d *DB) RoomByID(ctx context.Context, id int64) (*domain.BattleRoom, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM battle_rooms WHERE id = $1;", id)
	return scanRoomRow(row)
}

// RoomByEntryCode retrieves a room by its public entry code.
func (d *DB) RoomByEntryCode(ctx context.Context, entryCode string) (*domain.BattleRoom, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM battle_rooms WHERE entry_code = $1;", entryCode)
	return scanRoomRow(row)
}

// ListRoomsByUser returns the rooms the user participates in, newest first.
func (d *DB) ListRoomsByUser(ctx context.Context, userID int64) ([]domain.BattleRoom, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT r.id, r.entry_code, r.name, r.description, r.password_hash, r.host_id, r.status, r.max_participants, r.duration_days, r.started_at, r.ends_at, r.created_at FROM battle_rooms r JOIN battle_participants p ON p.room_id = r.id WHERE p.user_id = $1 ORDER BY r.created_at DESC;",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

// ListExpiredRooms returns in-progress rooms whose window elapsed before now.
func (d *DB) ListExpiredRooms(ctx context.Context, now time.Time) ([]domain.BattleRoom, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM battle_rooms WHERE status = $1 AND ends_at <= $2;",
		domain.RoomInProgress, now.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

// SetRoomStatus updates a room's lifecycle state and window.
func (d *DB) SetRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus, startedAt, endsAt *time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE battle_rooms SET status = $2, started_at = $3, ends_at = $4 WHERE id = $1;",
		roomID, status, nullTime(startedAt), nullTime(endsAt),
	)
	return err
}

// SetRoomHost reassigns the room host.
func (d *DB) SetRoomHost(ctx context.Context, roomID, hostID int64) error {
	_, err := d.sql.ExecContext(ctx, "UPDATE battle_rooms SET host_id = $2 WHERE id = $1;", roomID, hostID)
	return err
}

// AddParticipant inserts a room membership.
func (d *DB) AddParticipant(ctx context.Context, p domain.Participant) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO battle_participants(room_id, user_id, nickname, joined_at) VALUES($1, $2, $3, $4) RETURNING id;",
		p.RoomID, p.UserID, p.Nickname, p.JoinedAt.UTC(),
	).Scan(&id)
	return id, err
}

// RemoveParticipant deletes a room membership.
func (d *DB) RemoveParticipant(ctx context.Context, roomID, userID int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM battle_participants WHERE room_id = $1 AND user_id = $2;", roomID, userID)
	return err
}

// GetParticipant retrieves one membership, or nil.
func (d *DB) GetParticipant(ctx context.Context, roomID, userID int64) (*domain.Participant, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, room_id, user_id, nickname, goal_type, target_weight, starting_weight, ready, joined_at FROM battle_participants WHERE room_id = $1 AND user_id = $2;",
		roomID, userID,
	)
	p, err := scanParticipant(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListParticipants returns the room's members ordered by join time.
func (d *DB) ListParticipants(ctx context.Context, roomID int64) ([]domain.Participant, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, room_id, user_id, nickname, goal_type, target_weight, starting_weight, ready, joined_at FROM battle_participants WHERE room_id = $1 ORDER BY joined_at ASC;",
		roomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// SetParticipantGoal records a member's personal goal and marks them ready.
func (d *DB) SetParticipantGoal(ctx context.Context, roomID, userID int64, goalType domain.GoalType, targetWeight *float64, startingWeight float64) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE battle_participants SET goal_type = $3, target_weight = $4, starting_weight = $5, ready = TRUE WHERE room_id = $1 AND user_id = $2;",
		roomID, userID, goalType, nullFloat(targetWeight), startingWeight,
	)
	return err
}

func scanRoomRow(row *sql.Row) (*domain.BattleRoom, error) {
	r, err := scanRoom(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func collectRooms(rows *sql.Rows) ([]domain.BattleRoom, error) {
	var out []domain.BattleRoom
	for rows.Next() {
		r, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func scanRoom(scan func(...any) error) (*domain.BattleRoom, error) {
	var r domain.BattleRoom
	var startedAt, endsAt sql.NullTime
	err := scan(&r.ID, &r.EntryCode, &r.Name, &r.Description, &r.PasswordHash, &r.HostID, &r.Status, &r.MaxParticipants, &r.DurationDays, &startedAt, &endsAt, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		r.StartedAt = &startedAt.Time
	}
	if endsAt.Valid {
		r.EndsAt = &endsAt.Time
	}
	return &r, nil
}

func scanParticipant(scan func(...any) error) (*domain.Participant, error) {
	var p domain.Participant
	var goalType sql.NullString
	var target, starting sql.NullFloat64
	err := scan(&p.ID, &p.RoomID, &p.UserID, &p.Nickname, &goalType, &target, &starting, &p.Ready, &p.JoinedAt)
	if err != nil {
		return nil, err
	}
	if goalType.Valid {
		gt := domain.GoalType(goalType.String)
		p.GoalType = &gt
	}
	if target.Valid {
		p.TargetWeight = &target.Float64
	}
	if starting.Valid {
		p.StartingWeight = &starting.Float64
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
