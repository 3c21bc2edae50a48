package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighbattle/internal/domain"
)

// CreateInvite inserts an invite token.
func (d *DB) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO invites(token, room_id, entry_code, created_by, expires_at, created_at) VALUES($1, $2, $3, $4, $5, $6);",
		inv.Token, inv.RoomID, inv.EntryCode, inv.CreatedBy, inv.ExpiresAt.UTC(), inv.CreatedAt.UTC(),
	)
	return err
}

// InviteByToken retrieves an invite, or nil.
func (d *DB) InviteByToken(ctx context.Context, token string) (*domain.Invite, error) {
	var inv domain.Invite
	err := d.sql.QueryRowContext(ctx,
		"SELECT token, room_id, entry_code, created_by, expires_at, created_at FROM invites WHERE token = $1;",
		token,
	).Scan(&inv.Token, &inv.RoomID, &inv.EntryCode, &inv.CreatedBy, &inv.ExpiresAt, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvite removes an invite by token.
func (d *DB) DeleteInvite(ctx context.Context, token string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM invites WHERE token = $1;", token)
	return err
}

// DeleteExpiredInvites removes invites that expired before now.
func (d *DB) DeleteExpiredInvites(ctx context.Context, now time.Time) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM invites WHERE expires_at < $1;", now.UTC())
	return err
}
