package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighbattle/internal/domain"
)

// UpsertWeightEntry inserts a weight entry for a day, overwriting the value
// if the user already recorded that day.
func (d *DB) UpsertWeightEntry(ctx context.Context, userID int64, day string, weight float64, recordedAt time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_entries(user_id, day, weight, created_at) VALUES($1, $2, $3, $4) ON CONFLICT (user_id, day) DO UPDATE SET weight = EXCLUDED.weight, created_at = EXCLUDED.created_at RETURNING id;",
		userID, day, weight, recordedAt.UTC(),
	).Scan(&id)
	return id, err
}

// WeightForDay returns the entry for one calendar day, or nil.
func (d *DB) WeightForDay(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, day, weight, created_at FROM weight_entries WHERE user_id = $1 AND day = $2;",
		userID, day,
	)
	return scanWeightEntry(row)
}

// ListWeightEntries returns entries ordered by day descending. A limit <= 0
// returns everything.
func (d *DB) ListWeightEntries(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	q := "SELECT id, user_id, day, weight, created_at FROM weight_entries WHERE user_id = $1 ORDER BY day DESC"
	args := []any{userID}
	if limit > 0 {
		q += " LIMIT $2"
		args = append(args, limit)
	}
	rows, err := d.sql.QueryContext(ctx, q+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Day, &e.Weight, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestWeightEntry returns the entry for the most recent recorded day.
func (d *DB) LatestWeightEntry(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, day, weight, created_at FROM weight_entries WHERE user_id = $1 ORDER BY day DESC LIMIT 1;",
		userID,
	)
	return scanWeightEntry(row)
}

// FirstWeightEntry returns the entry for the earliest recorded day.
func (d *DB) FirstWeightEntry(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, day, weight, created_at FROM weight_entries WHERE user_id = $1 ORDER BY day ASC LIMIT 1;",
		userID,
	)
	return scanWeightEntry(row)
}

// CountWeightDays returns the number of days the user has recorded.
func (d *DB) CountWeightDays(ctx context.Context, userID int64) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM weight_entries WHERE user_id = $1;", userID).Scan(&count)
	return count, err
}

func scanWeightEntry(row *sql.Row) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Day, &e.Weight, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
