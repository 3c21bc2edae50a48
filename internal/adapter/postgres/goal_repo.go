package postgres

import (
	"context"

	"weighbattle/internal/domain"
)

// CreateGoal inserts a new goal.
func (d *DB) CreateGoal(ctx context.Context, g domain.Goal) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO goals(user_id, title, start_weight, target_weight, start_date, end_date, created_at) VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id;",
		g.UserID, g.Title, g.StartWeight, g.TargetWeight, g.StartDate.UTC(), g.EndDate.UTC(), g.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// ListGoalsByUser returns the user's goals, newest first.
func (d *DB) ListGoalsByUser(ctx context.Context, userID int64) ([]domain.Goal, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, title, start_weight, target_weight, start_date, end_date, created_at FROM goals WHERE user_id = $1 ORDER BY created_at DESC;",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.StartWeight, &g.TargetWeight, &g.StartDate, &g.EndDate, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
