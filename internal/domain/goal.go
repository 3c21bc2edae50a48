package domain

import (
	"context"
	"math"
	"time"
)

// GoalStatus is the derived state of a goal, recomputed on every read.
type GoalStatus string

// Goal statuses.
const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalFailed    GoalStatus = "FAILED"
)

// GoalTolerance is the band, in kg, within which a finished goal counts as
// completed.
const GoalTolerance = 0.5

// Goal is a target weight to reach by an end date. StartWeight is a snapshot
// taken at creation and is never recomputed.
type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	StartWeight  float64   `json:"startWeight"`
	TargetWeight float64   `json:"targetWeight"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GoalEvaluation is the derived view of a goal against a current weight.
type GoalEvaluation struct {
	ProgressPercent float64    `json:"progressPercent"`
	Status          GoalStatus `json:"status"`
}

// ProgressPercent maps current weight onto the start→target interval,
// clamped to [0, 100]. A target equal to the start weight is the degenerate
// maintain case and always reads 100.
func ProgressPercent(start, target, current float64) float64 {
	if target == start {
		return 100
	}
	pct := (current - start) / (target - start) * 100
	return math.Min(100, math.Max(0, pct))
}

// EvaluateGoal computes the derived progress and status of a goal. A nil
// current weight means no entry has been recorded yet: progress is zero and
// the goal stays active.
func EvaluateGoal(g Goal, current *float64, today time.Time) GoalEvaluation {
	if current == nil {
		return GoalEvaluation{ProgressPercent: 0, Status: GoalActive}
	}
	ev := GoalEvaluation{ProgressPercent: ProgressPercent(g.StartWeight, g.TargetWeight, *current)}
	if !today.After(g.EndDate) {
		ev.Status = GoalActive
	} else if math.Abs(*current-g.TargetWeight) <= GoalTolerance {
		ev.Status = GoalCompleted
	} else {
		ev.Status = GoalFailed
	}
	return ev
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	CreateGoal(ctx context.Context, g Goal) (int64, error)
	ListGoalsByUser(ctx context.Context, userID int64) ([]Goal, error)
}
