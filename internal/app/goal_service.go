package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"weighbattle/internal/domain"
)

// GoalService encapsulates personal goal use cases.
type GoalService struct {
	goals   domain.GoalRepository
	weights domain.WeightRepository
}

// NewGoalService creates a GoalService backed by the given repositories.
func NewGoalService(goals domain.GoalRepository, weights domain.WeightRepository) *GoalService {
	return &GoalService{goals: goals, weights: weights}
}

// GoalView is a goal together with its derived evaluation.
type GoalView struct {
	domain.Goal
	domain.GoalEvaluation
}

// Create stores a new goal. The start weight is snapshotted once here: from
// the caller when provided, otherwise from the latest recorded entry.
// Duration is a preset in hours, matching the client's duration pickers.
func (s *GoalService) Create(ctx context.Context, userID int64, title string, targetWeight float64, durationHours int, startWeight *float64) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if targetWeight <= 0 {
		return nil, errors.New("target weight must be > 0")
	}
	if durationHours <= 0 {
		return nil, errors.New("duration must be > 0 hours")
	}

	start := startWeight
	if start == nil {
		latest, err := s.weights.LatestWeightEntry(ctx, userID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, ErrNoWeightRecorded
		}
		start = &latest.Weight
	}

	now := time.Now()
	g := domain.Goal{
		UserID:       userID,
		Title:        title,
		StartWeight:  *start,
		TargetWeight: targetWeight,
		StartDate:    now,
		EndDate:      now.Add(time.Duration(durationHours) * time.Hour),
		CreatedAt:    now,
	}
	id, err := s.goals.CreateGoal(ctx, g)
	if err != nil {
		return nil, err
	}
	g.ID = id
	return &g, nil
}

// List returns the user's goals with progress and status computed against
// their latest recorded weight. Both are projections over stored facts and
// are never persisted.
func (s *GoalService) List(ctx context.Context, userID int64) ([]GoalView, error) {
	goals, err := s.goals.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var current *float64
	latest, err := s.weights.LatestWeightEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		current = &latest.Weight
	}

	now := time.Now()
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, GoalView{
			Goal:           g,
			GoalEvaluation: domain.EvaluateGoal(g, current, now),
		})
	}
	return views, nil
}
