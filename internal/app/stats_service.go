package app

import (
	"context"
	"errors"
	"time"

	"weighbattle/internal/domain"
)

// StatsService encapsulates aggregate chart data retrieval.
type StatsService struct {
	weights domain.WeightRepository
}

// NewStatsService creates a StatsService backed by the given repository.
func NewStatsService(weights domain.WeightRepository) *StatsService {
	return &StatsService{weights: weights}
}

// WeekPoint is one Monday-started week of aggregated weight data.
type WeekPoint struct {
	WeekStart string   `json:"weekStart"`
	AvgWeight *float64 `json:"avgWeight"`
	Change    float64  `json:"change"`
	Entries   int      `json:"entries"`
}

// Weekly buckets the user's entries into the last weeks Monday-started
// weeks, newest last. Weeks without entries carry a nil average.
func (s *StatsService) Weekly(ctx context.Context, userID int64, weeks int) ([]WeekPoint, error) {
	if weeks <= 0 {
		return nil, errors.New("weeks must be > 0")
	}
	if weeks > 52 {
		weeks = 52
	}

	entries, err := s.weights.ListWeightEntries(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	// Entries arrive day-descending; index them chronologically per week.
	byDay := make(map[string][]domain.WeightEntry)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		wk := weekStartOf(e.Day)
		byDay[wk] = append(byDay[wk], e)
	}

	thisWeek := weekStartOf(time.Now().In(time.Local).Format("2006-01-02"))
	start, _ := time.ParseInLocation("2006-01-02", thisWeek, time.Local)

	points := make([]WeekPoint, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		ws := start.AddDate(0, 0, -7*i).Format("2006-01-02")
		bucket := byDay[ws]
		point := WeekPoint{WeekStart: ws, Entries: len(bucket)}
		if len(bucket) > 0 {
			var sum float64
			for _, e := range bucket {
				sum += e.Weight
			}
			avg := sum / float64(len(bucket))
			point.AvgWeight = &avg
			point.Change = bucket[len(bucket)-1].Weight - bucket[0].Weight
		}
		points = append(points, point)
	}
	return points, nil
}

// weekStartOf returns the Monday of the week containing day. Malformed days
// map to themselves.
func weekStartOf(day string) string {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return day
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}
