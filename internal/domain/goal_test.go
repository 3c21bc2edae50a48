package domain_test

import (
	"math"
	"testing"
	"time"

	"weighbattle/internal/domain"
)

func f(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name                   string
		start, target, current float64
		want                   float64
	}{
		{"halfway down", 70.0, 65.0, 67.5, 50},
		{"at start", 70.0, 65.0, 70.0, 0},
		{"at target", 70.0, 65.0, 65.0, 100},
		{"past target clamps", 70.0, 65.0, 60.0, 100},
		{"moved away clamps", 70.0, 65.0, 72.0, 0},
		{"gain halfway", 60.0, 64.0, 62.0, 50},
		{"maintain degenerate", 70.0, 70.0, 75.0, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ProgressPercent(tc.start, tc.target, tc.current)
			if !almostEqual(got, tc.want) {
				t.Errorf("ProgressPercent(%v, %v, %v) = %v; want %v", tc.start, tc.target, tc.current, got, tc.want)
			}
		})
	}
}

func TestProgressPercent_Monotone(t *testing.T) {
	prev := -1.0
	for w := 70.0; w >= 65.0; w -= 0.5 {
		got := domain.ProgressPercent(70.0, 65.0, w)
		if got < prev {
			t.Fatalf("progress decreased at weight %v: %v < %v", w, got, prev)
		}
		prev = got
	}
}

func TestEvaluateGoal(t *testing.T) {
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	goal := domain.Goal{StartWeight: 70, TargetWeight: 65, EndDate: end}

	tests := []struct {
		name       string
		current    *float64
		today      time.Time
		wantStatus domain.GoalStatus
		wantPct    float64
	}{
		{"active before end", f(67.5), end.AddDate(0, 0, -5), domain.GoalActive, 50},
		{"active on end date", f(67.5), end, domain.GoalActive, 50},
		{"completed exactly at target", f(65.0), end.AddDate(0, 0, 1), domain.GoalCompleted, 100},
		{"completed within tolerance", f(65.5), end.AddDate(0, 0, 1), domain.GoalCompleted, 90},
		{"failed just outside tolerance", f(65.6), end.AddDate(0, 0, 1), domain.GoalFailed, 88},
		{"failed far off", f(70.0), end.AddDate(0, 0, 1), domain.GoalFailed, 0},
		{"no weight stays active", nil, end.AddDate(0, 0, 10), domain.GoalActive, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := domain.EvaluateGoal(goal, tc.current, tc.today)
			if ev.Status != tc.wantStatus {
				t.Errorf("status = %s; want %s", ev.Status, tc.wantStatus)
			}
			if !almostEqual(ev.ProgressPercent, tc.wantPct) {
				t.Errorf("progress = %v; want %v", ev.ProgressPercent, tc.wantPct)
			}
		})
	}
}
