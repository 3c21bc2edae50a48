package domain_test

import (
	"testing"
	"time"

	"weighbattle/internal/domain"
)

func gt(g domain.GoalType) *domain.GoalType { return &g }

func TestElapsedFraction(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		days int
		want float64
	}{
		{"at start", start, 10, 0},
		{"halfway", start.AddDate(0, 0, 5), 10, 0.5},
		{"at end", start.AddDate(0, 0, 10), 10, 1},
		{"past end clamps", start.AddDate(0, 0, 15), 10, 1},
		{"before start clamps", start.AddDate(0, 0, -1), 10, 0},
		{"zero duration", start, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ElapsedFraction(start, tc.now, tc.days)
			if !almostEqual(got, tc.want) {
				t.Errorf("ElapsedFraction = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestParticipantPercent(t *testing.T) {
	tests := []struct {
		name    string
		p       domain.Participant
		current *float64
		want    float64
	}{
		{
			"loss halfway",
			domain.Participant{GoalType: gt(domain.GoalTypeLoss), StartingWeight: f(70), TargetWeight: f(65)},
			f(67.5), 50,
		},
		{
			"gain complete",
			domain.Participant{GoalType: gt(domain.GoalTypeGain), StartingWeight: f(60), TargetWeight: f(64)},
			f(64.5), 100,
		},
		{
			"maintain reads full",
			domain.Participant{GoalType: gt(domain.GoalTypeMaintain), StartingWeight: f(70)},
			f(71), 100,
		},
		{
			"no goal reads zero",
			domain.Participant{},
			f(70), 0,
		},
		{
			"no weight reads zero",
			domain.Participant{GoalType: gt(domain.GoalTypeLoss), StartingWeight: f(70), TargetWeight: f(65)},
			nil, 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ParticipantPercent(tc.p, tc.current)
			if !almostEqual(got, tc.want) {
				t.Errorf("ParticipantPercent = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestCompareProgress(t *testing.T) {
	tests := []struct {
		name         string
		mine, theirs float64
		want         domain.Standing
	}{
		{"ahead", 60, 40, domain.StandingLeading},
		{"behind", 40, 60, domain.StandingTrailing},
		{"equal", 50, 50, domain.StandingTied},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.CompareProgress(tc.mine, tc.theirs); got != tc.want {
				t.Errorf("CompareProgress(%v, %v) = %s; want %s", tc.mine, tc.theirs, got, tc.want)
			}
		})
	}
}
