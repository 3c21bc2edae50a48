package domain

import (
	"math"
	"time"
)

// Standing compares the acting user's progress against one opponent.
type Standing string

// Standings.
const (
	StandingLeading  Standing = "LEADING"
	StandingTrailing Standing = "TRAILING"
	StandingTied     Standing = "TIED"
)

// ElapsedFraction is days since start divided by total planned duration,
// clamped to [0, 1].
func ElapsedFraction(startedAt, now time.Time, durationDays int) float64 {
	if durationDays <= 0 {
		return 1
	}
	elapsed := now.Sub(startedAt).Hours() / 24
	frac := elapsed / float64(durationDays)
	return math.Min(1, math.Max(0, frac))
}

// ParticipantPercent maps a participant's current weight onto their personal
// goal, yielding a 0–100 completion figure. Participants without a goal or a
// recorded weight read zero. MAINTAIN is the degenerate case and reads 100.
func ParticipantPercent(p Participant, current *float64) float64 {
	if !p.HasGoal() || current == nil {
		return 0
	}
	target := *p.StartingWeight
	if *p.GoalType != GoalTypeMaintain {
		target = *p.TargetWeight
	}
	return ProgressPercent(*p.StartingWeight, target, *current)
}

// CompareProgress returns the acting user's standing against one opponent.
// The greater percent leads; equal values tie.
func CompareProgress(mine, theirs float64) Standing {
	switch {
	case mine > theirs:
		return StandingLeading
	case mine < theirs:
		return StandingTrailing
	default:
		return StandingTied
	}
}
