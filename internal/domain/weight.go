package domain

import (
	"context"
	"time"
)

// WeightEntry represents a user's weight sample for one local calendar day.
// At most one entry exists per user per day; recording again for the same
// day overwrites the stored value. Change is the delta against the
// chronologically previous entry and is derived on read, never stored.
type WeightEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Day       string    `json:"day"`
	Weight    float64   `json:"weight"`
	Change    float64   `json:"change"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeightSummary aggregates a user's recorded weights.
type WeightSummary struct {
	CurrentWeight *float64 `json:"currentWeight"`
	TotalChange   float64  `json:"totalChange"`
	DaysRecorded  int      `json:"daysRecorded"`
}

// WeightRepository is the port for weight persistence. Listings are ordered
// by day descending; a limit <= 0 means no limit.
type WeightRepository interface {
	UpsertWeightEntry(ctx context.Context, userID int64, day string, weight float64, recordedAt time.Time) (int64, error)
	WeightForDay(ctx context.Context, userID int64, day string) (*WeightEntry, error)
	ListWeightEntries(ctx context.Context, userID int64, limit int) ([]WeightEntry, error)
	LatestWeightEntry(ctx context.Context, userID int64) (*WeightEntry, error)
	FirstWeightEntry(ctx context.Context, userID int64) (*WeightEntry, error)
	CountWeightDays(ctx context.Context, userID int64) (int, error)
}
