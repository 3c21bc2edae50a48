package app

import (
	"context"
	"errors"
	"time"

	"weighbattle/internal/domain"
)

// ErrNoWeightRecorded indicates that an operation needs at least one weight
// entry but the user has none.
var ErrNoWeightRecorded = errors.New("no weight recorded yet")

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// Record validates and stores a weight sample for a calendar day. An empty
// day means today; recording twice for the same day overwrites. Returns the
// stored entry with its derived change against the previous day on record.
func (s *WeightService) Record(ctx context.Context, userID int64, day string, weight float64) (*domain.WeightEntry, error) {
	if weight <= 0 {
		return nil, errors.New("weight must be > 0")
	}
	if weight > 500 {
		return nil, errors.New("weight is out of range")
	}

	now := time.Now()
	today := now.In(time.Local).Format("2006-01-02")
	if day == "" {
		day = today
	}
	if _, err := time.ParseInLocation("2006-01-02", day, time.Local); err != nil {
		return nil, errors.New("day must be formatted YYYY-MM-DD")
	}
	if day > today {
		return nil, errors.New("cannot record weight for a future day")
	}

	if _, err := s.repo.UpsertWeightEntry(ctx, userID, day, weight, now); err != nil {
		return nil, err
	}

	entry, err := s.repo.WeightForDay(ctx, userID, day)
	if err != nil || entry == nil {
		return entry, err
	}
	s.deriveChanges(ctx, userID, entry)
	return entry, nil
}

// History returns up to limit entries ordered by day descending, each with
// its derived change against the previous entry.
func (s *WeightService) History(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	// Fetch one extra so the oldest entry in the window still has a
	// predecessor to diff against.
	entries, err := s.repo.ListWeightEntries(ctx, userID, limit+1)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if i+1 < len(entries) {
			entries[i].Change = entries[i].Weight - entries[i+1].Weight
		}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Summary returns the user's current weight, cumulative change since the
// first entry, and the count of recorded days.
func (s *WeightService) Summary(ctx context.Context, userID int64) (*domain.WeightSummary, error) {
	latest, err := s.repo.LatestWeightEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return &domain.WeightSummary{}, nil
	}

	first, err := s.repo.FirstWeightEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountWeightDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	w := latest.Weight
	sum := &domain.WeightSummary{CurrentWeight: &w, DaysRecorded: count}
	if first != nil {
		sum.TotalChange = latest.Weight - first.Weight
	}
	return sum, nil
}

// CurrentWeight returns the user's latest recorded weight, or nil when
// nothing has been recorded.
func (s *WeightService) CurrentWeight(ctx context.Context, userID int64) (*float64, error) {
	latest, err := s.repo.LatestWeightEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	w := latest.Weight
	return &w, nil
}

func (s *WeightService) deriveChanges(ctx context.Context, userID int64, entry *domain.WeightEntry) {
	entries, err := s.repo.ListWeightEntries(ctx, userID, 0)
	if err != nil {
		return
	}
	for i := range entries {
		if entries[i].Day < entry.Day {
			entry.Change = entry.Weight - entries[i].Weight
			return
		}
	}
}
