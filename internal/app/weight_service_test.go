package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighbattle/internal/adapter/memory"
	"weighbattle/internal/app"
	"weighbattle/internal/domain"
)

type mockWeightRepo struct {
	upsertFn func(ctx context.Context, userID int64, day string, weight float64, recordedAt time.Time) (int64, error)
	forDayFn func(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error)
	latestFn func(ctx context.Context, userID int64) (*domain.WeightEntry, error)
	firstFn  func(ctx context.Context, userID int64) (*domain.WeightEntry, error)
	countFn  func(ctx context.Context, userID int64) (int, error)
}

func (m *mockWeightRepo) UpsertWeightEntry(ctx context.Context, userID int64, day string, weight float64, recordedAt time.Time) (int64, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, day, weight, recordedAt)
	}
	return 1, nil
}

func (m *mockWeightRepo) WeightForDay(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error) {
	if m.forDayFn != nil {
		return m.forDayFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListWeightEntries(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) LatestWeightEntry(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) FirstWeightEntry(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	if m.firstFn != nil {
		return m.firstFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) CountWeightDays(ctx context.Context, userID int64) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return 0, nil
}

func TestRecordWeight_Validation(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{})

	tests := []struct {
		name   string
		day    string
		weight float64
	}{
		{"zero weight", "", 0},
		{"negative weight", "", -5},
		{"absurd weight", "", 900},
		{"bad day format", "08/15/2026", 80},
		{"future day", time.Now().AddDate(0, 0, 2).Format("2006-01-02"), 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), 1, tc.day, tc.weight)
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRecordWeight_SameDayOverwrites(t *testing.T) {
	db := memory.New()
	svc := app.NewWeightService(db)
	ctx := context.Background()

	d1 := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	d2 := time.Now().Format("2006-01-02")

	for _, rec := range []struct {
		day    string
		weight float64
	}{
		{d1, 70.0},
		{d2, 69.0},
		{d2, 68.5},
	} {
		if _, err := svc.Record(ctx, 1, rec.day, rec.weight); err != nil {
			t.Fatalf("record %v: %v", rec, err)
		}
	}

	items, err := svc.History(ctx, 1, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries after same-day overwrite, got %d", len(items))
	}
	if items[0].Day != d2 || items[0].Weight != 68.5 {
		t.Errorf("latest entry = %s %v; want %s 68.5", items[0].Day, items[0].Weight, d2)
	}
	if items[0].Change != 68.5-70.0 {
		t.Errorf("derived change = %v; want %v", items[0].Change, 68.5-70.0)
	}
}

func TestRecordWeight_RepoError(t *testing.T) {
	repo := &mockWeightRepo{
		upsertFn: func(context.Context, int64, string, float64, time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo)
	if _, err := svc.Record(context.Background(), 1, "", 80); err == nil {
		t.Fatal("expected error from repo")
	}
}

func TestWeightSummary(t *testing.T) {
	repo := &mockWeightRepo{
		latestFn: func(context.Context, int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{Day: "2026-08-20", Weight: 67.0}, nil
		},
		firstFn: func(context.Context, int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{Day: "2026-08-01", Weight: 70.0}, nil
		},
		countFn: func(context.Context, int64) (int, error) { return 12, nil },
	}
	svc := app.NewWeightService(repo)

	sum, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.CurrentWeight == nil || *sum.CurrentWeight != 67.0 {
		t.Errorf("current = %v; want 67.0", sum.CurrentWeight)
	}
	if sum.TotalChange != -3.0 {
		t.Errorf("total change = %v; want -3.0", sum.TotalChange)
	}
	if sum.DaysRecorded != 12 {
		t.Errorf("days = %d; want 12", sum.DaysRecorded)
	}
}

func TestWeightSummary_Empty(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{})
	sum, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.CurrentWeight != nil || sum.DaysRecorded != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
}

func TestWeightHistory_DerivedChanges(t *testing.T) {
	entries := []domain.WeightEntry{
		{Day: "2026-08-03", Weight: 68.0},
		{Day: "2026-08-02", Weight: 69.0},
		{Day: "2026-08-01", Weight: 70.5},
	}
	repo := &mockWeightRepo{
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.WeightEntry, error) {
			return entries, nil
		},
	}
	svc := app.NewWeightService(repo)

	items, err := svc.History(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Change != -1.0 {
		t.Errorf("items[0].Change = %v; want -1.0", items[0].Change)
	}
	if items[1].Change != -1.5 {
		t.Errorf("items[1].Change = %v; want -1.5", items[1].Change)
	}
	if items[2].Change != 0 {
		t.Errorf("oldest entry change = %v; want 0", items[2].Change)
	}
}
