package app_test

import (
	"context"
	"testing"
	"time"

	"weighbattle/internal/adapter/memory"
	"weighbattle/internal/app"
)

func TestWeekly(t *testing.T) {
	db := memory.New()
	svc := app.NewStatsService(db)
	ctx := context.Background()

	now := time.Now()
	monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	seed := func(offset int, weight float64) {
		day := monday.AddDate(0, 0, offset).Format("2006-01-02")
		if _, err := db.UpsertWeightEntry(ctx, 1, day, weight, time.Now()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Two entries this week, one entry a week earlier.
	seed(0, 69.0)
	seed(1, 68.0)
	seed(-7, 70.0)

	points, err := svc.Weekly(ctx, 1, 4)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("points = %d; want 4", len(points))
	}

	last := points[len(points)-1]
	if last.Entries != 2 {
		t.Errorf("this week entries = %d; want 2", last.Entries)
	}
	if last.AvgWeight == nil || !almostEqual(*last.AvgWeight, 68.5) {
		t.Errorf("this week avg = %v; want 68.5", last.AvgWeight)
	}
	if !almostEqual(last.Change, -1.0) {
		t.Errorf("this week change = %v; want -1.0", last.Change)
	}

	prev := points[len(points)-2]
	if prev.Entries != 1 {
		t.Errorf("previous week entries = %d; want 1", prev.Entries)
	}
	if prev.AvgWeight == nil || !almostEqual(*prev.AvgWeight, 70.0) {
		t.Errorf("previous week avg = %v; want 70.0", prev.AvgWeight)
	}

	for _, p := range points[:2] {
		if p.AvgWeight != nil || p.Entries != 0 {
			t.Errorf("empty week %s carries data: %+v", p.WeekStart, p)
		}
	}
}

func TestWeekly_Validation(t *testing.T) {
	svc := app.NewStatsService(memory.New())
	if _, err := svc.Weekly(context.Background(), 1, 0); err == nil {
		t.Fatal("expected error for zero weeks")
	}
}

func TestWeekly_CapsAtOneYear(t *testing.T) {
	svc := app.NewStatsService(memory.New())
	points, err := svc.Weekly(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(points) != 52 {
		t.Errorf("points = %d; want cap of 52", len(points))
	}
}
