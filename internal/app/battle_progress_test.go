package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighbattle/internal/app"
	"weighbattle/internal/domain"
)

func TestDetail(t *testing.T) {
	db, svc := newBattleFixture(t)
	host := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, host, "Room", "", "secret", 4, 10)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := svc.Join(ctx, bob, room.EntryCode, "secret"); err != nil {
		t.Fatalf("join: %v", err)
	}
	recordWeight(t, db, host.ID, 70.0)
	recordWeight(t, db, bob.ID, 80.0)
	if _, err := svc.SetGoal(ctx, host.ID, room.EntryCode, domain.GoalTypeLoss, f(65)); err != nil {
		t.Fatalf("host goal: %v", err)
	}
	if _, err := svc.SetGoal(ctx, bob.ID, room.EntryCode, domain.GoalTypeLoss, f(76)); err != nil {
		t.Fatalf("bob goal: %v", err)
	}
	if _, err := svc.Start(ctx, host.ID, room.EntryCode); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Host moves halfway to target, bob stays put.
	recordWeight(t, db, host.ID, 67.5)

	detail, err := svc.Detail(ctx, host.ID, room.EntryCode)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.Participants) != 2 {
		t.Fatalf("participants = %d; want 2", len(detail.Participants))
	}

	var me, them *app.ParticipantProgress
	for i := range detail.Participants {
		if detail.Participants[i].IsSelf {
			me = &detail.Participants[i]
		} else {
			them = &detail.Participants[i]
		}
	}
	if me == nil || them == nil {
		t.Fatal("missing self or opponent in detail")
	}
	if !me.IsHost {
		t.Error("host flag not set on the creator")
	}
	if me.Standing != "" {
		t.Errorf("self carries a standing: %s", me.Standing)
	}
	if !almostEqual(me.ProgressPercent, 50) {
		t.Errorf("my progress = %v; want 50", me.ProgressPercent)
	}
	if !almostEqual(them.ProgressPercent, 0) {
		t.Errorf("opponent progress = %v; want 0", them.ProgressPercent)
	}
	if them.Standing != domain.StandingLeading {
		t.Errorf("standing vs opponent = %s; want %s", them.Standing, domain.StandingLeading)
	}
	if detail.ElapsedFraction <= 0 || detail.ElapsedFraction > 1 {
		t.Errorf("elapsed fraction = %v; want (0, 1]", detail.ElapsedFraction)
	}
}

func TestDetail_MembersOnly(t *testing.T) {
	db, svc := newBattleFixture(t)
	host := newUser(t, db, "alice")
	stranger := newUser(t, db, "mallory")
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, host, "Room", "", "secret", 4, 7)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := svc.Detail(ctx, stranger.ID, room.EntryCode); !errors.Is(err, app.ErrNotParticipant) {
		t.Errorf("got %v; want ErrNotParticipant", err)
	}
}

func TestMyRooms(t *testing.T) {
	db, svc := newBattleFixture(t)
	host := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	ctx := context.Background()

	first, err := svc.CreateRoom(ctx, host, "First", "", "secret", 4, 7)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Join(ctx, bob, first.EntryCode, "secret"); err != nil {
		t.Fatalf("join: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := svc.CreateRoom(ctx, host, "Second", "", "secret", 4, 7); err != nil {
		t.Fatalf("create second: %v", err)
	}

	rooms, err := svc.MyRooms(ctx, host.ID)
	if err != nil {
		t.Fatalf("my rooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("rooms = %d; want 2", len(rooms))
	}
	if rooms[0].Name != "Second" {
		t.Errorf("newest first: got %q", rooms[0].Name)
	}
	if rooms[1].CurrentParticipants != 2 {
		t.Errorf("headcount = %d; want 2", rooms[1].CurrentParticipants)
	}

	bobRooms, err := svc.MyRooms(ctx, bob.ID)
	if err != nil {
		t.Fatalf("my rooms: %v", err)
	}
	if len(bobRooms) != 1 {
		t.Errorf("bob rooms = %d; want 1", len(bobRooms))
	}
}
