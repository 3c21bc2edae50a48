package app

import (
	"context"
	"testing"
	"time"

	"weighbattle/internal/adapter/memory"
	"weighbattle/internal/domain"
)

func TestSweep(t *testing.T) {
	db := memory.New()
	battles := NewBattleService(db, db)
	sessions := db.NewSessionRepo()
	ctx := context.Background()

	host, err := db.Create(ctx, "alice", "alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	room, err := battles.CreateRoom(ctx, host, "Room", "", "secret", 4, 7)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	started := time.Now().Add(-8 * 24 * time.Hour)
	ends := started.AddDate(0, 0, 7)
	if err := db.SetRoomStatus(ctx, room.ID, domain.RoomInProgress, &started, &ends); err != nil {
		t.Fatalf("set status: %v", err)
	}

	if err := sessions.Create(ctx, host.ID, "stale", "ua", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if err := db.CreateInvite(ctx, domain.Invite{
		Token:     "stale-invite",
		RoomID:    room.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed invite: %v", err)
	}

	s := NewSweeper(battles, sessions, db, time.Minute)
	s.sweep()

	after, err := db.RoomByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("room by id: %v", err)
	}
	if after.Status != domain.RoomEnded {
		t.Errorf("room status = %s; want %s", after.Status, domain.RoomEnded)
	}

	if sess, _ := sessions.GetByToken(ctx, "stale"); sess != nil {
		t.Error("expired session survived the sweep")
	}
	if inv, _ := db.InviteByToken(ctx, "stale-invite"); inv != nil {
		t.Error("expired invite survived the sweep")
	}
}

func TestSweeperStartStop(t *testing.T) {
	db := memory.New()
	s := NewSweeper(NewBattleService(db, db), db.NewSessionRepo(), db, time.Hour)
	s.Start()
	s.Stop()
}
