package app

import (
	"context"
	"log"
	"time"

	"weighbattle/internal/domain"
)

// Sweeper runs periodic maintenance: ending battles whose window elapsed and
// purging expired sessions and invites. Room expiry is a server
// responsibility; clients only ever read the resulting status.
type Sweeper struct {
	battles  *BattleService
	sessions domain.SessionRepository
	invites  domain.InviteRepository
	interval time.Duration

	ticker *time.Ticker
	stop   chan struct{}
}

// NewSweeper creates a Sweeper ticking at the given interval.
func NewSweeper(battles *BattleService, sessions domain.SessionRepository, invites domain.InviteRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		battles:  battles,
		sessions: sessions,
		invites:  invites,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop in a goroutine. One sweep runs immediately
// so rooms that expired while the server was down are closed on boot.
func (s *Sweeper) Start() {
	s.ticker = time.NewTicker(s.interval)

	go func() {
		s.sweep()
		for {
			select {
			case <-s.ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()

	log.Printf("sweeper started, interval %s", s.interval)
}

// Stop halts the sweep loop.
func (s *Sweeper) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stop)
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	ended, err := s.battles.EndExpired(ctx, now)
	if err != nil {
		log.Printf("sweep: end expired battles: %v", err)
	} else if ended > 0 {
		log.Printf("sweep: ended %d battle(s)", ended)
	}

	if err := s.sessions.DeleteExpired(ctx, now); err != nil {
		log.Printf("sweep: delete expired sessions: %v", err)
	}
	if err := s.invites.DeleteExpiredInvites(ctx, now); err != nil {
		log.Printf("sweep: delete expired invites: %v", err)
	}
}
