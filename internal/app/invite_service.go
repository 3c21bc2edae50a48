package app

import (
	"context"
	"errors"
	"time"

	"weighbattle/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrInviteNotFound indicates an unknown invite token.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInviteExpired indicates the invite token has lapsed.
	ErrInviteExpired = errors.New("invite expired")
)

const inviteTTL = 48 * time.Hour

// InviteService issues and resolves battle room invites. A share link can be
// posted to a group, so tokens stay valid for every recipient until expiry
// rather than being one-shot.
type InviteService struct {
	invites domain.InviteRepository
	rooms   domain.BattleRepository
	baseURL string
}

// NewInviteService creates an InviteService issuing links under baseURL.
func NewInviteService(invites domain.InviteRepository, rooms domain.BattleRepository, baseURL string) *InviteService {
	return &InviteService{invites: invites, rooms: rooms, baseURL: baseURL}
}

// InviteShare is everything handed to the external share integration.
type InviteShare struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Create issues an invite for a waiting room. Only participants may invite.
// The link embeds the entry code and the token, never the room password.
func (s *InviteService) Create(ctx context.Context, user *domain.User, entryCode string) (*InviteShare, error) {
	room, err := s.rooms.RoomByEntryCode(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Status != domain.RoomWaiting {
		return nil, ErrRoomNotJoinable
	}
	p, err := s.rooms.GetParticipant(ctx, room.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotParticipant
	}

	now := time.Now()
	inv := domain.Invite{
		Token:     uuid.NewString(),
		RoomID:    room.ID,
		EntryCode: room.EntryCode,
		CreatedBy: user.ID,
		ExpiresAt: now.Add(inviteTTL),
		CreatedAt: now,
	}
	if err := s.invites.CreateInvite(ctx, inv); err != nil {
		return nil, err
	}

	url := domain.BuildInviteURL(s.baseURL, room.EntryCode, inv.Token)
	return &InviteShare{
		Token:     inv.Token,
		URL:       url,
		Message:   domain.BuildShareMessage(room.Name, user.Nickname, url),
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// ResolvedInvite is the public pre-fill view of an invite. It is served
// without authentication so a client can park the invite and replay it after
// the login redirect.
type ResolvedInvite struct {
	EntryCode string    `json:"entryCode"`
	RoomName  string    `json:"roomName"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Resolve looks up a live invite by token.
func (s *InviteService) Resolve(ctx context.Context, token string) (*ResolvedInvite, error) {
	inv, err := s.live(ctx, token)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.RoomByID(ctx, inv.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrInviteNotFound
	}
	return &ResolvedInvite{EntryCode: room.EntryCode, RoomName: room.Name, ExpiresAt: inv.ExpiresAt}, nil
}

// Consume validates a token for a join attempt and returns the room it
// grants access to.
func (s *InviteService) Consume(ctx context.Context, token string) (int64, error) {
	inv, err := s.live(ctx, token)
	if err != nil {
		return 0, err
	}
	return inv.RoomID, nil
}

// DeleteExpired purges lapsed invites.
func (s *InviteService) DeleteExpired(ctx context.Context, now time.Time) error {
	return s.invites.DeleteExpiredInvites(ctx, now)
}

func (s *InviteService) live(ctx context.Context, token string) (*domain.Invite, error) {
	inv, err := s.invites.InviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInviteNotFound
	}
	if time.Now().After(inv.ExpiresAt) {
		_ = s.invites.DeleteInvite(ctx, token)
		return nil, ErrInviteExpired
	}
	return inv, nil
}
