package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Invite is a time-limited join grant for a battle room. The token stands in
// for the room password in share links so the secret itself is never echoed.
type Invite struct {
	Token     string    `json:"token"`
	RoomID    int64     `json:"-"`
	EntryCode string    `json:"entryCode"`
	CreatedBy int64     `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"-"`
}

// BuildInviteURL renders the join link for a room: the public entry code plus
// the invite token as query parameters on the client's join route.
func BuildInviteURL(baseURL, entryCode, token string) string {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/join")
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("room", entryCode)
	q.Set("invite", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// BuildShareMessage renders the human-readable text handed to the external
// share integration alongside the join link.
func BuildShareMessage(roomName, hostNickname, inviteURL string) string {
	return fmt.Sprintf("%s invited you to the weight battle %q. Join here: %s", hostNickname, roomName, inviteURL)
}

// InviteRepository is the port for invite persistence.
type InviteRepository interface {
	CreateInvite(ctx context.Context, inv Invite) error
	InviteByToken(ctx context.Context, token string) (*Invite, error)
	DeleteInvite(ctx context.Context, token string) error
	DeleteExpiredInvites(ctx context.Context, now time.Time) error
}
