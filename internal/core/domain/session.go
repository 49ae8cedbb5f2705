package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session binds an opaque bearer token to an authenticated identity.
// The user snapshot is taken at login time; sessions expire after their TTL
// and are destroyed on logout.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
