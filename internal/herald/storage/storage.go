// Package storage defines the persistence boundary for the
// address-to-identity mapping the router reads.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no identity row exists for an address.
var ErrNotFound = errors.New("user not found")

// User maps one world address to the chat identities a player
// registered through the command surface.
type User struct {
	Address    string
	DiscordID  string
	TelegramID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserStore reads and writes identity rows keyed by world address.
// The pipeline only reads; writes belong to the command surface.
type UserStore interface {
	GetUserByAddress(ctx context.Context, address string) (User, error)
	UpsertUser(ctx context.Context, user User) error
}
