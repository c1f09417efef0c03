package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (User, error)
}

// User represents a registered account. Email comparisons are
// case-insensitive; the store enforces uniqueness on the lowered form.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	AvatarURL    string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
