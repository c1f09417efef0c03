package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContactStore defines persistence operations for contacts. Every method
// takes the owner explicitly; a contact outside the owner's scope behaves
// exactly like a missing one.
type ContactStore interface {
	Create(ctx context.Context, contact Contact) (Contact, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Contact, error)
	List(ctx context.Context, ownerID uuid.UUID, filter ContactFilter) ([]Contact, error)
	Update(ctx context.Context, contact Contact) (Contact, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	ListWithBirthdays(ctx context.Context, ownerID uuid.UUID) ([]Contact, error)
}

// Contact represents a single address-book entry owned by one user.
// Birthday keeps only the calendar date; the year carries no meaning for
// recurrence.
type Contact struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  *time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactFilter narrows and pages List results. Non-empty fields compose
// conjunctively as substring matches. Paging is offset+limit over a stable
// (created_at, id) order.
type ContactFilter struct {
	Name   string
	Email  string
	Phone  string
	Offset int
	Limit  int
}
