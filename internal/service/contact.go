package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

const (
	defaultListLimit      = 100
	maxListLimit          = 500
	defaultBirthdayWindow = 7
)

// Contact provides owner-scoped address-book operations.
type Contact struct {
	contacts model.ContactStore
	logger   *logger.Logger
	now      func() time.Time
}

func NewContact(contacts model.ContactStore, logger *logger.Logger) *Contact {
	return &Contact{
		contacts: contacts,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateContactParams contains parameters to create a contact.
type CreateContactParams struct {
	OwnerID   uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  *time.Time
	Notes     string
}

// UpdateContactParams carries a partial update; nil fields keep their
// current value.
type UpdateContactParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Birthday  *time.Time
	Notes     *string
}

func (c *Contact) Create(ctx context.Context, params CreateContactParams) (model.Contact, error) {
	if params.FirstName == "" {
		return model.Contact{}, fmt.Errorf("%w: first name is required", model.ErrValidation)
	}

	now := c.now()
	contact := model.Contact{
		ID:        uuid.New(),
		OwnerID:   params.OwnerID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Phone:     params.Phone,
		Birthday:  params.Birthday,
		Notes:     params.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := c.contacts.Create(ctx, contact)
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	c.logger.Debug("Contact service: contact created", "owner_id", params.OwnerID, "contact_id", saved.ID)

	return saved, nil
}

func (c *Contact) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Contact, error) {
	return c.contacts.GetByID(ctx, ownerID, id)
}

func (c *Contact) List(ctx context.Context, ownerID uuid.UUID, filter model.ContactFilter) ([]model.Contact, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return c.contacts.List(ctx, ownerID, filter)
}

func (c *Contact) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateContactParams) (model.Contact, error) {
	contact, err := c.contacts.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.Contact{}, err
	}

	if params.FirstName != nil {
		contact.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		contact.LastName = *params.LastName
	}
	if params.Email != nil {
		contact.Email = *params.Email
	}
	if params.Phone != nil {
		contact.Phone = *params.Phone
	}
	if params.Birthday != nil {
		contact.Birthday = params.Birthday
	}
	if params.Notes != nil {
		contact.Notes = *params.Notes
	}

	if contact.FirstName == "" {
		return model.Contact{}, fmt.Errorf("%w: first name is required", model.ErrValidation)
	}

	return c.contacts.Update(ctx, contact)
}

func (c *Contact) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return c.contacts.Delete(ctx, ownerID, id)
}

// UpcomingBirthdays returns the owner's contacts whose birthday falls
// within the next withinDays calendar days, wrapping across the year
// boundary.
func (c *Contact) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, withinDays int) ([]model.Contact, error) {
	if withinDays <= 0 {
		withinDays = defaultBirthdayWindow
	}

	candidates, err := c.contacts.ListWithBirthdays(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts with birthdays: %w", err)
	}

	today := c.now()
	var upcoming []model.Contact
	for _, contact := range candidates {
		if contact.Birthday == nil {
			continue
		}
		if daysUntilBirthday(today, *contact.Birthday) <= withinDays {
			upcoming = append(upcoming, contact)
		}
	}

	return upcoming, nil
}

// daysUntilBirthday computes the forward circular distance, in days, from
// today to the next occurrence of the birthday's month/day. Both dates are
// normalized to a day-of-year in today's year and the distance is taken
// modulo that year's length, so a late-December today correctly reaches
// early-January birthdays. A February 29 birthday counts as February 28
// when today's year is not a leap year.
func daysUntilBirthday(today, birthday time.Time) int {
	refYear := today.Year()
	yearLen := 365
	if isLeapYear(refYear) {
		yearLen = 366
	}

	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeapYear(refYear) {
		day = 28
	}

	birthdayDOY := time.Date(refYear, month, day, 0, 0, 0, 0, time.UTC).YearDay()
	todayDOY := time.Date(refYear, today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).YearDay()

	dist := (birthdayDOY - todayDOY) % yearLen
	if dist < 0 {
		dist += yearLen
	}
	return dist
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
