package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/contacts-server/internal/model"
)

var _ model.ContactStore = (*ContactRepository)(nil)

type ContactRepository struct {
	db *Connection
}

func NewContactRepository(db *Connection) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

const contactColumns = `id, owner_id, first_name, last_name, email, phone, birthday, notes, created_at, updated_at`

func scanContact(row pgx.Row) (model.Contact, error) {
	var contact model.Contact
	err := row.Scan(
		&contact.ID, &contact.OwnerID, &contact.FirstName, &contact.LastName,
		&contact.Email, &contact.Phone, &contact.Birthday, &contact.Notes,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
	return contact, err
}

func (r *ContactRepository) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `INSERT INTO contacts (id, owner_id, first_name, last_name, email, phone, birthday, notes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + contactColumns

	saved, err := scanContact(r.db.QueryRow(ctx, query,
		contact.ID, contact.OwnerID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Birthday, contact.Notes,
		contact.CreatedAt, contact.UpdatedAt,
	))
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return saved, nil
}

// GetByID looks up a contact within the owner's scope. A contact owned by
// another user yields ErrNotFound, same as a missing one.
func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND owner_id = $2`

	contact, err := scanContact(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to get contact by id: %w", err)
	}

	return contact, nil
}

// List returns the owner's contacts matching the filter. Non-empty filter
// fields compose conjunctively as case-insensitive substring matches; the
// (created_at, id) order keeps offset paging deterministic under concurrent
// inserts.
func buildListQuery(ownerID uuid.UUID, filter model.ContactFilter) (string, []any) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`
	args := []any{ownerID}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", len(args), len(args))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		query += fmt.Sprintf(" AND email ILIKE $%d", len(args))
	}
	if filter.Phone != "" {
		args = append(args, "%"+filter.Phone+"%")
		query += fmt.Sprintf(" AND phone ILIKE $%d", len(args))
	}

	query += " ORDER BY created_at, id"

	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	return query, args
}

func (r *ContactRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ContactFilter) ([]model.Contact, error) {
	query, args := buildListQuery(ownerID, filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `UPDATE contacts
			  SET first_name = $3, last_name = $4, email = $5, phone = $6, birthday = $7, notes = $8, updated_at = now()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING ` + contactColumns

	saved, err := scanContact(r.db.QueryRow(ctx, query,
		contact.ID, contact.OwnerID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Birthday, contact.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const query = `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListWithBirthdays returns the owner's contacts that have a birthday set.
// The upcoming-window arithmetic lives in the service layer.
func (r *ContactRepository) ListWithBirthdays(ctx context.Context, ownerID uuid.UUID) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
			  WHERE owner_id = $1 AND birthday IS NOT NULL
			  ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts with birthdays: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	return contacts, nil
}
