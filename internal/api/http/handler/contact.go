package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/api/http/response"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/service"
)

const birthdayLayout = "2006-01-02"

// ContactService defines contact management operations.
type ContactService interface {
	Create(ctx context.Context, params service.CreateContactParams) (model.Contact, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.Contact, error)
	List(ctx context.Context, ownerID uuid.UUID, filter model.ContactFilter) ([]model.Contact, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, params service.UpdateContactParams) (model.Contact, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, withinDays int) ([]model.Contact, error)
}

// Contact handles HTTP endpoints for the authenticated user's contacts.
type Contact struct {
	service        ContactService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewContact creates a new Contact handler.
func NewContact(service ContactService, contextManager model.ContextManager, logger *logger.Logger) *Contact {
	return &Contact{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type contactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	Notes     string `json:"notes"`
}

type contactUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Birthday  *string `json:"birthday"`
	Notes     *string `json:"notes"`
}

type contactResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday,omitempty"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func newContactResponse(contact model.Contact) contactResponse {
	resp := contactResponse{
		ID:        contact.ID.String(),
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt.Format(time.RFC3339),
		UpdatedAt: contact.UpdatedAt.Format(time.RFC3339),
	}
	if contact.Birthday != nil {
		resp.Birthday = contact.Birthday.Format(birthdayLayout)
	}
	return resp
}

func newContactListResponse(contacts []model.Contact) []contactResponse {
	resp := make([]contactResponse, 0, len(contacts))
	for _, contact := range contacts {
		resp = append(resp, newContactResponse(contact))
	}
	return resp
}

func parseBirthday(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(birthdayLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// Create adds a contact for the authenticated user.
func (h *Contact) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "birthday must be in YYYY-MM-DD format")
		return
	}

	contact, err := h.service.Create(r.Context(), service.CreateContactParams{
		OwnerID:   ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  birthday,
		Notes:     req.Notes,
	})
	if err != nil {
		h.logger.Error("Contact handler: create failed",
			"owner_id", ownerID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Contact handler: contact created",
		"owner_id", ownerID,
		"contact_id", contact.ID)

	response.JSON(w, http.StatusCreated, newContactResponse(contact))
}

// Get returns a single contact by ID.
func (h *Contact) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "not found")
		return
	}

	contact, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newContactResponse(contact))
}

// List returns the user's contacts, optionally filtered by name, email
// or phone substrings.
func (h *Contact) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	query := r.URL.Query()
	filter := model.ContactFilter{
		Name:  query.Get("name"),
		Email: query.Get("email"),
		Phone: query.Get("phone"),
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			response.Error(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		filter.Offset = offset
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	contacts, err := h.service.List(r.Context(), ownerID, filter)
	if err != nil {
		h.logger.Error("Contact handler: list failed",
			"owner_id", ownerID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newContactListResponse(contacts))
}

// Update applies a partial update to a contact.
func (h *Contact) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "not found")
		return
	}

	var req contactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := service.UpdateContactParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	if req.Birthday != nil {
		birthday, err := parseBirthday(*req.Birthday)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "birthday must be in YYYY-MM-DD format")
			return
		}
		params.Birthday = birthday
	}

	contact, err := h.service.Update(r.Context(), ownerID, id, params)
	if err != nil {
		h.logger.Error("Contact handler: update failed",
			"owner_id", ownerID,
			"contact_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Contact handler: contact updated",
		"owner_id", ownerID,
		"contact_id", id)

	response.JSON(w, http.StatusOK, newContactResponse(contact))
}

// Delete removes a contact.
func (h *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("Contact handler: contact deleted",
		"owner_id", ownerID,
		"contact_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// UpcomingBirthdays lists contacts whose birthday falls within the next
// days (default 7).
func (h *Contact) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	contacts, err := h.service.UpcomingBirthdays(r.Context(), ownerID, days)
	if err != nil {
		h.logger.Error("Contact handler: birthdays lookup failed",
			"owner_id", ownerID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newContactListResponse(contacts))
}
