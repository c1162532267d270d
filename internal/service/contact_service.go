package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/events"
	"github.com/meiway/mailplus-crm/internal/repository"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// ContactService coordinates contact workflows.
type ContactService struct {
	contacts   repository.ContactRepository
	mailItems  repository.MailItemRepository
	messages   repository.OutreachMessageRepository
	dispatcher events.Dispatcher
}

// ContactDependencies bundles repositories for the contact service.
type ContactDependencies struct {
	ContactRepo  repository.ContactRepository
	MailItemRepo repository.MailItemRepository
	MessageRepo  repository.OutreachMessageRepository
	Dispatcher   events.Dispatcher
}

// ContactCreateInput describes contact creation payload. All fields are
// optional; status defaults to PENDING when omitted.
type ContactCreateInput struct {
	CompanyName        *string
	UnitNumber         *string
	ContactPerson      *string
	LanguagePreference *string
	Email              *string
	PhoneNumber        *string
	ServiceTier        *int
	Options            *string
	MailboxNumber      *string
	Status             *domain.ContactStatus
}

// ContactUpdateInput describes a partial update; nil fields are left as-is.
type ContactUpdateInput = ContactCreateInput

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	return &ContactService{
		contacts:   deps.ContactRepo,
		mailItems:  deps.MailItemRepo,
		messages:   deps.MessageRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateContact creates a contact owned by the caller.
func (s *ContactService) CreateContact(ctx context.Context, ownerID string, input ContactCreateInput) (*domain.Contact, error) {
	status := domain.ContactStatusPending
	if input.Status != nil {
		if !domain.ValidContactStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid contact status", map[string]any{"status": *input.Status})
		}
		status = *input.Status
	}
	if input.ServiceTier != nil && *input.ServiceTier < 1 {
		return nil, apperrors.NewValidationError("service_tier must be >= 1", nil)
	}

	contact := &domain.Contact{
		OwnerID:            ownerID,
		CompanyName:        trimPtr(input.CompanyName),
		UnitNumber:         trimPtr(input.UnitNumber),
		ContactPerson:      trimPtr(input.ContactPerson),
		LanguagePreference: trimPtr(input.LanguagePreference),
		Email:              trimPtr(input.Email),
		PhoneNumber:        trimPtr(input.PhoneNumber),
		ServiceTier:        input.ServiceTier,
		Options:            input.Options,
		MailboxNumber:      trimPtr(input.MailboxNumber),
		Status:             status,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventContactCreated,
		OwnerID: ownerID,
		Payload: events.ContactCreatedPayload{
			ContactID:   contact.ID,
			CompanyName: contact.CompanyName,
			Status:      contact.Status,
		},
	})
	return contact, nil
}

// ListContacts returns the caller's contacts, newest first.
func (s *ContactService) ListContacts(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	return s.contacts.ListByOwner(ctx, ownerID)
}

// GetContact fetches a single contact.
func (s *ContactService) GetContact(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	return s.contacts.GetByID(ctx, ownerID, contactID)
}

// GetContactWithDetails fetches a contact together with its mail items and
// outreach messages, both newest first.
func (s *ContactService) GetContactWithDetails(ctx context.Context, ownerID, contactID string) (*domain.ContactWithDetails, error) {
	contact, err := s.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	items, err := s.mailItems.ListWithFilter(ctx, ownerID, repository.MailItemFilter{ContactID: &contactID})
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByContact(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	return &domain.ContactWithDetails{
		Contact:          *contact,
		MailItems:        items,
		OutreachMessages: msgs,
	}, nil
}

// UpdateContact applies a partial update to a contact.
func (s *ContactService) UpdateContact(ctx context.Context, ownerID, contactID string, input ContactUpdateInput) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.ValidContactStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid contact status", map[string]any{"status": *input.Status})
		}
		contact.Status = *input.Status
	}
	if input.ServiceTier != nil {
		if *input.ServiceTier < 1 {
			return nil, apperrors.NewValidationError("service_tier must be >= 1", nil)
		}
		contact.ServiceTier = input.ServiceTier
	}
	if input.CompanyName != nil {
		contact.CompanyName = trimPtr(input.CompanyName)
	}
	if input.UnitNumber != nil {
		contact.UnitNumber = trimPtr(input.UnitNumber)
	}
	if input.ContactPerson != nil {
		contact.ContactPerson = trimPtr(input.ContactPerson)
	}
	if input.LanguagePreference != nil {
		contact.LanguagePreference = trimPtr(input.LanguagePreference)
	}
	if input.Email != nil {
		contact.Email = trimPtr(input.Email)
	}
	if input.PhoneNumber != nil {
		contact.PhoneNumber = trimPtr(input.PhoneNumber)
	}
	if input.Options != nil {
		contact.Options = input.Options
	}
	if input.MailboxNumber != nil {
		contact.MailboxNumber = trimPtr(input.MailboxNumber)
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact. Dependent mail items and messages are
// removed by the database's referential actions, not by this service.
func (s *ContactService) DeleteContact(ctx context.Context, ownerID, contactID string) error {
	return s.contacts.Delete(ctx, ownerID, contactID)
}

func (s *ContactService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func trimPtr(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
