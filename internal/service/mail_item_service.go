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

// MailItemService coordinates the mail item lifecycle.
type MailItemService struct {
	mailItems  repository.MailItemRepository
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
}

// MailItemDependencies bundles repositories for the mail item service.
type MailItemDependencies struct {
	MailItemRepo repository.MailItemRepository
	ContactRepo  repository.ContactRepository
	Dispatcher   events.Dispatcher
}

// MailItemCreateInput describes the log-arrival payload.
type MailItemCreateInput struct {
	ContactID   string
	ItemType    *string
	Description *string
	Status      *domain.MailItemStatus
}

// MailItemListFilter describes listing filters.
type MailItemListFilter struct {
	ContactID *string
	Statuses  []domain.MailItemStatus
}

// NewMailItemService constructs the service.
func NewMailItemService(deps MailItemDependencies) *MailItemService {
	return &MailItemService{
		mailItems:  deps.MailItemRepo,
		contacts:   deps.ContactRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateMailItem logs an arrival for a contact. Item type defaults to
// Package, status defaults to Received.
func (s *MailItemService) CreateMailItem(ctx context.Context, ownerID string, input MailItemCreateInput) (*domain.MailItem, error) {
	if strings.TrimSpace(input.ContactID) == "" {
		return nil, apperrors.NewValidationError("contact_id is required", nil)
	}

	itemType := domain.DefaultMailItemType
	if input.ItemType != nil && strings.TrimSpace(*input.ItemType) != "" {
		itemType = strings.TrimSpace(*input.ItemType)
	}
	status := domain.MailItemStatusReceived
	if input.Status != nil {
		if !domain.ValidMailItemStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid mail item status", map[string]any{"status": *input.Status})
		}
		status = *input.Status
	}

	// Ownership check doubles as existence check: a foreign contact looks absent.
	if _, err := s.contacts.GetByID(ctx, ownerID, input.ContactID); err != nil {
		return nil, err
	}

	item := &domain.MailItem{
		ContactID:   input.ContactID,
		ItemType:    itemType,
		Description: input.Description,
		Status:      status,
	}
	if err := s.mailItems.Create(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventMailItemLogged,
		OwnerID: ownerID,
		Payload: events.MailItemLoggedPayload{
			MailItemID: item.ID,
			ContactID:  item.ContactID,
			ItemType:   item.ItemType,
		},
	})
	return item, nil
}

// ListMailItems returns mail items visible to the caller, newest first.
func (s *MailItemService) ListMailItems(ctx context.Context, ownerID string, filter MailItemListFilter) ([]domain.MailItem, error) {
	return s.mailItems.ListWithFilter(ctx, ownerID, repository.MailItemFilter{
		ContactID: filter.ContactID,
		Statuses:  filter.Statuses,
	})
}

// GetMailItem fetches a single mail item.
func (s *MailItemService) GetMailItem(ctx context.Context, ownerID, itemID string) (*domain.MailItem, error) {
	return s.mailItems.GetByID(ctx, ownerID, itemID)
}

// SetStatus overwrites a mail item's status. Transitions are caller-driven
// and not restricted to the forward order; the pickup date is set only when
// the target status is Picked Up and a timestamp was supplied, and is never
// cleared otherwise.
func (s *MailItemService) SetStatus(ctx context.Context, ownerID, itemID string, newStatus domain.MailItemStatus, pickupAt *time.Time) (*domain.MailItem, error) {
	if !domain.ValidMailItemStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid mail item status", map[string]any{"status": newStatus})
	}

	item, err := s.mailItems.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	oldStatus := item.Status
	item.Status = newStatus
	if newStatus == domain.MailItemStatusPickedUp && pickupAt != nil {
		item.PickupDate = pickupAt
	}

	if err := s.mailItems.Update(ctx, ownerID, item); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventMailItemStatusChanged,
		OwnerID: ownerID,
		Payload: events.MailItemStatusChangedPayload{
			MailItemID: item.ID,
			ContactID:  item.ContactID,
			OldStatus:  oldStatus,
			NewStatus:  newStatus,
			PickupDate: item.PickupDate,
		},
	})
	return item, nil
}

func (s *MailItemService) publishEvent(ctx context.Context, event events.Event) {
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
