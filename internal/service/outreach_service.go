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

// followUpOffset is the window after a send within which a response is
// expected before the message counts as overdue.
const followUpOffset = 36 * time.Hour

// OutreachService coordinates logging outreach messages and tracking
// responses. Messages are only recorded; no delivery is attempted.
type OutreachService struct {
	messages   repository.OutreachMessageRepository
	contacts   repository.ContactRepository
	mailItems  repository.MailItemRepository
	templates  *TemplateService
	dispatcher events.Dispatcher
}

// OutreachDependencies bundles collaborators for the outreach service.
type OutreachDependencies struct {
	MessageRepo  repository.OutreachMessageRepository
	ContactRepo  repository.ContactRepository
	MailItemRepo repository.MailItemRepository
	Templates    *TemplateService
	Dispatcher   events.Dispatcher
}

// LogMessageInput describes the send-log payload. When TemplateID is set and
// MessageContent is empty, the template is rendered against the contact and
// the referenced mail item.
type LogMessageInput struct {
	ContactID      string
	MailItemID     *string
	MessageType    string
	Channel        domain.MessageChannel
	SubjectLine    *string
	MessageContent string
	TemplateID     *string
	FollowUpNeeded *bool
	FollowUpDate   *time.Time
	Notes          *string
}

// MessageListFilter describes listing filters.
type MessageListFilter struct {
	ContactID  *string
	MailItemID *string
}

// NewOutreachService constructs the service.
func NewOutreachService(deps OutreachDependencies) *OutreachService {
	return &OutreachService{
		messages:   deps.MessageRepo,
		contacts:   deps.ContactRepo,
		mailItems:  deps.MailItemRepo,
		templates:  deps.Templates,
		dispatcher: deps.Dispatcher,
	}
}

// LogMessage validates and records an outreach message, applying the
// follow-up rule before the single write.
func (s *OutreachService) LogMessage(ctx context.Context, ownerID string, input LogMessageInput) (*domain.OutreachMessage, error) {
	if strings.TrimSpace(input.ContactID) == "" {
		return nil, apperrors.NewValidationError("contact_id is required", nil)
	}
	if strings.TrimSpace(input.MessageType) == "" {
		return nil, apperrors.NewValidationError("message_type is required", nil)
	}
	if !domain.ValidMessageChannel(input.Channel) {
		return nil, apperrors.NewValidationError("invalid channel", map[string]any{"channel": input.Channel})
	}

	contact, err := s.contacts.GetByID(ctx, ownerID, input.ContactID)
	if err != nil {
		return nil, err
	}

	var mailItem *domain.MailItem
	if input.MailItemID != nil {
		mailItem, err = s.mailItems.GetByID(ctx, ownerID, *input.MailItemID)
		if err != nil {
			return nil, err
		}
	}

	content := input.MessageContent
	subject := input.SubjectLine
	if strings.TrimSpace(content) == "" && input.TemplateID != nil && s.templates != nil {
		rendered, err := s.templates.RenderByID(ctx, ownerID, *input.TemplateID, contact, mailItem)
		if err != nil {
			return nil, err
		}
		content = rendered.Body
		if subject == nil {
			subject = rendered.Subject
		}
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("message_content is required", nil)
	}

	msg := &domain.OutreachMessage{
		ContactID:      input.ContactID,
		MailItemID:     input.MailItemID,
		MessageType:    strings.TrimSpace(input.MessageType),
		Channel:        input.Channel,
		SubjectLine:    subject,
		MessageContent: content,
		FollowUpDate:   input.FollowUpDate,
		Notes:          input.Notes,
	}
	scheduleFollowUp(msg, input.FollowUpNeeded, time.Now())

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventMessageLogged,
		OwnerID: ownerID,
		Payload: events.MessageLoggedPayload{
			MessageID:    msg.ID,
			ContactID:    msg.ContactID,
			MailItemID:   msg.MailItemID,
			Channel:      msg.Channel,
			MessageType:  msg.MessageType,
			SubjectLine:  msg.SubjectLine,
			FollowUpDate: msg.FollowUpDate,
		},
	})
	return msg, nil
}

// ListMessages returns messages joined with contact display fields.
func (s *OutreachService) ListMessages(ctx context.Context, ownerID string, filter MessageListFilter) ([]domain.OutreachMessageWithContact, error) {
	return s.messages.ListWithContact(ctx, ownerID, repository.OutreachMessageFilter{
		ContactID:  filter.ContactID,
		MailItemID: filter.MailItemID,
	})
}

// MarkResponded records a response to a message: flips responded, stamps the
// response date and clears the follow-up expectation.
func (s *OutreachService) MarkResponded(ctx context.Context, ownerID, messageID string) (*domain.OutreachMessage, error) {
	msg, err := s.messages.GetByID(ctx, ownerID, messageID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	msg.Responded = true
	msg.ResponseDate = &now
	msg.FollowUpNeeded = false

	if err := s.messages.Update(ctx, ownerID, msg); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventMessageResponded,
		OwnerID: ownerID,
		Payload: events.MessageRespondedPayload{
			MessageID:    msg.ID,
			ContactID:    msg.ContactID,
			ResponseDate: now,
		},
	})
	return msg, nil
}

// scheduleFollowUp applies the follow-up rule to a draft before it is
// written. An explicit false opts out entirely; otherwise the expectation is
// set and a missing due date defaults to sentAt plus the fixed offset. An
// explicit due date passes through untouched.
func scheduleFollowUp(msg *domain.OutreachMessage, followUpNeeded *bool, sentAt time.Time) {
	if followUpNeeded != nil && !*followUpNeeded {
		msg.FollowUpNeeded = false
		return
	}
	msg.FollowUpNeeded = true
	if msg.FollowUpDate == nil {
		due := sentAt.Add(followUpOffset)
		msg.FollowUpDate = &due
	}
}

func (s *OutreachService) publishEvent(ctx context.Context, event events.Event) {
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
