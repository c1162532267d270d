package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/events"
	"github.com/meiway/mailplus-crm/internal/repository"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// fakeContactRepo is an in-memory ContactRepository. Ownership scoping
// mirrors the SQL behavior: foreign rows look absent.
type fakeContactRepo struct {
	contacts map[string]*domain.Contact
	failWith error

	reassignAllErr  error
	reassignAllRows int64
	reassignFgnErr  error
	reassignFgnRows int64
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: map[string]*domain.Contact{}}
}

func (f *fakeContactRepo) Create(_ context.Context, contact *domain.Contact) error {
	if f.failWith != nil {
		return f.failWith
	}
	contact.ID = uuid.NewString()
	contact.CreatedAt = time.Now()
	cp := *contact
	f.contacts[contact.ID] = &cp
	return nil
}

func (f *fakeContactRepo) Update(_ context.Context, contact *domain.Contact) error {
	if f.failWith != nil {
		return f.failWith
	}
	existing, ok := f.contacts[contact.ID]
	if !ok || existing.OwnerID != contact.OwnerID {
		return apperrors.NewNotFound("contact", nil)
	}
	cp := *contact
	f.contacts[contact.ID] = &cp
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, ownerID, id string) (*domain.Contact, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	contact, ok := f.contacts[id]
	if !ok || contact.OwnerID != ownerID {
		return nil, apperrors.NewNotFound("contact", nil)
	}
	cp := *contact
	return &cp, nil
}

func (f *fakeContactRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Contact, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Contact
	for _, c := range f.contacts {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) Delete(_ context.Context, ownerID, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	contact, ok := f.contacts[id]
	if !ok || contact.OwnerID != ownerID {
		return apperrors.NewNotFound("contact", nil)
	}
	delete(f.contacts, id)
	return nil
}

func (f *fakeContactRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	var n int64
	for _, c := range f.contacts {
		if c.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeContactRepo) ReassignAll(_ context.Context, newOwnerID string) (int64, error) {
	if f.reassignAllErr != nil {
		return 0, f.reassignAllErr
	}
	if f.reassignAllRows > 0 {
		return f.reassignAllRows, nil
	}
	var n int64
	for _, c := range f.contacts {
		c.OwnerID = newOwnerID
		n++
	}
	return n, nil
}

func (f *fakeContactRepo) ReassignForeign(_ context.Context, newOwnerID string) (int64, error) {
	if f.reassignFgnErr != nil {
		return 0, f.reassignFgnErr
	}
	if f.reassignFgnRows > 0 {
		return f.reassignFgnRows, nil
	}
	var n int64
	for _, c := range f.contacts {
		if c.OwnerID != newOwnerID {
			c.OwnerID = newOwnerID
			n++
		}
	}
	return n, nil
}

func (f *fakeContactRepo) add(ownerID string, mutate func(*domain.Contact)) *domain.Contact {
	contact := &domain.Contact{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Status:  domain.ContactStatusActive,
	}
	if mutate != nil {
		mutate(contact)
	}
	f.contacts[contact.ID] = contact
	return contact
}

// fakeMailItemRepo is an in-memory MailItemRepository.
type fakeMailItemRepo struct {
	items    map[string]*domain.MailItem
	owners   *fakeContactRepo
	failWith error
	updates  int
}

func newFakeMailItemRepo(owners *fakeContactRepo) *fakeMailItemRepo {
	return &fakeMailItemRepo{items: map[string]*domain.MailItem{}, owners: owners}
}

func (f *fakeMailItemRepo) ownerOf(item *domain.MailItem) string {
	if contact, ok := f.owners.contacts[item.ContactID]; ok {
		return contact.OwnerID
	}
	return ""
}

func (f *fakeMailItemRepo) Create(_ context.Context, item *domain.MailItem) error {
	if f.failWith != nil {
		return f.failWith
	}
	item.ID = uuid.NewString()
	item.ReceivedDate = time.Now()
	item.CreatedAt = item.ReceivedDate
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeMailItemRepo) Update(_ context.Context, ownerID string, item *domain.MailItem) error {
	if f.failWith != nil {
		return f.failWith
	}
	existing, ok := f.items[item.ID]
	if !ok || f.ownerOf(existing) != ownerID {
		return apperrors.NewNotFound("mail item", nil)
	}
	cp := *item
	f.items[item.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeMailItemRepo) GetByID(_ context.Context, ownerID, id string) (*domain.MailItem, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	item, ok := f.items[id]
	if !ok || f.ownerOf(item) != ownerID {
		return nil, apperrors.NewNotFound("mail item", nil)
	}
	cp := *item
	return &cp, nil
}

func (f *fakeMailItemRepo) ListWithFilter(_ context.Context, ownerID string, filter repository.MailItemFilter) ([]domain.MailItem, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.MailItem
	for _, item := range f.items {
		if f.ownerOf(item) != ownerID {
			continue
		}
		if filter.ContactID != nil && item.ContactID != *filter.ContactID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, item.Status) {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeMailItemRepo) ListRecentWithContact(_ context.Context, ownerID string, limit int) ([]domain.MailItemWithContact, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.MailItemWithContact
	for _, item := range f.items {
		if f.ownerOf(item) != ownerID {
			continue
		}
		out = append(out, domain.MailItemWithContact{MailItem: *item})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMailItemRepo) CountByStatuses(_ context.Context, ownerID string, statuses []domain.MailItemStatus) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	var n int64
	for _, item := range f.items {
		if f.ownerOf(item) == ownerID && containsStatus(statuses, item.Status) {
			n++
		}
	}
	return n, nil
}

func containsStatus(statuses []domain.MailItemStatus, s domain.MailItemStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// fakeMessageRepo is an in-memory OutreachMessageRepository.
type fakeMessageRepo struct {
	messages map[string]*domain.OutreachMessage
	owners   *fakeContactRepo
	failWith error
	creates  int
}

func newFakeMessageRepo(owners *fakeContactRepo) *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*domain.OutreachMessage{}, owners: owners}
}

func (f *fakeMessageRepo) ownerOf(msg *domain.OutreachMessage) string {
	if contact, ok := f.owners.contacts[msg.ContactID]; ok {
		return contact.OwnerID
	}
	return ""
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.OutreachMessage) error {
	if f.failWith != nil {
		return f.failWith
	}
	msg.ID = uuid.NewString()
	msg.SentAt = time.Now()
	cp := *msg
	f.messages[msg.ID] = &cp
	f.creates++
	return nil
}

func (f *fakeMessageRepo) Update(_ context.Context, ownerID string, msg *domain.OutreachMessage) error {
	if f.failWith != nil {
		return f.failWith
	}
	existing, ok := f.messages[msg.ID]
	if !ok || f.ownerOf(existing) != ownerID {
		return apperrors.NewNotFound("message", nil)
	}
	cp := *msg
	f.messages[msg.ID] = &cp
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, ownerID, id string) (*domain.OutreachMessage, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	msg, ok := f.messages[id]
	if !ok || f.ownerOf(msg) != ownerID {
		return nil, apperrors.NewNotFound("message", nil)
	}
	cp := *msg
	return &cp, nil
}

func (f *fakeMessageRepo) ListWithContact(_ context.Context, ownerID string, filter repository.OutreachMessageFilter) ([]domain.OutreachMessageWithContact, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.OutreachMessageWithContact
	for _, msg := range f.messages {
		if f.ownerOf(msg) != ownerID {
			continue
		}
		if filter.ContactID != nil && msg.ContactID != *filter.ContactID {
			continue
		}
		if filter.MailItemID != nil && (msg.MailItemID == nil || *msg.MailItemID != *filter.MailItemID) {
			continue
		}
		out = append(out, domain.OutreachMessageWithContact{OutreachMessage: *msg})
	}
	return out, nil
}

func (f *fakeMessageRepo) ListByContact(_ context.Context, ownerID, contactID string) ([]domain.OutreachMessage, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.OutreachMessage
	for _, msg := range f.messages {
		if f.ownerOf(msg) == ownerID && msg.ContactID == contactID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) isOverdue(msg *domain.OutreachMessage, now time.Time) bool {
	return msg.FollowUpNeeded && !msg.Responded &&
		msg.FollowUpDate != nil && msg.FollowUpDate.Before(now)
}

func (f *fakeMessageRepo) ListOverdue(_ context.Context, ownerID string, now time.Time, limit int) ([]domain.OutreachMessage, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.OutreachMessage
	for _, msg := range f.messages {
		if f.ownerOf(msg) == ownerID && f.isOverdue(msg, now) {
			out = append(out, *msg)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) CountOverdue(_ context.Context, ownerID string, now time.Time) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	var n int64
	for _, msg := range f.messages {
		if f.ownerOf(msg) == ownerID && f.isOverdue(msg, now) {
			n++
		}
	}
	return n, nil
}

// fakeTemplateRepo is an in-memory TemplateRepository.
type fakeTemplateRepo struct {
	templates map[string]*domain.MessageTemplate
	failWith  error
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string]*domain.MessageTemplate{}}
}

func (f *fakeTemplateRepo) Create(_ context.Context, tpl *domain.MessageTemplate) error {
	if f.failWith != nil {
		return f.failWith
	}
	tpl.ID = uuid.NewString()
	cp := *tpl
	f.templates[tpl.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, ownerID, id string) (*domain.MessageTemplate, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	tpl, ok := f.templates[id]
	if !ok {
		return nil, apperrors.NewNotFound("template", nil)
	}
	if !tpl.IsDefault && (tpl.OwnerID == nil || *tpl.OwnerID != ownerID) {
		return nil, apperrors.NewNotFound("template", nil)
	}
	cp := *tpl
	return &cp, nil
}

func (f *fakeTemplateRepo) ListVisible(_ context.Context, ownerID string) ([]domain.MessageTemplate, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.MessageTemplate
	for _, tpl := range f.templates {
		if tpl.IsDefault || (tpl.OwnerID != nil && *tpl.OwnerID == ownerID) {
			out = append(out, *tpl)
		}
	}
	return out, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) typesSeen() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

var errStorageDown = fmt.Errorf("storage unavailable")
