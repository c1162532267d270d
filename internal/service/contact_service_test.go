package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/events"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

func newContactFixture() (*ContactService, *fakeContactRepo, *fakeMailItemRepo, *fakeMessageRepo, *recordingDispatcher) {
	contacts := newFakeContactRepo()
	mailItems := newFakeMailItemRepo(contacts)
	messages := newFakeMessageRepo(contacts)
	dispatcher := &recordingDispatcher{}
	svc := NewContactService(ContactDependencies{
		ContactRepo:  contacts,
		MailItemRepo: mailItems,
		MessageRepo:  messages,
		Dispatcher:   dispatcher,
	})
	return svc, contacts, mailItems, messages, dispatcher
}

func strPtr(s string) *string { return &s }

func TestCreateContactDefaultsToPending(t *testing.T) {
	svc, _, _, _, dispatcher := newContactFixture()

	contact, err := svc.CreateContact(context.Background(), "owner-1", ContactCreateInput{
		CompanyName: strPtr("Golden Dragon Trading"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusPending, contact.Status)
	assert.Equal(t, "owner-1", contact.OwnerID)
	assert.NotEmpty(t, contact.ID)
	assert.Contains(t, dispatcher.typesSeen(), events.EventContactCreated)
}

func TestCreateContactRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newContactFixture()

	bad := domain.ContactStatus("Archived")
	_, err := svc.CreateContact(context.Background(), "owner-1", ContactCreateInput{Status: &bad})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateContactRejectsServiceTierBelowOne(t *testing.T) {
	svc, _, _, _, _ := newContactFixture()

	tier := 0
	_, err := svc.CreateContact(context.Background(), "owner-1", ContactCreateInput{ServiceTier: &tier})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateContactTrimsWhitespaceToNil(t *testing.T) {
	svc, _, _, _, _ := newContactFixture()

	contact, err := svc.CreateContact(context.Background(), "owner-1", ContactCreateInput{
		CompanyName:   strPtr("  Sunrise Imports  "),
		ContactPerson: strPtr("   "),
	})

	require.NoError(t, err)
	require.NotNil(t, contact.CompanyName)
	assert.Equal(t, "Sunrise Imports", *contact.CompanyName)
	assert.Nil(t, contact.ContactPerson)
}

func TestUpdateContactAppliesPartialChanges(t *testing.T) {
	svc, _, _, _, _ := newContactFixture()

	contact, err := svc.CreateContact(context.Background(), "owner-1", ContactCreateInput{
		CompanyName: strPtr("Sunrise Imports"),
		Email:       strPtr("office@sunrise.example"),
	})
	require.NoError(t, err)

	active := domain.ContactStatusActive
	updated, err := svc.UpdateContact(context.Background(), "owner-1", contact.ID, ContactUpdateInput{
		Status:      &active,
		PhoneNumber: strPtr("555-0101"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ContactStatusActive, updated.Status)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, "555-0101", *updated.PhoneNumber)
	// Untouched fields survive.
	require.NotNil(t, updated.Email)
	assert.Equal(t, "office@sunrise.example", *updated.Email)
}

func TestGetContactScopedToOwner(t *testing.T) {
	svc, contacts, _, _, _ := newContactFixture()
	contact := contacts.add("someone-else", nil)

	_, err := svc.GetContact(context.Background(), "owner-1", contact.ID)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestGetContactWithDetailsAggregatesRelatedRecords(t *testing.T) {
	svc, contacts, mailItems, messages, _ := newContactFixture()
	contact := contacts.add("owner-1", nil)
	other := contacts.add("owner-1", nil)

	addItemWithStatus(t, mailItems, contact.ID, domain.MailItemStatusReceived)
	addItemWithStatus(t, mailItems, other.ID, domain.MailItemStatusReceived)
	require.NoError(t, messages.Create(context.Background(), &domain.OutreachMessage{
		ContactID: contact.ID, MessageType: "Initial", Channel: domain.ChannelEmail, MessageContent: "x",
	}))

	details, err := svc.GetContactWithDetails(context.Background(), "owner-1", contact.ID)
	require.NoError(t, err)

	assert.Equal(t, contact.ID, details.Contact.ID)
	assert.Len(t, details.MailItems, 1)
	assert.Len(t, details.OutreachMessages, 1)
}

func TestDeleteContactScopedToOwner(t *testing.T) {
	svc, contacts, _, _, _ := newContactFixture()
	mine := contacts.add("owner-1", nil)
	foreign := contacts.add("someone-else", nil)

	require.NoError(t, svc.DeleteContact(context.Background(), "owner-1", mine.ID))
	require.Error(t, svc.DeleteContact(context.Background(), "owner-1", foreign.ID))

	_, stillThere := contacts.contacts[foreign.ID]
	assert.True(t, stillThere)
}
