package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/events"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

func newOutreachFixture() (*OutreachService, *fakeContactRepo, *fakeMailItemRepo, *fakeMessageRepo, *recordingDispatcher) {
	contacts := newFakeContactRepo()
	mailItems := newFakeMailItemRepo(contacts)
	messages := newFakeMessageRepo(contacts)
	templates := newFakeTemplateRepo()
	dispatcher := &recordingDispatcher{}

	svc := NewOutreachService(OutreachDependencies{
		MessageRepo:  messages,
		ContactRepo:  contacts,
		MailItemRepo: mailItems,
		Templates:    NewTemplateService(templates),
		Dispatcher:   dispatcher,
	})
	return svc, contacts, mailItems, messages, dispatcher
}

func TestLogMessageDefaultsFollowUpTo36Hours(t *testing.T) {
	svc, contacts, _, _, _ := newOutreachFixture()
	contact := contacts.add("owner-1", nil)

	before := time.Now()
	msg, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
		ContactID:      contact.ID,
		MessageType:    "Initial",
		Channel:        domain.ChannelEmail,
		MessageContent: "your package arrived",
	})
	after := time.Now()

	require.NoError(t, err)
	assert.True(t, msg.FollowUpNeeded)
	require.NotNil(t, msg.FollowUpDate)
	assert.False(t, msg.FollowUpDate.Before(before.Add(36*time.Hour)))
	assert.False(t, msg.FollowUpDate.After(after.Add(36*time.Hour)))
}

func TestLogMessageExplicitFollowUpDatePassesThrough(t *testing.T) {
	svc, contacts, _, _, _ := newOutreachFixture()
	contact := contacts.add("owner-1", nil)

	due := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	msg, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
		ContactID:      contact.ID,
		MessageType:    "Reminder",
		Channel:        domain.ChannelSMS,
		MessageContent: "still waiting",
		FollowUpDate:   &due,
	})

	require.NoError(t, err)
	assert.True(t, msg.FollowUpNeeded)
	require.NotNil(t, msg.FollowUpDate)
	assert.True(t, msg.FollowUpDate.Equal(due))
}

func TestLogMessageExplicitFollowUpFalseOptsOut(t *testing.T) {
	svc, contacts, _, _, _ := newOutreachFixture()
	contact := contacts.add("owner-1", nil)

	noFollowUp := false
	msg, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
		ContactID:      contact.ID,
		MessageType:    "Confirmation",
		Channel:        domain.ChannelEmail,
		MessageContent: "picked up, thanks",
		FollowUpNeeded: &noFollowUp,
	})

	require.NoError(t, err)
	assert.False(t, msg.FollowUpNeeded)
	assert.Nil(t, msg.FollowUpDate)
}

func TestLogMessageValidationFailuresWriteNothing(t *testing.T) {
	svc, contacts, _, messages, _ := newOutreachFixture()
	contact := contacts.add("owner-1", nil)

	cases := []struct {
		name  string
		input LogMessageInput
	}{
		{"missing contact", LogMessageInput{MessageType: "Initial", Channel: domain.ChannelEmail, MessageContent: "hi"}},
		{"missing message type", LogMessageInput{ContactID: contact.ID, Channel: domain.ChannelEmail, MessageContent: "hi"}},
		{"bad channel", LogMessageInput{ContactID: contact.ID, MessageType: "Initial", Channel: "Fax", MessageContent: "hi"}},
		{"missing content", LogMessageInput{ContactID: contact.ID, MessageType: "Initial", Channel: domain.ChannelEmail}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LogMessage(context.Background(), "owner-1", tc.input)
			require.Error(t, err)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
	assert.Zero(t, messages.creates)
}

func TestLogMessageForeignContactLooksAbsent(t *testing.T) {
	svc, contacts, _, _, _ := newOutreachFixture()
	contact := contacts.add("someone-else", nil)

	_, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
		ContactID:      contact.ID,
		MessageType:    "Initial",
		Channel:        domain.ChannelEmail,
		MessageContent: "hi",
	})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestLogMessageRendersTemplateWhenContentEmpty(t *testing.T) {
	contacts := newFakeContactRepo()
	mailItems := newFakeMailItemRepo(contacts)
	messages := newFakeMessageRepo(contacts)
	templateRepo := newFakeTemplateRepo()
	svc := NewOutreachService(OutreachDependencies{
		MessageRepo:  messages,
		ContactRepo:  contacts,
		MailItemRepo: mailItems,
		Templates:    NewTemplateService(templateRepo),
	})

	name := "Wei Chen"
	contact := contacts.add("owner-1", func(c *domain.Contact) {
		c.ContactPerson = &name
	})
	subject := "Mail for {{contact_name}}"
	tpl := &domain.MessageTemplate{
		TemplateName: "Arrival",
		TemplateType: domain.TemplateTypeInitial,
		SubjectLine:  &subject,
		MessageBody:  "Hello {{contact_name}}, you have mail.",
		IsDefault:    true,
	}
	require.NoError(t, templateRepo.Create(context.Background(), tpl))

	msg, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
		ContactID:   contact.ID,
		MessageType: "Initial",
		Channel:     domain.ChannelEmail,
		TemplateID:  &tpl.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello Wei Chen, you have mail.", msg.MessageContent)
	require.NotNil(t, msg.SubjectLine)
	assert.Equal(t, "Mail for Wei Chen", *msg.SubjectLine)
}

func TestMarkRespondedClearsFollowUpExpectation(t *testing.T) {
	svc, contacts, _, messages, dispatcher := newOutreachFixture()
	contact := contacts.add("owner-1", nil)

	msg, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
		ContactID:      contact.ID,
		MessageType:    "Initial",
		Channel:        domain.ChannelEmail,
		MessageContent: "your package arrived",
	})
	require.NoError(t, err)
	require.True(t, msg.FollowUpNeeded)

	updated, err := svc.MarkResponded(context.Background(), "owner-1", msg.ID)
	require.NoError(t, err)

	assert.True(t, updated.Responded)
	require.NotNil(t, updated.ResponseDate)
	assert.False(t, updated.FollowUpNeeded)

	stored := messages.messages[msg.ID]
	assert.True(t, stored.Responded)
	assert.False(t, stored.FollowUpNeeded)
	assert.Contains(t, dispatcher.typesSeen(), events.EventMessageResponded)
}

func TestMarkRespondedUnknownMessage(t *testing.T) {
	svc, _, _, _, _ := newOutreachFixture()

	_, err := svc.MarkResponded(context.Background(), "owner-1", "no-such-id")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListMessagesFiltersByContact(t *testing.T) {
	svc, contacts, _, _, _ := newOutreachFixture()
	first := contacts.add("owner-1", nil)
	second := contacts.add("owner-1", nil)

	for _, id := range []string{first.ID, first.ID, second.ID} {
		_, err := svc.LogMessage(context.Background(), "owner-1", LogMessageInput{
			ContactID:      id,
			MessageType:    "Initial",
			Channel:        domain.ChannelEmail,
			MessageContent: "hello",
		})
		require.NoError(t, err)
	}

	listed, err := svc.ListMessages(context.Background(), "owner-1", MessageListFilter{ContactID: &first.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
