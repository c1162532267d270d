package domain

import "time"

// MessageChannel enumerates supported outreach channels.
type MessageChannel string

const (
	ChannelEmail  MessageChannel = "Email"
	ChannelSMS    MessageChannel = "SMS"
	ChannelWeChat MessageChannel = "WeChat"
	ChannelPhone  MessageChannel = "Phone"
)

// ValidMessageChannel reports whether the given value is a known channel.
func ValidMessageChannel(c MessageChannel) bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWeChat, ChannelPhone:
		return true
	}
	return false
}

// OutreachMessage records an attempt to notify a contact, independent of
// actual delivery.
type OutreachMessage struct {
	ID             string
	ContactID      string
	MailItemID     *string
	MessageType    string
	Channel        MessageChannel
	SubjectLine    *string
	MessageContent string
	SentAt         time.Time
	Responded      bool
	ResponseDate   *time.Time
	FollowUpNeeded bool
	FollowUpDate   *time.Time
	Notes          *string
}

// OutreachMessageWithContact joins a message with its contact's display fields.
type OutreachMessageWithContact struct {
	OutreachMessage
	CompanyName   *string
	ContactPerson *string
	UnitNumber    *string
}
