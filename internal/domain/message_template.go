package domain

import "time"

// TemplateType enumerates template categories.
type TemplateType string

const (
	TemplateTypeInitial      TemplateType = "Initial"
	TemplateTypeReminder     TemplateType = "Reminder"
	TemplateTypeConfirmation TemplateType = "Confirmation"
	TemplateTypeCustom       TemplateType = "Custom"
)

// ValidTemplateType reports whether the given value is a known type.
func ValidTemplateType(t TemplateType) bool {
	switch t {
	case TemplateTypeInitial, TemplateTypeReminder, TemplateTypeConfirmation, TemplateTypeCustom:
		return true
	}
	return false
}

// TemplateChannel enumerates the default channel choices for a template.
type TemplateChannel string

const (
	TemplateChannelEmail TemplateChannel = "Email"
	TemplateChannelSMS   TemplateChannel = "SMS"
	TemplateChannelBoth  TemplateChannel = "Both"
)

// ValidTemplateChannel reports whether the given value is a known default channel.
func ValidTemplateChannel(c TemplateChannel) bool {
	switch c {
	case TemplateChannelEmail, TemplateChannelSMS, TemplateChannelBoth:
		return true
	}
	return false
}

// MessageTemplate is a reusable message skeleton with {{placeholder}} variables.
// OwnerID is nil for shared default templates.
type MessageTemplate struct {
	ID             string
	OwnerID        *string
	TemplateName   string
	TemplateType   TemplateType
	SubjectLine    *string
	MessageBody    string
	DefaultChannel TemplateChannel
	IsDefault      bool
	CreatedAt      time.Time
}
