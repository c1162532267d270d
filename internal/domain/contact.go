package domain

import "time"

// ContactStatus enumerates lifecycle states for a contact.
type ContactStatus string

const (
	ContactStatusActive  ContactStatus = "Active"
	ContactStatusPending ContactStatus = "PENDING"
	ContactStatusNo      ContactStatus = "No"
)

// ValidContactStatus reports whether the given value is a known status.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactStatusActive, ContactStatusPending, ContactStatusNo:
		return true
	}
	return false
}

// Contact is a mail-center customer/tenant record.
type Contact struct {
	ID                 string
	OwnerID            string
	CompanyName        *string
	UnitNumber         *string
	ContactPerson      *string
	LanguagePreference *string
	Email              *string
	PhoneNumber        *string
	ServiceTier        *int
	Options            *string
	MailboxNumber      *string
	Status             ContactStatus
	CreatedAt          time.Time
}

// ContactWithDetails bundles a contact with its related records for detail views.
type ContactWithDetails struct {
	Contact
	MailItems        []MailItem
	OutreachMessages []OutreachMessage
}
