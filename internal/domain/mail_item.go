package domain

import "time"

// MailItemStatus enumerates lifecycle states for a logged mail item.
type MailItemStatus string

const (
	MailItemStatusReceived MailItemStatus = "Received"
	MailItemStatusNotified MailItemStatus = "Notified"
	MailItemStatusPickedUp MailItemStatus = "Picked Up"
	MailItemStatusReturned MailItemStatus = "Returned"
)

// DefaultMailItemType is applied when a caller logs an item without a type.
const DefaultMailItemType = "Package"

// ValidMailItemStatus reports whether the given value is a known status.
func ValidMailItemStatus(s MailItemStatus) bool {
	switch s {
	case MailItemStatusReceived, MailItemStatusNotified, MailItemStatusPickedUp, MailItemStatusReturned:
		return true
	}
	return false
}

// MailItem is a physical piece of mail or package logged against a contact.
type MailItem struct {
	ID           string
	ContactID    string
	ItemType     string
	Description  *string
	ReceivedDate time.Time
	Status       MailItemStatus
	PickupDate   *time.Time
	CreatedAt    time.Time
}

// MailItemWithContact joins a mail item with its contact's display fields.
type MailItemWithContact struct {
	MailItem
	CompanyName   *string
	ContactPerson *string
	UnitNumber    *string
	MailboxNumber *string
}
