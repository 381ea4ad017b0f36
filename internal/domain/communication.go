package domain

import "time"

// Channel is the medium a communication is logged for
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

// CommunicationKind distinguishes immediate messages from scheduled reminders
type CommunicationKind string

const (
	KindConfirmation CommunicationKind = "confirmation"
	KindIntakeForms  CommunicationKind = "intake_forms"
	KindReminder     CommunicationKind = "reminder"
)

// Communication is an append-only entry of the communication log.
// Nothing is delivered; dispatching a reminder only stamps DispatchedAt.
type Communication struct {
	ID             string
	BookingID      string
	Kind           CommunicationKind
	Channel        Channel
	Recipient      string
	Subject        string
	Message        string
	ActionRequired bool
	ScheduledAt    time.Time
	DispatchedAt   *time.Time
	CreatedAt      time.Time
}

// IsDue returns true if the entry is scheduled at or before now and not dispatched yet
func (c *Communication) IsDue(now time.Time) bool {
	return c.DispatchedAt == nil && !c.ScheduledAt.After(now)
}
