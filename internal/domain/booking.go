package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
)

// Insurance is the coverage the patient reported at booking time
type Insurance struct {
	Carrier  string
	MemberID string
	Group    string
}

// Booking is an immutable ledger record of a confirmed visit
type Booking struct {
	ID          string
	PatientID   string // NewPatientID for unregistered patients
	PatientName string
	ProviderID  string
	// Denormalized for reporting
	ProviderName string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Location     string
	VisitKind    VisitKind
	Insurance    Insurance
	Status       BookingStatus
	Notes        string
	CreatedAt    time.Time
}

// IsNewPatient returns true if the patient had no roster record at booking time
func (b *Booking) IsNewPatient() bool {
	return b.PatientID == NewPatientID
}

// DurationMinutes returns the booked window length
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// StartsAt combines the booking date and start time as wall clock in loc
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	m := b.StartTime.Minutes()
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), m/60, m%60, 0, 0, loc)
}
