package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// VisitKind is the type of visit the patient books
type VisitKind string

const (
	VisitNew       VisitKind = "new"
	VisitReturning VisitKind = "returning"
)

// IsValid returns true for known visit kinds
func (k VisitKind) IsValid() bool {
	return k == VisitNew || k == VisitReturning
}

// SlotCount returns how many consecutive base slots a visit of this kind occupies.
// New patients need a double slot, returning patients a single one.
func (k VisitKind) SlotCount() int {
	if k == VisitNew {
		return 2
	}
	return 1
}

// DurationMinutes returns the visit length
func (k VisitKind) DurationMinutes() int {
	return k.SlotCount() * BaseSlotMinutes
}

// BaseSlot is the atomic unit of schedulable time on a provider's calendar.
// Booked flips false -> true exactly once and only through the slot store.
type BaseSlot struct {
	ProviderID string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Location   string
	Booked     bool
}

// IsFree returns true if the slot can still be reserved
func (s *BaseSlot) IsFree() bool {
	return !s.Booked
}

// Precedes returns true if next starts exactly where s ends
func (s *BaseSlot) Precedes(next *BaseSlot) bool {
	return s.EndTime.Equal(next.StartTime)
}

// HasBaseLength reports whether the slot spans exactly one base granularity
func (s *BaseSlot) HasBaseLength() bool {
	start, end := s.StartTime.Minutes(), s.EndTime.Minutes()
	return start >= 0 && end >= 0 && end-start == BaseSlotMinutes
}

// Overlaps reports whether the two slots share any minute
func (s *BaseSlot) Overlaps(other *BaseSlot) bool {
	return s.StartTime.Minutes() < other.EndTime.Minutes() && other.StartTime.Minutes() < s.EndTime.Minutes()
}

// SlotWindow is a bookable interval made of one or more adjacent base slots
type SlotWindow struct {
	ProviderID string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Location   string
}

// DurationMinutes returns the window length
func (w *SlotWindow) DurationMinutes() int {
	return w.EndTime.Minutes() - w.StartTime.Minutes()
}

// NormalizeDate drops the time of day and keeps the calendar date in UTC
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
