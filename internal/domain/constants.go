package domain

// Scheduling constants
const (
	// BaseSlotMinutes is the base granularity of every provider calendar.
	BaseSlotMinutes = 30

	// NewPatientID marks a patient that is not yet registered in the roster.
	NewPatientID = "NEW"
)

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxPatientNameLength = 200
	MaxInsuranceField    = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
