package communications

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Адреса-заглушки, если пациент не оставил контакты
const (
	FallbackEmail = "unknown@example.com"
	FallbackPhone = "9999999999"
)

// reminderPlan описывает одно напоминание перед визитом
type reminderPlan struct {
	before         time.Duration
	channel        domain.Channel
	subject        string
	message        string
	actionRequired bool
}

var reminderPlans = []reminderPlan{
	{
		before:  72 * time.Hour,
		channel: domain.ChannelEmail,
		subject: "Reminder 1",
		message: "Friendly reminder about your appointment. No action required.",
	},
	{
		before:         24 * time.Hour,
		channel:        domain.ChannelEmail,
		subject:        "Reminder 2 – Action Required",
		message:        "Have you filled the forms? Please confirm your visit.",
		actionRequired: true,
	},
	{
		before:         2 * time.Hour,
		channel:        domain.ChannelSMS,
		subject:        "Reminder 3 – Action Required",
		message:        "Confirm visit? Reply with reason if cancelling.",
		actionRequired: true,
	},
}

func confirmationEmail(b *domain.Booking) (subject, message string) {
	return "Appointment Confirmation", fmt.Sprintf("Your appointment is confirmed on %s at %s with %s.",
		b.Date.Format(domain.DateFormat), b.StartTime, b.ProviderName)
}

func confirmationSMS(b *domain.Booking) (subject, message string) {
	return "Appointment Confirmation", fmt.Sprintf("Appt %s %s with %s – Reply YES to confirm.",
		b.Date.Format(domain.DateFormat), b.StartTime, b.ProviderName)
}

func intakeFormsEmail() (subject, message string) {
	return "Intake Forms", "Please complete the attached intake and consent forms before your visit."
}
