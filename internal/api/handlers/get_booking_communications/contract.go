package get_booking_communications

import (
	"context"

	bookingModels "github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
	commModels "github.com/m04kA/SMC-ClinicBooking/internal/service/communications/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id string) (*bookingModels.BookingResponse, error)
}

type CommunicationService interface {
	ListByBooking(ctx context.Context, bookingID string) (*commModels.CommunicationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
