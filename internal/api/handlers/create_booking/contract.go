package create_booking

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	commModels "github.com/m04kA/SMC-ClinicBooking/internal/service/communications/models"
	createBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Notifier журналирует сообщения пациенту после успешного бронирования
type Notifier interface {
	NotifyBooked(ctx context.Context, booking *domain.Booking, contact commModels.Contact) ([]*domain.Communication, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
