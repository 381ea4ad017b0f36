package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// SlotStore интерфейс хранилища календарей
type SlotStore interface {
	// ListDay возвращает все слоты врача на дату (для сопоставления окна со слотами)
	ListDay(ctx context.Context, providerID string, date time.Time) ([]*domain.BaseSlot, error)
	// TryReserve атомарно бронирует все слоты или ни одного
	TryReserve(ctx context.Context, providerID string, date time.Time, starts []types.TimeString) error
}

// BookingLedger интерфейс журнала бронирований
type BookingLedger interface {
	Append(ctx context.Context, booking *domain.Booking) error
}

// ProviderRepository интерфейс справочника врачей
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// OutcomeRecorder учитывает результаты бронирований (может быть nil)
type OutcomeRecorder interface {
	RecordBookingOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
