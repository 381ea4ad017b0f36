package communications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// CommunicationLog интерфейс журнала коммуникаций
type CommunicationLog interface {
	Append(ctx context.Context, items []*domain.Communication) error
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.Communication, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Communication, error)
	MarkDispatched(ctx context.Context, id string, at time.Time) error
}

// DispatchRecorder учитывает отправленные напоминания (может быть nil)
type DispatchRecorder interface {
	RecordReminderDispatched(channel string)
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
