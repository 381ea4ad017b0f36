package search_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// SlotStore интерфейс хранилища календарей
type SlotStore interface {
	// ListFree возвращает свободные слоты врача на дату, отсортированные по времени начала
	ListFree(ctx context.Context, providerID string, date time.Time) ([]*domain.BaseSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
