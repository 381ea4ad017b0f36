package calendar

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ProviderRepository интерфейс справочника врачей
type ProviderRepository interface {
	Save(ctx context.Context, p *domain.Provider) error
}

// SlotStore интерфейс хранилища календарей
type SlotStore interface {
	CreateSlots(ctx context.Context, slots []*domain.BaseSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
