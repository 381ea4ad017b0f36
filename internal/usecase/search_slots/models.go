package search_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request модель запроса на поиск свободных окон
type Request struct {
	ProviderID string           // ID врача
	Date       time.Time        // Дата (без времени)
	VisitKind  domain.VisitKind // Тип визита, определяет длительность окна
}

// Response модель ответа со списком окон
type Response struct {
	ProviderID      string
	Date            time.Time
	VisitKind       domain.VisitKind
	DurationMinutes int      // Длительность каждого окна
	Windows         []Window // Окна в порядке времени начала
}

// Window модель окна для бронирования
type Window struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Location  string
}
