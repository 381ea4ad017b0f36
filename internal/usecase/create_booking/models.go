package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	PatientID   string           // ID пациента или domain.NewPatientID
	PatientName string           // Имя пациента
	ProviderID  string           // ID врача
	Date        time.Time        // Дата визита (без времени)
	StartTime   types.TimeString // Начало выбранного окна
	EndTime     types.TimeString // Конец выбранного окна (опционально, вычисляется по типу визита)
	VisitKind   domain.VisitKind // Тип визита
	Insurance   domain.Insurance // Страховка
	Notes       string           // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           string
	PatientID    string
	PatientName  string
	ProviderID   string
	ProviderName string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Location     string
	VisitKind    domain.VisitKind
	Insurance    domain.Insurance
	Status       string
	Notes        string
	CreatedAt    time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		PatientID:    b.PatientID,
		PatientName:  b.PatientName,
		ProviderID:   b.ProviderID,
		ProviderName: b.ProviderName,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Location:     b.Location,
		VisitKind:    b.VisitKind,
		Insurance:    b.Insurance,
		Status:       string(b.Status),
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
	}
}

// ToDomain возвращает бронирование в виде доменной модели (для уведомлений)
func (r *Response) ToDomain() *domain.Booking {
	return &domain.Booking{
		ID:           r.ID,
		PatientID:    r.PatientID,
		PatientName:  r.PatientName,
		ProviderID:   r.ProviderID,
		ProviderName: r.ProviderName,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Location:     r.Location,
		VisitKind:    r.VisitKind,
		Insurance:    r.Insurance,
		Status:       domain.BookingStatus(r.Status),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}
