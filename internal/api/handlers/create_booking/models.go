package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	commModels "github.com/m04kA/SMC-ClinicBooking/internal/service/communications/models"
	createBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PatientID   string           `json:"patientId"` // "NEW" для нового пациента
	PatientName string           `json:"patientName"`
	ProviderID  string           `json:"providerId"`
	Date        string           `json:"date"`              // "2025-10-15"
	StartTime   string           `json:"startTime"`         // "10:00"
	EndTime     string           `json:"endTime,omitempty"` // "11:00"
	VisitKind   string           `json:"visitKind"`         // "new" | "returning"
	Insurance   InsuranceRequest `json:"insurance"`
	Notes       string           `json:"notes,omitempty"`
	Contact     ContactRequest   `json:"contact"`
}

type InsuranceRequest struct {
	Carrier  string `json:"carrier"`
	MemberID string `json:"memberId"`
	Group    string `json:"group"`
}

type ContactRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	PatientName     string           `json:"patientName"`
	ProviderID      string           `json:"providerId"`
	ProviderName    string           `json:"providerName"`
	Date            string           `json:"date"`
	StartTime       string           `json:"startTime"`
	EndTime         string           `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Location        string           `json:"location"`
	VisitKind       string           `json:"visitKind"`
	Insurance       InsuranceRequest `json:"insurance"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       string           `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	var endTime types.TimeString
	if r.EndTime != "" {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
		}
	}

	return &createBooking.Request{
		PatientID:   r.PatientID,
		PatientName: r.PatientName,
		ProviderID:  r.ProviderID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		VisitKind:   domain.VisitKind(r.VisitKind),
		Insurance: domain.Insurance{
			Carrier:  r.Insurance.Carrier,
			MemberID: r.Insurance.MemberID,
			Group:    r.Insurance.Group,
		},
		Notes: r.Notes,
	}, nil
}

// ToContact возвращает контакты пациента для уведомлений
func (r *CreateBookingRequest) ToContact() commModels.Contact {
	return commModels.Contact{
		Email: r.Contact.Email,
		Phone: r.Contact.Phone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		PatientName:     resp.PatientName,
		ProviderID:      resp.ProviderID,
		ProviderName:    resp.ProviderName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.EndTime.Minutes() - resp.StartTime.Minutes(),
		Location:        resp.Location,
		VisitKind:       string(resp.VisitKind),
		Insurance: InsuranceRequest{
			Carrier:  resp.Insurance.Carrier,
			MemberID: resp.Insurance.MemberID,
			Group:    resp.Insurance.Group,
		},
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
