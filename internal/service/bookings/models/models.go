package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр журнала.
// Без фильтра возвращается весь журнал, ProviderID и Date указываются только вместе.
type ListBookingsRequest struct {
	ProviderID *string    `json:"providerId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

// Response модели

// InsuranceResponse данные страховки
type InsuranceResponse struct {
	Carrier  string `json:"carrier"`
	MemberID string `json:"memberId"`
	Group    string `json:"group"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string            `json:"id"`
	PatientID       string            `json:"patientId"`
	PatientName     string            `json:"patientName"`
	ProviderID      string            `json:"providerId"`
	ProviderName    string            `json:"providerName"`
	Date            string            `json:"date"`      // "2025-10-15"
	StartTime       string            `json:"startTime"` // "10:00"
	EndTime         string            `json:"endTime"`   // "11:00"
	DurationMinutes int               `json:"durationMinutes"`
	Location        string            `json:"location"`
	VisitKind       string            `json:"visitKind"`
	Insurance       InsuranceResponse `json:"insurance"`
	Status          string            `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		PatientID:       b.PatientID,
		PatientName:     b.PatientName,
		ProviderID:      b.ProviderID,
		ProviderName:    b.ProviderName,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes(),
		Location:        b.Location,
		VisitKind:       string(b.VisitKind),
		Insurance: InsuranceResponse{
			Carrier:  b.Insurance.Carrier,
			MemberID: b.Insurance.MemberID,
			Group:    b.Insurance.Group,
		},
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
