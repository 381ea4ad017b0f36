package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Contact контакты пациента для уведомлений
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CommunicationResponse запись журнала коммуникаций
type CommunicationResponse struct {
	ID             string     `json:"id"`
	BookingID      string     `json:"bookingId"`
	Kind           string     `json:"kind"`
	Channel        string     `json:"channel"`
	Recipient      string     `json:"recipient"`
	Subject        string     `json:"subject"`
	Message        string     `json:"message"`
	ActionRequired bool       `json:"actionRequired"`
	ScheduledAt    time.Time  `json:"scheduledAt"`
	DispatchedAt   *time.Time `json:"dispatchedAt,omitempty"`
}

// CommunicationListResponse ответ со списком записей
type CommunicationListResponse struct {
	Communications []CommunicationResponse `json:"communications"`
}

// FromDomainCommunicationList конвертирует список domain моделей в DTO
func FromDomainCommunicationList(items []*domain.Communication) *CommunicationListResponse {
	resp := &CommunicationListResponse{
		Communications: make([]CommunicationResponse, 0, len(items)),
	}

	for _, c := range items {
		resp.Communications = append(resp.Communications, CommunicationResponse{
			ID:             c.ID,
			BookingID:      c.BookingID,
			Kind:           string(c.Kind),
			Channel:        string(c.Channel),
			Recipient:      c.Recipient,
			Subject:        c.Subject,
			Message:        c.Message,
			ActionRequired: c.ActionRequired,
			ScheduledAt:    c.ScheduledAt,
			DispatchedAt:   c.DispatchedAt,
		})
	}

	return resp
}
