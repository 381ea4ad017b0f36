package list_bookings

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(providerIDStr, dateStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if providerIDStr != "" {
		req.ProviderID = &providerIDStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
