package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	searchSlots "github.com/m04kA/SMC-ClinicBooking/internal/usecase/search_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID      string       `json:"providerId"`
	Date            string       `json:"date"`
	VisitKind       string       `json:"visitKind"`
	DurationMinutes int          `json:"durationMinutes"`
	Windows         []SlotWindow `json:"windows"`
}

// SlotWindow окно, которое можно забронировать
type SlotWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Location  string `json:"location"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchSlots.Response) *AvailableSlotsResponse {
	windows := make([]SlotWindow, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = SlotWindow{
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Location:  w.Location,
		}
	}

	return &AvailableSlotsResponse{
		ProviderID:      resp.ProviderID,
		Date:            resp.Date.Format(domain.DateFormat),
		VisitKind:       string(resp.VisitKind),
		DurationMinutes: resp.DurationMinutes,
		Windows:         windows,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса.
// visitKind по умолчанию - returning (одиночный слот).
func ToUseCaseRequest(providerID, dateStr, visitKindStr string) (*searchSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	kind := domain.VisitReturning
	if visitKindStr != "" {
		kind = domain.VisitKind(visitKindStr)
	}

	return &searchSlots.Request{
		ProviderID: providerID,
		Date:       date,
		VisitKind:  kind,
	}, nil
}
