package get_booking_communications

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	bookings       BookingService
	communications CommunicationService
	logger         Logger
}

func NewHandler(bookingService BookingService, communicationService CommunicationService, logger Logger) *Handler {
	return &Handler{
		bookings:       bookingService,
		communications: communicationService,
		logger:         logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/communications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// Проверяем, что бронирование существует: пустой журнал и неизвестный ID - разные ответы
	if _, err := h.bookings.GetByID(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/communications - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /bookings/{id}/communications - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result, err := h.communications.ListByBooking(r.Context(), bookingID)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/communications - Failed to list communications: booking_id=%s, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id}/communications - Communications retrieved: booking_id=%s, count=%d",
		bookingID, len(result.Communications))
	handlers.RespondJSON(w, http.StatusOK, result.Communications)
}
