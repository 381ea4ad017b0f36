package create_booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotUnavailable    = "выбранное время уже занято, выполните поиск заново"
	msgInvalidWindow      = "выбранное окно не соответствует расписанию врача"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

type Handler struct {
	useCase  CreateBookingUseCase
	notifier Notifier
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: provider_id=%s, date=%s, start=%s",
				req.ProviderID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrInvalidWindow):
			h.logger.Warn("POST /bookings - Invalid window: provider_id=%s, date=%s, start=%s, error=%v",
				req.ProviderID, req.Date, req.StartTime, err)
			handlers.RespondUnprocessable(w, msgInvalidWindow)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: provider_id=%s, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Бронирование уже зафиксировано: ошибка журнала сообщений не меняет ответ
	notifyCtx := context.WithoutCancel(r.Context())
	if _, err := h.notifier.NotifyBooked(notifyCtx, result.ToDomain(), req.ToContact()); err != nil {
		h.logger.Error("POST /bookings - Failed to log communications: booking_id=%s, error=%v", result.ID, err)
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, provider_id=%s, date=%s, start=%s",
		result.ID, result.ProviderID, req.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
