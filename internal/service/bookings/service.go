package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
)

// Service сервис чтения журнала бронирований
type Service struct {
	ledger BookingLedger
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(ledger BookingLedger, logger Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает журнал.
// Без фильтра - все записи в порядке создания; с врачом и датой - расписание врача на день.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	var (
		bookings []*domain.Booking
		err      error
	)

	switch {
	case req.ProviderID == nil && req.Date == nil:
		s.logger.Info("List: fetching full ledger")
		bookings, err = s.ledger.ListAll(ctx)

	case req.ProviderID != nil && req.Date != nil:
		if strings.TrimSpace(*req.ProviderID) == "" {
			return nil, fmt.Errorf("%w: providerId is empty", ErrInvalidInput)
		}
		s.logger.Info("List: fetching bookings for provider=%s, date=%s",
			*req.ProviderID, req.Date.Format(domain.DateFormat))
		bookings, err = s.ledger.ListByProviderAndDate(ctx, *req.ProviderID, *req.Date)

	default:
		s.logger.Warn("List: providerId and date must be given together")
		return nil, fmt.Errorf("%w: providerId and date must be given together", ErrInvalidInput)
	}

	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
