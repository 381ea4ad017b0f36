package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	providerRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/provider"
	slotRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotStore    SlotStore
	ledger       BookingLedger
	providers    ProviderRepository
	txManager    TransactionManager
	outcomes     OutcomeRecorder
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. outcomes может быть nil.
func NewUseCase(
	slotStore SlotStore,
	ledger BookingLedger,
	providers ProviderRepository,
	txManager TransactionManager,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotStore:    slotStore,
		ledger:       ledger,
		providers:    providers,
		txManager:    txManager,
		outcomes:     outcomes,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Резервирование слотов и запись в журнал выполняются одной сериализуемой транзакцией:
// из нескольких конкурентных запросов на пересекающиеся слоты успешен ровно один,
// остальные получают ErrSlotUnavailable. Ошибка записи в журнал откатывает резервирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.outcomes != nil {
		uc.outcomes.RecordBookingOutcome(outcomeOf(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	k := req.VisitKind.SlotCount()

	uc.logger.Info("CreateBooking: patient=%s, provider=%s, date=%s, start=%s, visitKind=%s",
		req.PatientID, req.ProviderID, date.Format(domain.DateFormat), req.StartTime, req.VisitKind)

	// 2. Получаем врача
	provider, err := uc.providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%s not found", req.ProviderID)
			return nil, fmt.Errorf("%w: unknown provider %s", ErrInvalidWindow, req.ProviderID)
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Сопоставляем окно со слотами календаря
	day, err := uc.slotStore.ListDay(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list slots for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	starts, window, err := resolveWindow(day, req.StartTime, req.EndTime, k)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Резервируем слоты и пишем в журнал в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Бронируем все слоты окна или ни одного
		if err := uc.slotStore.TryReserve(txCtx, req.ProviderID, date, starts); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrConflict):
				return fmt.Errorf("%w: %s %s-%s", ErrSlotUnavailable, req.ProviderID, window.StartTime, window.EndTime)
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
			default:
				return fmt.Errorf("%w: failed to reserve slots: %w", ErrInternal, err)
			}
		}

		// 4.2. Записываем бронирование в журнал
		booking := &domain.Booking{
			ID:           uc.newID(),
			PatientID:    strings.TrimSpace(req.PatientID),
			PatientName:  strings.TrimSpace(req.PatientName),
			ProviderID:   provider.ID,
			ProviderName: provider.Name,
			Date:         date,
			StartTime:    window.StartTime,
			EndTime:      window.EndTime,
			Location:     window.Location,
			VisitKind:    req.VisitKind,
			Insurance:    req.Insurance,
			Status:       domain.StatusConfirmed,
			Notes:        req.Notes,
			CreatedAt:    uc.timeProvider.Now().UTC(),
		}

		if err := uc.ledger.Append(txCtx, booking); err != nil {
			return fmt.Errorf("%w: %w", ErrLedgerWriteFailed, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		err = uc.classify(err)
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			uc.logger.Warn("CreateBooking: slot unavailable for provider=%s at %s: %v", req.ProviderID, req.StartTime, err)
		case errors.Is(err, ErrInvalidWindow):
			uc.logger.Warn("CreateBooking: %v", err)
		default:
			uc.logger.Error("CreateBooking: failed to commit booking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return toResponse(result), nil
}

// classify приводит ошибку транзакции к ошибке use case.
// Отмена транзакции из-за конфликта сериализации означает, что слот заняли параллельно,
// на каком бы шаге транзакции она ни произошла.
func (uc *UseCase) classify(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	case errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrInvalidWindow),
		errors.Is(err, ErrLedgerWriteFailed),
		errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
