package search_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// UseCase use case для поиска свободных окон у врача
type UseCase struct {
	slotStore SlotStore
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotStore SlotStore, logger Logger) *UseCase {
	return &UseCase{
		slotStore: slotStore,
		logger:    logger,
	}
}

// Execute возвращает окна нужной длительности на дату.
// Неизвестный врач или пустой календарь - пустой список, а не ошибка.
// Результат - снимок: окно может быть занято до того, как его забронируют.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	uc.logger.Info("SearchSlots: provider=%s, date=%s, visitKind=%s",
		req.ProviderID, date.Format(domain.DateFormat), req.VisitKind)

	// 2. Получаем свободные слоты
	free, err := uc.slotStore.ListFree(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("SearchSlots: failed to list free slots for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to list free slots: %v", ErrInternal, err)
	}

	// 3. Склеиваем слоты в окна нужной длины
	merged := mergeWindows(free, req.VisitKind.SlotCount())

	windows := make([]Window, 0, len(merged))
	for _, w := range merged {
		windows = append(windows, Window{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Location:  w.Location,
		})
	}

	uc.logger.Info("SearchSlots: found %d windows from %d free slots for provider=%s",
		len(windows), len(free), req.ProviderID)

	return &Response{
		ProviderID:      req.ProviderID,
		Date:            date,
		VisitKind:       req.VisitKind,
		DurationMinutes: req.VisitKind.DurationMinutes(),
		Windows:         windows,
	}, nil
}
