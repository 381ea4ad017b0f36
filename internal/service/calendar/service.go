package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// SeedRequest параметры заполнения календаря врача
type SeedRequest struct {
	Provider     domain.Provider
	From         time.Time
	Days         int
	DayStart     types.TimeString
	DayEnd       types.TimeString
	SkipWeekends bool
}

// Service заполняет справочник врачей и их календари базовыми слотами
type Service struct {
	providers ProviderRepository
	slots     SlotStore
	txManager TransactionManager
	logger    Logger
}

func NewService(providers ProviderRepository, slots SlotStore, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		providers: providers,
		slots:     slots,
		txManager: txManager,
		logger:    logger,
	}
}

// Seed сохраняет врача и создает слоты на Days дней начиная с From.
// Уже существующие слоты не меняются, поэтому повторный вызов безопасен.
// Возвращает количество сгенерированных слотов.
func (s *Service) Seed(ctx context.Context, req *SeedRequest) (int, error) {
	if req.Provider.ID == "" || req.Days <= 0 {
		return 0, fmt.Errorf("%w: provider id and positive days are required", ErrInvalidInput)
	}

	var slots []*domain.BaseSlot
	from := domain.NormalizeDate(req.From)
	for i := 0; i < req.Days; i++ {
		date := from.AddDate(0, 0, i)
		if req.SkipWeekends && isWeekend(date) {
			continue
		}

		day, err := GenerateDay(req.Provider.ID, date, req.Provider.Location, req.DayStart, req.DayEnd)
		if err != nil {
			return 0, err
		}
		slots = append(slots, day...)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.providers.Save(ctx, &req.Provider); err != nil {
			return err
		}
		return s.slots.CreateSlots(ctx, slots)
	})
	if err != nil {
		s.logger.Error("Failed to seed calendar: provider_id=%s, error=%v", req.Provider.ID, err)
		return 0, fmt.Errorf("%w: Seed - provider %s: %v", ErrInternal, req.Provider.ID, err)
	}

	s.logger.Info("Calendar seeded: provider_id=%s, days=%d, slots=%d", req.Provider.ID, req.Days, len(slots))
	return len(slots), nil
}

// GenerateDay нарезает рабочий день [dayStart, dayEnd) на базовые слоты.
// Хвост короче базового слота отбрасывается.
func GenerateDay(providerID string, date time.Time, location string, dayStart, dayEnd types.TimeString) ([]*domain.BaseSlot, error) {
	startMin := dayStart.Minutes()
	endMin := dayEnd.Minutes()
	if startMin < 0 || endMin < 0 || startMin >= endMin {
		return nil, fmt.Errorf("%w: working hours %q-%q", ErrInvalidInput, dayStart, dayEnd)
	}

	day := domain.NormalizeDate(date)
	slots := make([]*domain.BaseSlot, 0, (endMin-startMin)/domain.BaseSlotMinutes)
	for m := startMin; m+domain.BaseSlotMinutes <= endMin; m += domain.BaseSlotMinutes {
		start, err := types.FromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		end, err := types.FromMinutes(m + domain.BaseSlotMinutes)
		if err != nil {
			// слот не может заканчиваться в полночь
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		slots = append(slots, &domain.BaseSlot{
			ProviderID: providerID,
			Date:       day,
			StartTime:  start,
			EndTime:    end,
			Location:   location,
		})
	}

	return slots, nil
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
