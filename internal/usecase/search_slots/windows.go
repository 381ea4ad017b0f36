package search_slots

import (
	"sort"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// mergeWindows собирает окна из k подряд идущих свободных слотов.
//
// Окно начинается в каждой позиции, где k слотов стыкуются без разрывов
// (конец предыдущего == начало следующего) и находятся в одном кабинете.
// Перекрывающиеся окна возвращаются все: для 09:00, 09:30, 10:00 и k=2
// получаем 09:00-10:00 и 09:30-10:30.
func mergeWindows(free []*domain.BaseSlot, k int) []domain.SlotWindow {
	windows := make([]domain.SlotWindow, 0)
	if k <= 0 || len(free) < k {
		return windows
	}

	slots := make([]*domain.BaseSlot, len(free))
	copy(slots, free)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	for i := 0; i+k <= len(slots); i++ {
		if !isRun(slots[i : i+k]) {
			continue
		}
		first, last := slots[i], slots[i+k-1]
		windows = append(windows, domain.SlotWindow{
			ProviderID: first.ProviderID,
			Date:       first.Date,
			StartTime:  first.StartTime,
			EndTime:    last.EndTime,
			Location:   first.Location,
		})
	}

	return windows
}

// isRun проверяет, что слоты идут встык, свободны и в одном кабинете
func isRun(run []*domain.BaseSlot) bool {
	for i, s := range run {
		if !s.IsFree() {
			return false
		}
		if i == 0 {
			continue
		}
		prev := run[i-1]
		if !prev.Precedes(s) || prev.Location != s.Location {
			return false
		}
	}
	return true
}
