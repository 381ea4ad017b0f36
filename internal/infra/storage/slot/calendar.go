package slot

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// NewSlotsForDay отбирает слоты, которые нужно добавить в календарь одного дня.
// Слоты с уже существующим началом пропускаются. Слот не базовой длины или
// пересекающийся с другим слотом дня дает ErrInvalidSlot, и тогда не добавляется ничего.
func NewSlotsForDay(existing, incoming []*domain.BaseSlot) ([]*domain.BaseSlot, error) {
	taken := make(map[int]struct{}, len(existing)+len(incoming))
	for _, s := range existing {
		taken[s.StartTime.Minutes()] = struct{}{}
	}

	added := make([]*domain.BaseSlot, 0, len(incoming))
	for _, s := range incoming {
		if !s.HasBaseLength() {
			return nil, fmt.Errorf("%w: %s-%s is not %d minutes long",
				ErrInvalidSlot, s.StartTime, s.EndTime, domain.BaseSlotMinutes)
		}
		start := s.StartTime.Minutes()
		if _, ok := taken[start]; ok {
			continue
		}
		taken[start] = struct{}{}
		added = append(added, s)
	}

	day := make([]*domain.BaseSlot, 0, len(existing)+len(added))
	day = append(day, existing...)
	day = append(day, added...)
	sort.Slice(day, func(i, k int) bool {
		return day[i].StartTime.Minutes() < day[k].StartTime.Minutes()
	})

	for i := 1; i < len(day); i++ {
		if day[i-1].Overlaps(day[i]) {
			return nil, fmt.Errorf("%w: %s-%s overlaps %s-%s",
				ErrInvalidSlot, day[i-1].StartTime, day[i-1].EndTime, day[i].StartTime, day[i].EndTime)
		}
	}

	return added, nil
}
