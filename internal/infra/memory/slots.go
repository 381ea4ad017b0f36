package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

type dayKey struct {
	providerID string
	date       string
}

func newDayKey(providerID string, date time.Time) dayKey {
	return dayKey{providerID: providerID, date: domain.NormalizeDate(date).Format(domain.DateFormat)}
}

// calendarDay is one provider's slots on one date, sorted by start time
type calendarDay struct {
	mu    sync.Mutex
	slots []*domain.BaseSlot
}

// SlotStore keeps provider calendars in memory.
// Reservations lock a single (provider, date) so bookings of different days never contend.
type SlotStore struct {
	mu   sync.RWMutex
	days map[dayKey]*calendarDay
}

func NewSlotStore() *SlotStore {
	return &SlotStore{days: make(map[dayKey]*calendarDay)}
}

func (s *SlotStore) day(key dayKey, create bool) *calendarDay {
	s.mu.RLock()
	d, ok := s.days[key]
	s.mu.RUnlock()
	if ok || !create {
		return d
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok = s.days[key]; !ok {
		d = &calendarDay{}
		s.days[key] = d
	}
	return d
}

// ListFree returns free slots ordered by start time
func (s *SlotStore) ListFree(ctx context.Context, providerID string, date time.Time) ([]*domain.BaseSlot, error) {
	return s.list(providerID, date, true), nil
}

// ListDay returns every slot of the day, booked or not
func (s *SlotStore) ListDay(ctx context.Context, providerID string, date time.Time) ([]*domain.BaseSlot, error) {
	return s.list(providerID, date, false), nil
}

func (s *SlotStore) list(providerID string, date time.Time, freeOnly bool) []*domain.BaseSlot {
	result := make([]*domain.BaseSlot, 0)

	d := s.day(newDayKey(providerID, date), false)
	if d == nil {
		return result
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, sl := range d.slots {
		if freeOnly && sl.Booked {
			continue
		}
		cp := *sl
		result = append(result, &cp)
	}
	return result
}

// TryReserve books all listed slots or none of them.
// Must run inside TransactionManager so a later failure in the same unit releases the slots.
func (s *SlotStore) TryReserve(ctx context.Context, providerID string, date time.Time, starts []types.TimeString) error {
	j, ok := journalFrom(ctx)
	if !ok {
		return slot.ErrTransaction
	}
	if len(starts) == 0 {
		return fmt.Errorf("%w: TryReserve - empty slot set", slot.ErrSlotNotFound)
	}

	d := s.day(newDayKey(providerID, date), false)
	if d == nil {
		return fmt.Errorf("%w: TryReserve - no calendar for %s", slot.ErrSlotNotFound, providerID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// keyed by minutes so "9:00" and "09:00" resolve to the same slot
	byStart := make(map[int]*domain.BaseSlot, len(d.slots))
	for _, sl := range d.slots {
		byStart[sl.StartTime.Minutes()] = sl
	}

	picked := make([]*domain.BaseSlot, 0, len(starts))
	seen := make(map[int]struct{}, len(starts))
	for _, start := range starts {
		m := start.Minutes()
		sl, ok := byStart[m]
		if _, dup := seen[m]; !ok || dup {
			return fmt.Errorf("%w: TryReserve - %s at %s", slot.ErrSlotNotFound, providerID, start)
		}
		seen[m] = struct{}{}
		picked = append(picked, sl)
	}

	for _, sl := range picked {
		if sl.Booked {
			return slot.ErrConflict
		}
	}

	for _, sl := range picked {
		sl.Booked = true
	}

	j.add(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for _, sl := range picked {
			sl.Booked = false
		}
	})

	return nil
}

// CreateSlots adds slots to calendars. Existing starts are left untouched.
// A slot that is not one base slot long or that overlaps another slot of its day
// fails the whole call with slot.ErrInvalidSlot and nothing is added.
func (s *SlotStore) CreateSlots(ctx context.Context, slots []*domain.BaseSlot) error {
	byDay := make(map[dayKey][]*domain.BaseSlot)
	keys := make([]dayKey, 0)
	for _, in := range slots {
		k := newDayKey(in.ProviderID, in.Date)
		if _, ok := byDay[k]; !ok {
			keys = append(keys, k)
		}
		byDay[k] = append(byDay[k], in)
	}

	// fixed lock order, TryReserve never holds more than one day
	sort.Slice(keys, func(i, k int) bool {
		if keys[i].providerID == keys[k].providerID {
			return keys[i].date < keys[k].date
		}
		return keys[i].providerID < keys[k].providerID
	})

	days := make([]*calendarDay, len(keys))
	for i, k := range keys {
		days[i] = s.day(k, true)
		days[i].mu.Lock()
	}
	defer func() {
		for _, d := range days {
			d.mu.Unlock()
		}
	}()

	added := make([][]*domain.BaseSlot, len(keys))
	for i, k := range keys {
		a, err := slot.NewSlotsForDay(days[i].slots, byDay[k])
		if err != nil {
			return fmt.Errorf("%w (provider %s, date %s)", err, k.providerID, k.date)
		}
		added[i] = a
	}

	for i, d := range days {
		for _, in := range added[i] {
			cp := *in
			cp.Date = domain.NormalizeDate(in.Date)
			d.slots = append(d.slots, &cp)
		}
		sort.Slice(d.slots, func(a, b int) bool {
			return d.slots[a].StartTime.IsBefore(d.slots[b].StartTime)
		})
	}

	return nil
}
