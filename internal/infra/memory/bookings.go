package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
)

// BookingLedger is an append-only in-memory ledger
type BookingLedger struct {
	mu      sync.RWMutex
	entries []*domain.Booking
	byID    map[string]int
}

func NewBookingLedger() *BookingLedger {
	return &BookingLedger{byID: make(map[string]int)}
}

// Append adds a booking at the end of the ledger.
// Inside a unit of work the entry is withdrawn again if the unit fails.
func (l *BookingLedger) Append(ctx context.Context, b *domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[b.ID]; exists {
		return fmt.Errorf("%w: %s", booking.ErrDuplicateID, b.ID)
	}

	cp := *b
	cp.Date = domain.NormalizeDate(b.Date)
	l.entries = append(l.entries, &cp)
	l.byID[cp.ID] = len(l.entries) - 1

	if j, ok := journalFrom(ctx); ok {
		id := cp.ID
		j.add(func() { l.withdraw(id) })
	}

	return nil
}

func (l *BookingLedger) withdraw(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.byID[id]
	if !ok {
		return
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	delete(l.byID, id)
	for i := idx; i < len(l.entries); i++ {
		l.byID[l.entries[i].ID] = i
	}
}

// GetByID returns a copy of the booking
func (l *BookingLedger) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byID[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *l.entries[idx]
	return &cp, nil
}

// ListAll returns the ledger in insertion order
func (l *BookingLedger) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*domain.Booking, 0, len(l.entries))
	for _, b := range l.entries {
		cp := *b
		result = append(result, &cp)
	}
	return result, nil
}

// ListByProviderAndDate returns the provider's bookings on date ordered by start time
func (l *BookingLedger) ListByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]*domain.Booking, error) {
	day := domain.NormalizeDate(date)

	l.mu.RLock()
	result := make([]*domain.Booking, 0)
	for _, b := range l.entries {
		if b.ProviderID == providerID && b.Date.Equal(day) {
			cp := *b
			result = append(result, &cp)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(result, func(i, k int) bool {
		return result[i].StartTime.IsBefore(result[k].StartTime)
	})
	return result, nil
}
