package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/communication"
)

// CommunicationLog keeps the communication log in memory
type CommunicationLog struct {
	mu      sync.RWMutex
	entries []*domain.Communication
}

func NewCommunicationLog() *CommunicationLog {
	return &CommunicationLog{}
}

func (c *CommunicationLog) Append(ctx context.Context, items []*domain.Communication) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range items {
		c.entries = append(c.entries, copyCommunication(it))
	}
	return nil
}

// ListByBooking returns entries of the booking ordered by scheduled time
func (c *CommunicationLog) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Communication, error) {
	c.mu.RLock()
	result := make([]*domain.Communication, 0)
	for _, it := range c.entries {
		if it.BookingID == bookingID {
			result = append(result, copyCommunication(it))
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(result, func(i, k int) bool {
		return result[i].ScheduledAt.Before(result[k].ScheduledAt)
	})
	return result, nil
}

// ListDue returns undispatched entries scheduled at or before now
func (c *CommunicationLog) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Communication, error) {
	c.mu.RLock()
	result := make([]*domain.Communication, 0)
	for _, it := range c.entries {
		if it.IsDue(now) {
			result = append(result, copyCommunication(it))
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(result, func(i, k int) bool {
		return result[i].ScheduledAt.Before(result[k].ScheduledAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (c *CommunicationLog) MarkDispatched(ctx context.Context, id string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.entries {
		if it.ID == id && it.DispatchedAt == nil {
			t := at
			it.DispatchedAt = &t
			return nil
		}
	}
	return communication.ErrCommunicationNotFound
}

func copyCommunication(in *domain.Communication) *domain.Communication {
	cp := *in
	if in.DispatchedAt != nil {
		t := *in.DispatchedAt
		cp.DispatchedAt = &t
	}
	return &cp
}
