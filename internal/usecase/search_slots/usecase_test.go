package search_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/memory"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

func newStore(t *testing.T) *memory.SlotStore {
	t.Helper()

	store := memory.NewSlotStore()
	require.NoError(t, store.CreateSlots(context.Background(), []*domain.BaseSlot{
		baseSlot("09:00", "09:30", "Main Clinic"),
		baseSlot("09:30", "10:00", "Main Clinic"),
		baseSlot("10:00", "10:30", "Main Clinic"),
		baseSlot("11:00", "11:30", "Main Clinic"),
	}))
	return store
}

func TestUseCase_Execute(t *testing.T) {
	uc := NewUseCase(newStore(t), logger.NewNop())

	t.Run("returning visit", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			ProviderID: "dr-1",
			Date:       testDate.Add(9 * time.Hour),
			VisitKind:  domain.VisitReturning,
		})
		require.NoError(t, err)
		assert.Equal(t, 30, resp.DurationMinutes)
		assert.Equal(t, testDate, resp.Date)
		assert.Len(t, resp.Windows, 4)
	})

	t.Run("new patient visit", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			ProviderID: "dr-1",
			Date:       testDate,
			VisitKind:  domain.VisitNew,
		})
		require.NoError(t, err)
		assert.Equal(t, 60, resp.DurationMinutes)
		require.Len(t, resp.Windows, 2)
		assert.Equal(t, Window{StartTime: "09:00", EndTime: "10:00", Location: "Main Clinic"}, resp.Windows[0])
		assert.Equal(t, types.TimeString("09:30"), resp.Windows[1].StartTime)
	})

	t.Run("unknown provider is empty", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			ProviderID: "nobody",
			Date:       testDate,
			VisitKind:  domain.VisitNew,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Windows)
	})

	t.Run("other date is empty", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			ProviderID: "dr-1",
			Date:       testDate.AddDate(0, 0, 1),
			VisitKind:  domain.VisitReturning,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Windows)
	})
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := NewUseCase(memory.NewSlotStore(), logger.NewNop())

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "empty provider", req: &Request{Date: testDate, VisitKind: domain.VisitNew}},
		{name: "zero date", req: &Request{ProviderID: "dr-1", VisitKind: domain.VisitNew}},
		{name: "unknown visit kind", req: &Request{ProviderID: "dr-1", Date: testDate, VisitKind: "follow-up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
