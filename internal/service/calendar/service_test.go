package calendar

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

// 2025-03-07 - пятница
var friday = time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

func TestGenerateDay(t *testing.T) {
	t.Run("slices working hours into base slots", func(t *testing.T) {
		slots, err := GenerateDay("dr-1", friday, "Main Clinic", "09:00", "11:00")
		require.NoError(t, err)
		require.Len(t, slots, 4)

		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Precedes(slots[i]))
		}
		assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("11:00"), slots[3].EndTime)
		assert.Equal(t, "Main Clinic", slots[0].Location)
		assert.False(t, slots[0].Booked)
	})

	t.Run("drops short tail", func(t *testing.T) {
		slots, err := GenerateDay("dr-1", friday, "Main Clinic", "09:00", "10:15")
		require.NoError(t, err)
		assert.Len(t, slots, 2)
	})

	t.Run("rejects inverted hours", func(t *testing.T) {
		_, err := GenerateDay("dr-1", friday, "Main Clinic", "17:00", "09:00")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed hours", func(t *testing.T) {
		_, err := GenerateDay("dr-1", friday, "Main Clinic", "nine", "17:00")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	providers := memory.NewProviderStore()
	slots := memory.NewSlotStore()
	svc := NewService(providers, slots, memory.NewTransactionManager(), logger.NewNop())

	req := &SeedRequest{
		Provider:     domain.Provider{ID: "dr-1", Name: "Dr. Ada", Specialty: "Allergy", Location: "Main Clinic"},
		From:         friday,
		Days:         3,
		DayStart:     "09:00",
		DayEnd:       "10:00",
		SkipWeekends: true,
	}

	count, err := svc.Seed(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	p, err := providers.GetByID(ctx, "dr-1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ada", p.Name)

	free, err := slots.ListFree(ctx, "dr-1", friday)
	require.NoError(t, err)
	assert.Len(t, free, 2)

	saturday, err := slots.ListFree(ctx, "dr-1", friday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, saturday)

	t.Run("repeated seed keeps the calendar", func(t *testing.T) {
		_, err := svc.Seed(ctx, req)
		require.NoError(t, err)

		free, err := slots.ListFree(ctx, "dr-1", friday)
		require.NoError(t, err)
		assert.Len(t, free, 2)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, err := svc.Seed(ctx, &SeedRequest{Provider: domain.Provider{ID: "dr-2"}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
