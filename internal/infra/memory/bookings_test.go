package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
)

func newTestBooking(id, providerID string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		PatientID:   domain.NewPatientID,
		PatientName: "Jane Roe",
		ProviderID:  providerID,
		Date:        testDate,
		StartTime:   "09:00",
		EndTime:     "09:30",
		VisitKind:   domain.VisitReturning,
		Status:      domain.StatusConfirmed,
		CreatedAt:   time.Now(),
	}
}

func TestBookingLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("insertion order", func(t *testing.T) {
		ledger := NewBookingLedger()
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, ledger.Append(ctx, newTestBooking(id, "dr-1")))
		}

		all, err := ledger.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "c", all[0].ID)
		assert.Equal(t, "a", all[1].ID)
		assert.Equal(t, "b", all[2].ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		ledger := NewBookingLedger()
		require.NoError(t, ledger.Append(ctx, newTestBooking("a", "dr-1")))

		err := ledger.Append(ctx, newTestBooking("a", "dr-1"))
		assert.ErrorIs(t, err, booking.ErrDuplicateID)
	})

	t.Run("get by id", func(t *testing.T) {
		ledger := NewBookingLedger()
		require.NoError(t, ledger.Append(ctx, newTestBooking("a", "dr-1")))

		got, err := ledger.GetByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "dr-1", got.ProviderID)

		_, err = ledger.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("by provider and date", func(t *testing.T) {
		ledger := NewBookingLedger()
		late := newTestBooking("late", "dr-1")
		late.StartTime, late.EndTime = "11:00", "11:30"
		require.NoError(t, ledger.Append(ctx, late))
		require.NoError(t, ledger.Append(ctx, newTestBooking("early", "dr-1")))
		require.NoError(t, ledger.Append(ctx, newTestBooking("other", "dr-2")))

		got, err := ledger.ListByProviderAndDate(ctx, "dr-1", testDate.Add(5*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "early", got[0].ID)
		assert.Equal(t, "late", got[1].ID)
	})

	t.Run("failed unit withdraws entry", func(t *testing.T) {
		ledger := NewBookingLedger()
		tm := NewTransactionManager()
		require.NoError(t, ledger.Append(ctx, newTestBooking("kept", "dr-1")))

		boom := errors.New("boom")
		err := tm.DoSerializable(ctx, func(ctx context.Context) error {
			if err := ledger.Append(ctx, newTestBooking("dropped", "dr-1")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		all, err := ledger.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "kept", all[0].ID)

		_, err = ledger.GetByID(ctx, "dropped")
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})
}
