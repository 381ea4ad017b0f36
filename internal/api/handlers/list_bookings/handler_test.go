package list_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/memory"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newHandler(t *testing.T) *Handler {
	t.Helper()

	ledger := memory.NewBookingLedger()
	for _, b := range []struct {
		id, provider, start, end string
		date                     time.Time
	}{
		{"b-1", "dr-1", "11:00", "11:30", testDate},
		{"b-2", "dr-2", "09:00", "09:30", testDate},
		{"b-3", "dr-1", "09:00", "10:00", testDate},
		{"b-4", "dr-1", "09:00", "09:30", testDate.AddDate(0, 0, 1)},
	} {
		require.NoError(t, ledger.Append(context.Background(), &domain.Booking{
			ID:         b.id,
			PatientID:  domain.NewPatientID,
			ProviderID: b.provider,
			Date:       b.date,
			StartTime:  types.TimeString(b.start),
			EndTime:    types.TimeString(b.end),
			VisitKind:  domain.VisitReturning,
			Status:     domain.StatusConfirmed,
		}))
	}

	return NewHandler(bookings.NewService(ledger, logger.NewNop()), logger.NewNop())
}

func list(h *Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func ids(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()

	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	result := make([]string, len(body))
	for i, b := range body {
		result[i] = b.ID
	}
	return result
}

func TestHandler_Handle(t *testing.T) {
	h := newHandler(t)

	t.Run("full ledger in insertion order", func(t *testing.T) {
		rec := list(h, "/api/v1/bookings")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"b-1", "b-2", "b-3", "b-4"}, ids(t, rec))
	})

	t.Run("provider day ordered by start", func(t *testing.T) {
		rec := list(h, "/api/v1/bookings?providerId=dr-1&date=2025-03-10")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"b-3", "b-1"}, ids(t, rec))
	})

	t.Run("provider without date", func(t *testing.T) {
		rec := list(h, "/api/v1/bookings?providerId=dr-1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := list(h, "/api/v1/bookings?providerId=dr-1&date=tomorrow")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
